package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps documents in process memory. It counts writes per
// document so callers can assert that no spurious write happened.
type MemoryBackend struct {
	mu     sync.Mutex
	docs   map[string][]byte
	writes map[string]int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		docs:   map[string][]byte{},
		writes: map[string]int{},
	}
}

func (m *MemoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = append([]byte(nil), data...)
	m.writes[name]++
	return nil
}

// Put stores raw document content without counting it as a write.
func (m *MemoryBackend) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = append([]byte(nil), data...)
}

// Writes returns how many times name has been written.
func (m *MemoryBackend) Writes(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[name]
}
