// Package storage persists whole collections as single JSON documents.
//
// Every collection lives in one document of the form {"<key>": [ ... ]}.
// A write always replaces the entire document; backends make that replace
// atomic so readers see either the old or the new document. There is no
// locking and no cache: concurrent read-modify-write cycles on the same
// document can lose updates.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrStorage matches every error returned by this package.
	ErrStorage = errors.New("storage error")
	// ErrNotExist is matched when a document does not exist in its backend.
	ErrNotExist = errors.New("document does not exist")
	// ErrMalformed is matched when a document is not valid JSON.
	ErrMalformed = errors.New("malformed document")
)

// Error is the StorageError kind: the document could not be read, written
// or decoded.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrStorage }

// Backend reads and replaces whole documents by name.
type Backend interface {
	// Read returns the full document. A missing document yields an error
	// wrapping ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the full document atomically.
	Write(ctx context.Context, name string, data []byte) error
}

// LoadCollection reads the document and returns the array found under key.
// A document without key yields an empty slice.
func LoadCollection[T any](ctx context.Context, b Backend, name, key string) ([]T, error) {
	data, err := b.Read(ctx, name)
	if err != nil {
		return nil, &Error{Op: "read", Name: name, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Op: "decode", Name: name, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	items := []T{}
	raw, ok := doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &Error{Op: "decode", Name: name, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return items, nil
}

// SaveCollection serializes {key: items} with two-space indentation and
// replaces the document.
func SaveCollection[T any](ctx context.Context, b Backend, name, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{key: items}, "", "  ")
	if err != nil {
		return &Error{Op: "encode", Name: name, Err: err}
	}
	if err := b.Write(ctx, name, data); err != nil {
		return &Error{Op: "write", Name: name, Err: err}
	}
	return nil
}

// Bootstrap writes an empty collection document when the backend reports
// the document missing. Existing documents are left untouched.
func Bootstrap(ctx context.Context, b Backend, name, key string) (bool, error) {
	_, err := b.Read(ctx, name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotExist) {
		return false, &Error{Op: "read", Name: name, Err: err}
	}
	if err := SaveCollection[json.RawMessage](ctx, b, name, key, nil); err != nil {
		return false, err
	}
	return true, nil
}

// NextID returns max(id)+1 over items, or 1 for an empty collection. Gaps
// left by deletions are never reclaimed.
func NextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}
