package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coursehub/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStores_BootstrapsMissingDocuments(t *testing.T) {
	dir := t.TempDir()
	existing := `{"modules": [{"id": 3, "title": "Kept"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modules.json"), []byte(existing), 0o644))

	cfg := &config.Config{
		StorageBackend:  "file",
		DataDir:         dir,
		CoursesDocument: "cours.json",
		ModulesDocument: "modules.json",
		LessonsDocument: "lessons.json",
	}
	stores, closeFn, err := OpenStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	data, err := os.ReadFile(filepath.Join(dir, "cours.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cours": []}`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "lessons.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"lessons": []}`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "modules.json"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(data))

	m, err := stores.Modules.GetModuleByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Kept", m.Title)
}

func TestOpenStores_UnknownBackend(t *testing.T) {
	_, closeFn, err := OpenStores(context.Background(), &config.Config{StorageBackend: "tape"}, zerolog.Nop())
	require.Error(t, err)
	assert.NotNil(t, closeFn)
}
