package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cinetick.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	return s, path
}

func TestFileStoreReadAfterWrite(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("auth_token", "tok-123"))

	value, ok, err := s.Get("auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", value)
}

func TestFileStoreMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Get("auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Set("auth_token", "tok-123"))
	require.NoError(t, s.Set("favorite_movie_ids", `["m1","m2"]`))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	value, ok, err := reopened.Get("auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", value)
}

func TestFileStoreDelete(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Set("auth_token", "tok-123"))
	require.NoError(t, s.Delete("auth_token"))

	_, ok, err := s.Get("auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err = reopened.Get("auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinetick.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cinetick.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("auth_token", "tok"))

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
