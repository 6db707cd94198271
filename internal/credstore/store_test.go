package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"todocli/internal/credstore"
)

func newStore(t *testing.T) (*credstore.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return credstore.NewFileStore(dir, zerolog.Nop()), dir
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save("T1"))

	token, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "T1", token)
}

func TestLoadAbsentIsNotAnError(t *testing.T) {
	store, _ := newStore(t)

	token, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, token)
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save("old"))
	require.NoError(t, store.Save("new"))

	token, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", token)
}

func TestTokenFileMode(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Save("T1"))

	info, err := os.Stat(filepath.Join(dir, credstore.TokenFile))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClear(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Save("T1"))
	require.NoError(t, store.Clear())

	_, err := os.Stat(filepath.Join(dir, credstore.TokenFile))
	require.True(t, os.IsNotExist(err))

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClearWhenEmptySucceeds(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Clear())
}

func TestLoadIgnoresWhitespaceOnlyFile(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, credstore.TokenFile), []byte("\n"), 0600))

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)
}
