package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/cas"
	"go.trai.ch/ybuild/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	info := domain.BuildInfo{
		TaskName:   "deploy:build",
		InputHash:  "abc",
		OutputHash: "def",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, info))

	got, err := store.Get(root, "deploy:build")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info.InputHash, got.InputHash)
	assert.Equal(t, info.OutputHash, got.OutputHash)
	assert.True(t, info.Timestamp.Equal(got.Timestamp))
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore().Get(t.TempDir(), "build:test")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PutOverwrites(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.BuildInfo{TaskName: "build:test", InputHash: "one"}))
	require.NoError(t, store.Put(root, domain.BuildInfo{TaskName: "build:test", InputHash: "two"}))

	got, err := store.Get(root, "build:test")
	require.NoError(t, err)
	assert.Equal(t, "two", got.InputHash)

	entries, err := os.ReadDir(filepath.Join(root, domain.DefaultStorePath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_PathIsHashed(t *testing.T) {
	path := cas.Path("/project", "deploy:build")

	assert.True(t, strings.HasPrefix(path, filepath.Join("/project", ".ybuild", "store")))
	assert.NotContains(t, filepath.Base(path), ":")
	assert.Equal(t, ".json", filepath.Ext(path))
	assert.NotEqual(t, path, cas.Path("/project", "build:test"))
}

func TestStore_GetCorrupted(t *testing.T) {
	root := t.TempDir()
	path := cas.Path(root, "test")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	_, err := cas.NewStore().Get(root, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal build info")
}
