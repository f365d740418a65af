// Package cas persists per-task build info used for cache decisions.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore with one JSON file per task under
// <root>/.ybuild/store. Files are named by the sha256 of the task name since
// names contain ':'.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the build info of taskName, or nil, nil if none was recorded.
func (s *Store) Get(root, taskName string) (*domain.BuildInfo, error) {
	path := Path(root, taskName)

	data, err := os.ReadFile(path) //nolint:gosec // Path is built from the project root and a hashed name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "task", taskName)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "task", taskName)
	}

	return &info, nil
}

// Put records info, replacing the previous entry atomically.
func (s *Store) Put(root string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	path := Path(root, info.TaskName)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, ".buildinfo-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Path returns the file holding the build info of taskName.
func Path(root, taskName string) string {
	sum := sha256.Sum256([]byte(taskName))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(sum[:])+".json")
}
