package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash cache keys for tasks and their files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash returns the xxhash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return digest.Sum64(), nil
}

// ComputeInputHash hashes the task definition, its fingerprint and the
// content of inputs, which must be resolved file or directory paths.
// Input order is significant since it is the concatenation order.
func (h *Hasher) ComputeInputHash(task *domain.Task, inputs []string) (string, error) {
	digest := xxhash.New()

	hashTaskDefinition(task, digest)

	for _, input := range inputs {
		if err := h.hashPath(input, digest); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

func hashTaskDefinition(task *domain.Task, digest *xxhash.Digest) {
	field := func(s string) {
		_, _ = digest.WriteString(s)
		_, _ = digest.Write([]byte{0})
	}
	section := func(values []domain.InternedString) {
		for _, v := range values {
			field(v.String())
		}
		_, _ = digest.Write([]byte{0})
	}

	field(task.Name.String())
	section(task.Inputs)
	section(task.Outputs)
	section(task.Dependencies)

	for _, k := range slices.Sorted(maps.Keys(task.Fingerprint)) {
		field(k + "=" + task.Fingerprint[k])
	}
	_, _ = digest.Write([]byte{0})
}

func (h *Hasher) hashPath(path string, digest io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, digest)
	}

	for file := range h.walker.WalkFiles(path, nil) {
		if err := h.hashFile(file, digest); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, digest io.Writer) error {
	_, _ = digest.Write([]byte(path))
	_, _ = digest.Write([]byte{0})

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, domain.ErrWriteHashFailed.Error())
	}
	return nil
}

// ComputeOutputHash hashes outputs relative to root in sorted order.
// A missing output is reported as fs.ErrNotExist so callers can treat it as a cache miss.
func (h *Hasher) ComputeOutputHash(outputs []string, root string) (string, error) {
	digest := xxhash.New()

	for _, output := range slices.Sorted(slices.Values(outputs)) {
		path := filepath.Join(root, output)

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return "", zerr.With(zerr.Wrap(iofs.ErrNotExist, "output file missing"), "path", path)
			}
			return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}

		if err := h.hashPath(path, digest); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
