package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/fs"
	"go.trai.ch/ybuild/internal/core/domain"
)

func bundleTask() *domain.Task {
	return &domain.Task{
		Name:        domain.NewInternedString("deploy:build"),
		Inputs:      domain.NewInternedStrings([]string{"src/WebRTC.js"}),
		Outputs:     domain.NewInternedStrings([]string{"dist/y-webrtc.js"}),
		Fingerprint: map[string]string{"export": "ignore", "name": "y-webrtc.js"},
	}
}

func TestHasher_ComputeInputHash(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/WebRTC.js": "v1", "src/Connector.js": "c"})
	inputs := []string{filepath.Join(root, "src/WebRTC.js"), filepath.Join(root, "src/Connector.js")}

	h := fs.NewHasher(fs.NewWalker())

	first, err := h.ComputeInputHash(bundleTask(), inputs)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	again, err := h.ComputeInputHash(bundleTask(), inputs)
	require.NoError(t, err)
	assert.Equal(t, first, again, "hash must be deterministic")

	t.Run("content change", func(t *testing.T) {
		writeTree(t, root, map[string]string{"src/WebRTC.js": "v2"})
		t.Cleanup(func() { writeTree(t, root, map[string]string{"src/WebRTC.js": "v1"}) })

		changed, err := h.ComputeInputHash(bundleTask(), inputs)
		require.NoError(t, err)
		assert.NotEqual(t, first, changed)
	})

	t.Run("fingerprint change", func(t *testing.T) {
		task := bundleTask()
		task.Fingerprint["export"] = "commonjs"

		changed, err := h.ComputeInputHash(task, inputs)
		require.NoError(t, err)
		assert.NotEqual(t, first, changed)
	})

	t.Run("concat order change", func(t *testing.T) {
		reversed := []string{inputs[1], inputs[0]}

		changed, err := h.ComputeInputHash(bundleTask(), reversed)
		require.NoError(t, err)
		assert.NotEqual(t, first, changed)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := h.ComputeInputHash(bundleTask(), []string{filepath.Join(root, "gone.js")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat path")
	})
}

func TestHasher_ComputeOutputHash(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"dist/y-webrtc.js":     "bundle",
		"dist/y-webrtc.js.map": "{}",
		"build/WebRTC.js":      "built",
	})

	h := fs.NewHasher(fs.NewWalker())

	a, err := h.ComputeOutputHash([]string{"dist/y-webrtc.js", "dist/y-webrtc.js.map"}, root)
	require.NoError(t, err)
	b, err := h.ComputeOutputHash([]string{"dist/y-webrtc.js.map", "dist/y-webrtc.js"}, root)
	require.NoError(t, err)
	assert.Equal(t, a, b, "output order must not matter")

	dir, err := h.ComputeOutputHash([]string{"build"}, root)
	require.NoError(t, err)
	assert.NotEmpty(t, dir)

	require.NoError(t, os.Remove(filepath.Join(root, "dist/y-webrtc.js.map")))
	_, err = h.ComputeOutputHash([]string{"dist/y-webrtc.js.map"}, root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}
