package fs_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ybuild/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config":                "git",
		".ybuild/store/abc.json":     "{}",
		"node_modules/left-pad/i.js": "x",
		"ignored/file":               "x",
		"src/WebRTC.js":              "x",
		"src/nested/WebRTC.spec.js":  "x",
		"README.md":                  "# y-webrtc",
	})

	walker := fs.NewWalker()
	files := relAll(t, root, slices.Collect(walker.WalkFiles(root, []string{"ignored"})))

	assert.Equal(t, []string{"README.md", "src/WebRTC.js", "src/nested/WebRTC.spec.js"}, files)
}

func TestWalker_WalkFiles_IgnoredRootIsWalked(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"node_modules/regenerator/runtime.js": "x"})

	walker := fs.NewWalker()
	base := filepath.Join(root, "node_modules")
	files := relAll(t, root, slices.Collect(walker.WalkFiles(base, nil)))

	assert.Equal(t, []string{"node_modules/regenerator/runtime.js"}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "", "b.js": "", "c.js": ""})

	var seen int
	for range fs.NewWalker().WalkFiles(root, nil) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
