package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/config"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoad_NoConfigUsesDefaults(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()

	project, err := loader.Load(cwd)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProject(cwd), project)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	writeConfig(t, root, `
version: "1"
layout:
  buildDir: out
polyfills: [node_modules/regenerator/runtime.js]
concatOrder: [Connector.js, WebRTC.js]
transpile:
  target: es5
deploy:
  lint: [npx, standard, --fix]
`)

	project, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, project.Root)
	assert.Equal(t, "out", project.Layout.BuildDir)
	assert.Equal(t, "src", project.Layout.SrcDir, "unset fields keep defaults")
	assert.Equal(t, []string{"node_modules/regenerator/runtime.js"}, project.Layout.Polyfills)
	assert.Equal(t, []string{"Connector.js", "WebRTC.js"}, project.Layout.ConcatOrder)
	assert.Equal(t, []string{"package.json", "dist/package.json"}, project.Layout.Manifests)
	assert.Equal(t, "es5", project.Transpile.Target)
	assert.Equal(t, []string{"npx", "standard", "--fix"}, project.Deploy.Lint)
	assert.Equal(t, "origin", project.Deploy.Remote)
}

func TestLoad_DiscoversConfigUpward(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	writeConfig(t, root, `version: "1"`)

	nested := filepath.Join(root, "src", "nested")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	project, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, project.Root)

	discovered, err := loader.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, discovered)
}

func TestDiscoverRoot_FallsBackToCwd(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()

	root, err := loader.DiscoverRoot(cwd)
	require.NoError(t, err)
	assert.Equal(t, cwd, root)
}

func TestLoad_MissingVersionWarns(t *testing.T) {
	loader, log := newLoader(t)
	root := t.TempDir()
	writeConfig(t, root, `concatOrder: [WebRTC.js]`)

	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := loader.Load(root)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		meta    map[string]string
	}{
		{
			name:    "unsupported version",
			content: `version: "2"`,
			want:    "unsupported config version",
			meta:    map[string]string{"version": "2"},
		},
		{
			name:    "malformed yaml",
			content: "version: \"1\"\nconcatOrder: [unterminated",
			want:    "failed to parse config file",
		},
		{
			name:    "layout escapes root",
			content: "version: \"1\"\nlayout:\n  distDir: ../elsewhere\n",
			want:    "layout path must be relative",
			meta:    map[string]string{"field": "distDir", "value": "../elsewhere"},
		},
		{
			name:    "absolute polyfill",
			content: "version: \"1\"\npolyfills: [/usr/lib/regenerator.js]\n",
			want:    "layout path must be relative",
			meta:    map[string]string{"field": "polyfills"},
		},
		{
			name:    "concat entry escapes src",
			content: "version: \"1\"\nconcatOrder: [../../x.js]\n",
			want:    "layout path must be relative",
			meta:    map[string]string{"field": "concatOrder"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			_, err := loader.Load(root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			if len(tt.meta) == 0 {
				return
			}
			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			for k, v := range tt.meta {
				assert.Equal(t, v, zErr.Metadata()[k], k)
			}
		})
	}
}
