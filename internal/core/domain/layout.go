package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".ybuild"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "ybuild.yaml"

	// ConfigVersion is the only supported configuration schema version.
	ConfigVersion = "1"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for ybuild metadata.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultStorePath returns the default path for the build info store.
// It joins .ybuild and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}

// Layout describes where sources, intermediates and release artifacts live.
// All paths are relative to the project root.
type Layout struct {
	SrcDir            string
	BuildDir          string
	DistDir           string
	ExamplesDir       string
	ExamplesVendorDir string
	SpecPattern       string
	Readme            string
	Polyfills         []string
	ConcatOrder       []string
	Manifests         []string
}

// DefaultLayout returns the layout of the y-webrtc repository.
func DefaultLayout() Layout {
	return Layout{
		SrcDir:            "src",
		BuildDir:          "build",
		DistDir:           "dist",
		ExamplesDir:       "dist/Examples",
		ExamplesVendorDir: "dist/Examples/bower_components/yjs",
		SpecPattern:       "**/*.spec.js",
		Readme:            "README.md",
		Polyfills:         []string{},
		ConcatOrder:       []string{"WebRTC.js"},
		Manifests:         []string{"package.json", "dist/package.json"},
	}
}

// TranspileConfig configures the JavaScript transformer.
type TranspileConfig struct {
	Target string
}

// DeployConfig configures the release sequence.
type DeployConfig struct {
	Lint   []string
	Remote string
}

// Project is the loaded project configuration.
type Project struct {
	Root      string
	Layout    Layout
	Transpile TranspileConfig
	Deploy    DeployConfig
}

// DefaultProject returns the configuration used when no config file exists.
func DefaultProject(root string) *Project {
	return &Project{
		Root:      root,
		Layout:    DefaultLayout(),
		Transpile: TranspileConfig{Target: "es2015"},
		Deploy: DeployConfig{
			Lint:   []string{"standard"},
			Remote: "origin",
		},
	}
}
