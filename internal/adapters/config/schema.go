package config

// Projectfile is the structure of ybuild.yaml. Omitted fields keep their defaults.
type Projectfile struct {
	Version     string       `yaml:"version"`
	Layout      LayoutDTO    `yaml:"layout"`
	Polyfills   []string     `yaml:"polyfills"`
	ConcatOrder []string     `yaml:"concatOrder"`
	Manifests   []string     `yaml:"manifests"`
	Transpile   TranspileDTO `yaml:"transpile"`
	Deploy      DeployDTO    `yaml:"deploy"`
}

// LayoutDTO holds the directory layout overrides.
type LayoutDTO struct {
	SrcDir            string `yaml:"srcDir"`
	BuildDir          string `yaml:"buildDir"`
	DistDir           string `yaml:"distDir"`
	ExamplesDir       string `yaml:"examplesDir"`
	ExamplesVendorDir string `yaml:"examplesVendorDir"`
	SpecPattern       string `yaml:"specPattern"`
	Readme            string `yaml:"readme"`
}

// TranspileDTO configures the JavaScript transformer.
type TranspileDTO struct {
	Target string `yaml:"target"`
}

// DeployDTO configures the release sequence.
type DeployDTO struct {
	Lint   []string `yaml:"lint"`
	Remote string   `yaml:"remote"`
}
