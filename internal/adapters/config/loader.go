// Package config loads the ybuild project configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional ybuild.yaml.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot returns the nearest directory at or above cwd holding
// ybuild.yaml, or cwd when there is none.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	if configPath == "" {
		return cwd, nil
	}
	return filepath.Dir(configPath), nil
}

// Load returns the project for cwd, overlaying ybuild.yaml on the defaults.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return domain.DefaultProject(cwd), nil
	}

	var file Projectfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	switch file.Version {
	case domain.ConfigVersion:
	case "":
		l.Logger.Warn(domain.ConfigFileName + " has no version, assuming \"" + domain.ConfigVersion + "\"")
	default:
		return nil, zerr.With(domain.ErrUnsupportedConfigVersion, "version", file.Version)
	}

	project := domain.DefaultProject(filepath.Dir(configPath))
	applyProjectfile(project, &file)

	if err := validateLayout(&project.Layout); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return project, nil
}

func findConfiguration(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func applyProjectfile(p *domain.Project, f *Projectfile) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setList := func(dst *[]string, v []string) {
		if v != nil {
			*dst = v
		}
	}

	set(&p.Layout.SrcDir, f.Layout.SrcDir)
	set(&p.Layout.BuildDir, f.Layout.BuildDir)
	set(&p.Layout.DistDir, f.Layout.DistDir)
	set(&p.Layout.ExamplesDir, f.Layout.ExamplesDir)
	set(&p.Layout.ExamplesVendorDir, f.Layout.ExamplesVendorDir)
	set(&p.Layout.SpecPattern, f.Layout.SpecPattern)
	set(&p.Layout.Readme, f.Layout.Readme)
	setList(&p.Layout.Polyfills, f.Polyfills)
	setList(&p.Layout.ConcatOrder, f.ConcatOrder)
	setList(&p.Layout.Manifests, f.Manifests)

	set(&p.Transpile.Target, f.Transpile.Target)
	setList(&p.Deploy.Lint, f.Deploy.Lint)
	set(&p.Deploy.Remote, f.Deploy.Remote)
}

// validateLayout rejects paths that are absolute or escape the root.
func validateLayout(l *domain.Layout) error {
	fields := map[string][]string{
		"srcDir":            {l.SrcDir},
		"buildDir":          {l.BuildDir},
		"distDir":           {l.DistDir},
		"examplesDir":       {l.ExamplesDir},
		"examplesVendorDir": {l.ExamplesVendorDir},
		"readme":            {l.Readme},
		"polyfills":         l.Polyfills,
		"manifests":         l.Manifests,
	}

	for field, values := range fields {
		for _, v := range values {
			if !isLocal(v) {
				return zerr.With(zerr.With(domain.ErrInvalidLayoutPath, "field", field), "value", v)
			}
		}
	}

	for _, name := range l.ConcatOrder {
		if !isLocal(path.Join(l.SrcDir, name)) {
			return zerr.With(zerr.With(domain.ErrInvalidLayoutPath, "field", "concatOrder"), "value", name)
		}
	}

	return nil
}

func isLocal(p string) bool {
	return filepath.IsLocal(filepath.FromSlash(p))
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
