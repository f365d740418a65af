package ports

import "go.trai.ch/ybuild/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory.
	// A missing configuration file yields the default project rooted at cwd.
	Load(cwd string) (*domain.Project, error)

	// DiscoverRoot walks up from cwd to find the directory containing ybuild.yaml.
	// It returns cwd when no configuration file exists.
	DiscoverRoot(cwd string) (string, error)
}
