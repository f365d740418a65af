package ports

import "context"

// DevServer serves local development pages until ctx is cancelled.
//
//go:generate mockgen -source=dev_server.go -destination=mocks/mock_dev_server.go -package=mocks
type DevServer interface {
	// ServeSpecs serves the browser spec runner for the files returned by specs.
	// specs is called per request so rebuilt files are picked up.
	ServeSpecs(ctx context.Context, addr, root string, specs func() ([]string, error)) error

	// ServeDir serves dir as static files.
	ServeDir(ctx context.Context, addr, dir string) error
}
