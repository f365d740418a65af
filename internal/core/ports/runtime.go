package ports

import "context"

// RuntimeProbe inspects the local JavaScript runtime.
//
//go:generate mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type RuntimeProbe interface {
	// NodeVersion returns the version reported by the node binary, e.g. "v0.10.48".
	NodeVersion(ctx context.Context) (string, error)
}
