package ports

import "go.trai.ch/ybuild/internal/core/domain"

// Hasher defines the interface for computing cache keys.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash hashes the task definition, its fingerprint and the content of the resolved inputs.
	ComputeInputHash(task *domain.Task, inputs []string) (string, error)

	// ComputeOutputHash hashes the content of the given outputs relative to root.
	ComputeOutputHash(outputs []string, root string) (string, error)
}
