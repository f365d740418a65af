package ports

import "context"

// TaskRunner runs named tasks of the current graph with their prerequisites.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type TaskRunner interface {
	RunTasks(ctx context.Context, names []string) error
}
