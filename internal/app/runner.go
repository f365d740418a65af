package app

import (
	"context"
	"sync"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/ybuild/internal/engine/scheduler"
)

var _ ports.TaskRunner = (*graphRunner)(nil)

// graphRunner runs tasks of one graph for the watch loops. Runs are
// serialized so two loops never build the same outputs at once.
type graphRunner struct {
	mu    sync.Mutex
	sched *scheduler.Scheduler
	graph *domain.Graph
	opts  scheduler.RunOptions
}

func (r *graphRunner) RunTasks(ctx context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sched.Run(ctx, r.graph, names, r.opts)
}
