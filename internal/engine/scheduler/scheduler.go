// Package scheduler runs the tasks of a dependency graph.
package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusCached indicates the task was skipped because its outputs were current.
	StatusCached TaskStatus = "Cached"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
)

// RunOptions controls one scheduler run.
type RunOptions struct {
	// Jobs is the maximum number of task bodies running at once.
	Jobs int
	// NoCache runs cacheable tasks even when their build info is current.
	NoCache bool
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	store    ports.BuildInfoStore
	hasher   ports.Hasher
	resolver ports.InputResolver
	tracer   ports.Tracer
	logger   ports.Logger

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	resolver ports.InputResolver,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		store:      store,
		hasher:     hasher,
		resolver:   resolver,
		tracer:     tracer,
		logger:     logger,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

func (s *Scheduler) initTaskStatuses(tasks []domain.InternedString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range tasks {
		s.taskStatus[task] = StatusPending
	}
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Run executes targets and their transitive prerequisites, each exactly once.
// With one job the order is the depth-first post-order from the targets. The first
// failing task stops new tasks from starting; tasks already running finish.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, targets []string, opts RunOptions) error {
	if opts.Jobs < 1 {
		return zerr.With(domain.ErrInvalidJobs, "jobs", opts.Jobs)
	}

	if err := graph.Validate(); err != nil {
		return err
	}

	closure, err := graph.Closure(targets)
	if err != nil {
		return err
	}

	if opts.Jobs > 1 {
		if err := graph.CheckOutputConflicts(closure); err != nil {
			return err
		}
	}

	planned := make([]string, len(closure))
	depMap := make(map[string][]string, len(closure))
	for i, name := range closure {
		task, _ := graph.GetTask(name)
		planned[i] = name.String()
		depMap[name.String()] = task.DependencyNames()
	}
	s.tracer.EmitPlan(ctx, planned, depMap, targets)

	s.initTaskStatuses(closure)

	return s.newRunState(ctx, graph, closure, opts).runExecutionLoop()
}

type result struct {
	task      domain.InternedString
	err       error
	skipped   bool
	inputHash string
}

type schedulerRunState struct {
	ctx      context.Context
	s        *Scheduler
	graph    *domain.Graph
	opts     RunOptions
	tasks    map[domain.InternedString]domain.Task
	order    map[domain.InternedString]int
	inDegree map[domain.InternedString]int
	ready    []domain.InternedString
	active   int
	failed   bool
	results  chan result
	errs     error
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	closure []domain.InternedString,
	opts RunOptions,
) *schedulerRunState {
	inClosure := make(map[domain.InternedString]bool, len(closure))
	for _, name := range closure {
		inClosure[name] = true
	}

	tasks := make(map[domain.InternedString]domain.Task, len(closure))
	order := make(map[domain.InternedString]int, len(closure))
	inDegree := make(map[domain.InternedString]int, len(closure))
	var ready []domain.InternedString

	for i, name := range closure {
		task, _ := graph.GetTask(name)
		tasks[name] = task
		order[name] = i

		degree := 0
		for _, dep := range task.Dependencies {
			if inClosure[dep] {
				degree++
			}
		}
		inDegree[name] = degree
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	return &schedulerRunState{
		ctx:      ctx,
		s:        s,
		graph:    graph,
		opts:     opts,
		tasks:    tasks,
		order:    order,
		inDegree: inDegree,
		ready:    ready,
		results:  make(chan result, opts.Jobs),
	}
}

func (state *schedulerRunState) runExecutionLoop() error {
	for {
		state.schedule()

		if state.active == 0 {
			break
		}

		select {
		case res := <-state.results:
			state.handleResult(res)
		case <-state.ctx.Done():
			// Running bodies observe the same context; wait for them to return.
			res := <-state.results
			state.handleResult(res)
		}
	}

	if err := state.ctx.Err(); err != nil {
		state.errs = errors.Join(state.errs, err)
	}

	return state.errs
}

// schedule starts ready tasks in closure order until the job limit is reached.
func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.opts.Jobs && !state.failed && state.ctx.Err() == nil {
		slices.SortFunc(state.ready, func(a, b domain.InternedString) int {
			return state.order[a] - state.order[b]
		})
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(name, StatusRunning)

		t := state.tasks[name]
		go state.executeTask(&t)
	}
}

func (state *schedulerRunState) executeTask(t *domain.Task) {
	// The span ends before the result is sent so renderers see completion
	// before dependents start.
	res := func() result {
		ctx, span := state.s.tracer.Start(state.ctx, t.Name.String())
		defer span.End()

		var hash string
		if t.Cacheable {
			skipped, h, err := state.checkCache(t)
			if err != nil {
				span.RecordError(err)
				return result{task: t.Name, err: err}
			}
			if skipped {
				span.SetAttribute(ports.CachedAttribute, true)
				return result{task: t.Name, skipped: true, inputHash: h}
			}
			hash = h

			if err := state.validateAndCleanOutputs(t); err != nil {
				span.RecordError(err)
				return result{task: t.Name, err: err}
			}
		}

		var err error
		if t.Action != nil {
			err = t.Action(ctx, span)
		}
		if err != nil {
			span.RecordError(err)
		}

		return result{task: t.Name, err: err, inputHash: hash}
	}()

	state.results <- res
}

// checkCache hashes the task inputs and reports whether the stored build info
// and the current outputs still match. With NoCache the hash is computed but
// never matched.
func (state *schedulerRunState) checkCache(t *domain.Task) (skipped bool, hash string, err error) {
	root := state.graph.Root()

	inputs, err := state.s.resolver.ResolveInputs(t.InputPatterns(), root)
	if err != nil {
		return false, "", zerr.Wrap(err, domain.ErrInputResolutionFailed.Error())
	}

	hash, err = state.s.hasher.ComputeInputHash(t, inputs)
	if err != nil {
		return false, "", zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error())
	}

	if state.opts.NoCache {
		return false, hash, nil
	}

	info, err := state.s.store.Get(root, t.Name.String())
	if err != nil {
		state.s.logger.Warn("ignoring unreadable build info for " + t.Name.String())
		return false, hash, nil
	}
	if info == nil || info.InputHash != hash {
		return false, hash, nil
	}

	outputs := t.OutputPaths()
	if len(outputs) == 0 {
		return true, hash, nil
	}

	outputHash, err := state.s.hasher.ComputeOutputHash(outputs, root)
	if err != nil {
		return false, hash, nil
	}
	return info.OutputHash == outputHash, hash, nil
}

func (state *schedulerRunState) validateAndCleanOutputs(t *domain.Task) error {
	rootAbs, err := filepath.Abs(state.graph.Root())
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	for _, out := range t.OutputPaths() {
		outAbs := out
		if !filepath.IsAbs(outAbs) {
			outAbs = filepath.Join(rootAbs, out)
		}

		rel, err := filepath.Rel(rootAbs, outAbs)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFailedToResolveRelativePath.Error()), "file", out)
		}
		if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return zerr.With(domain.ErrOutputPathOutsideRoot, "file", out)
		}

		if err := os.RemoveAll(outAbs); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "file", out)
		}
	}

	return nil
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		err := zerr.With(zerr.Wrap(res.err, domain.ErrTaskExecutionFailed.Error()), "task", res.task.String())
		state.errs = errors.Join(state.errs, err)
		state.failed = true
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	if res.skipped {
		state.s.updateStatus(res.task, StatusCached)
	} else {
		state.s.updateStatus(res.task, StatusCompleted)
		state.storeBuildInfo(res)
	}

	for _, dep := range state.graph.Dependents(res.task) {
		if _, ok := state.tasks[dep]; !ok {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

func (state *schedulerRunState) storeBuildInfo(res result) {
	task := state.tasks[res.task]
	if !task.Cacheable {
		return
	}

	root := state.graph.Root()
	var outputHash string
	if outputs := task.OutputPaths(); len(outputs) > 0 {
		h, err := state.s.hasher.ComputeOutputHash(outputs, root)
		if err != nil {
			state.s.logger.Warn("not caching " + res.task.String() + ": outputs could not be hashed")
			return
		}
		outputHash = h
	}

	err := state.s.store.Put(root, domain.BuildInfo{
		TaskName:   res.task.String(),
		InputHash:  res.inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
	if err != nil {
		state.s.logger.Error(err)
	}
}
