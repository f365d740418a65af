// Package watch reruns tasks when files matching a binding change.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/ybuild/internal/adapters/fs" //nolint:depguard // glob semantics shared with input resolution
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
)

// DefaultWindow is the default time window for coalescing file events.
const DefaultWindow = 50 * time.Millisecond

// Loop watches a project root and dispatches bound tasks through a runner.
type Loop struct {
	factory ports.WatcherFactory
	runner  ports.TaskRunner
	logger  ports.Logger
	window  time.Duration
}

// NewLoop creates a Loop. A non-positive window selects DefaultWindow.
func NewLoop(factory ports.WatcherFactory, runner ports.TaskRunner, logger ports.Logger, window time.Duration) *Loop {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Loop{
		factory: factory,
		runner:  runner,
		logger:  logger,
		window:  window,
	}
}

type compiledBinding struct {
	binding domain.WatchBinding
	matcher fs.Matcher
}

// Run watches root until ctx is cancelled, then stops the watcher and returns nil.
// Task failures are logged and the loop keeps watching. Errors are returned
// only when a binding pattern is invalid or the watcher cannot start.
func (l *Loop) Run(ctx context.Context, root string, bindings []domain.WatchBinding) error {
	compiled := make([]compiledBinding, 0, len(bindings))
	for _, b := range bindings {
		m, err := fs.CompilePattern(b.Pattern)
		if err != nil {
			return err
		}
		compiled = append(compiled, compiledBinding{binding: b, matcher: m})
	}

	w, err := l.factory.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := w.Stop(); stopErr != nil {
			l.logger.Warn("watcher: " + stopErr.Error())
		}
	}()

	if err := w.Start(ctx, root); err != nil {
		return err
	}

	batches := make(chan []string)
	debouncer := NewDebouncer(l.window, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-eventsDone:
			if ctx.Err() == nil {
				l.logger.Warn("watcher stopped unexpectedly")
			}
			return nil
		case paths := <-batches:
			l.dispatch(ctx, root, compiled, paths)
		}
	}
}

// dispatch runs the tasks of every binding matched by at least one path,
// one task at a time in binding order.
func (l *Loop) dispatch(ctx context.Context, root string, bindings []compiledBinding, paths []string) {
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			continue
		}
		rel = append(rel, filepath.ToSlash(r))
	}

	for _, b := range bindings {
		if !matchesAny(b.matcher, rel) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		l.logger.Info("Change detected, running " + strings.Join(b.binding.Tasks, ", "))
		// Each task runs on its own so one failure does not skip the rest.
		for _, name := range b.binding.Tasks {
			if ctx.Err() != nil {
				return
			}
			if err := l.runner.RunTasks(ctx, []string{name}); err != nil && ctx.Err() == nil {
				l.logger.Error(err)
			}
		}
	}
}

func matchesAny(m fs.Matcher, paths []string) bool {
	for _, p := range paths {
		if m.Match(p) {
			return true
		}
	}
	return false
}
