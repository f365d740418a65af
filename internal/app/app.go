// Package app implements the application layer for ybuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/ybuild/internal/adapters/detector"
	"go.trai.ch/ybuild/internal/adapters/linear"
	"go.trai.ch/ybuild/internal/adapters/telemetry"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/ybuild/internal/engine/scheduler"
	"go.trai.ch/ybuild/internal/engine/watch"
	"go.trai.ch/ybuild/internal/pipeline"
	"go.trai.ch/ybuild/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultTarget runs when no task is named.
const DefaultTarget = pipeline.TaskDefault

// Adapters are the collaborators the application drives.
type Adapters struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Store        ports.BuildInfoStore
	Hasher       ports.Hasher
	Resolver     ports.InputResolver
	Executor     ports.Executor
	Transpiler   ports.Transpiler
	Bumper       ports.VersionBumper
	Specs        ports.SpecRunner
	Server       ports.DevServer
	Watchers     ports.WatcherFactory
	Runtime      ports.RuntimeProbe
	Environment  *detector.Environment
}

// App represents the main application logic.
type App struct {
	Adapters

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(adapters Adapters) *App {
	return &App{
		Adapters: adapters,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput redirects the task renderer.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Flags      Flags
	NoCache    bool
	Jobs       int
	OutputMode string
}

// Run executes the named tasks and their prerequisites in the project containing cwd.
func (a *App) Run(ctx context.Context, cwd string, targetNames []string, opts RunOptions) error {
	// 1. Load the project and resolve options
	project, err := a.ConfigLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	options, err := ResolveOptions(ctx, opts.Flags, a.Runtime)
	if err != nil {
		return err
	}

	if len(targetNames) == 0 {
		targetNames = []string{DefaultTarget}
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = domain.DefaultJobs
	}
	runOpts := scheduler.RunOptions{Jobs: jobs, NoCache: opts.NoCache}

	// 2. Initialize renderer and telemetry
	renderer := a.newRenderer(opts.OutputMode)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracerWithProvider(tp, "ybuild").WithRenderer(renderer)

	// 3. Build the graph
	sched := scheduler.NewScheduler(a.Store, a.Hasher, a.Resolver, tracer, a.Logger)
	runner := &graphRunner{sched: sched, opts: runOpts}

	graph, err := pipeline.New(project, options, pipeline.Deps{
		Resolver:   a.Resolver,
		Transpiler: a.Transpiler,
		Executor:   a.Executor,
		Bumper:     a.Bumper,
		Specs:      a.Specs,
		Server:     a.Server,
		Watch:      watch.NewLoop(a.Watchers, runner, a.Logger, watch.DefaultWindow),
		Logger:     a.Logger,
	}).Graph()
	if err != nil {
		return err
	}
	runner.graph = graph

	if _, err := graph.Closure(targetNames); err != nil {
		return err
	}

	// 4. Run renderer and scheduler concurrently
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if err := sched.Run(ctx, graph, targetNames, runOpts); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) newRenderer(outputMode string) ports.Renderer {
	detected := detector.ModeAuto
	if a.Environment != nil {
		detected = a.Environment.Mode()
	}
	mode := detector.ResolveMode(detected, outputMode)
	return linear.NewRenderer(a.stdout, a.stderr, output.ProfileFor(mode == detector.ModeLinear))
}

// TaskInfo describes a registered task.
type TaskInfo struct {
	Name         string
	Description  string
	Dependencies []string
}

// Tasks lists the tasks of the project containing cwd in registration order.
func (a *App) Tasks(cwd string) ([]TaskInfo, error) {
	project, err := a.ConfigLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	graph, err := pipeline.New(project, domain.DefaultOptions(), pipeline.Deps{}).Graph()
	if err != nil {
		return nil, err
	}

	infos := make([]TaskInfo, 0, graph.TaskCount())
	for task := range graph.Tasks() {
		infos = append(infos, TaskInfo{
			Name:         task.Name.String(),
			Description:  task.Description,
			Dependencies: task.DependencyNames(),
		})
	}
	return infos, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All also removes the build directory and the root test bundle.
	All  bool
	Name string
}

// Clean removes the build info store and, with All, the test build outputs.
func (a *App) Clean(_ context.Context, cwd string, options CleanOptions) error {
	project, err := a.ConfigLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error
	remove := func(path string, name string) {
		a.Logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.Logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(filepath.Join(project.Root, domain.DefaultStorePath()), "build info store")

	if options.All {
		name := options.Name
		if name == "" {
			name = domain.DefaultBundleName
		}
		remove(filepath.Join(project.Root, project.Layout.BuildDir), "build directory")
		remove(filepath.Join(project.Root, name), "test bundle")
	}

	return errs
}
