package pipeline

import (
	"context"
	"io"
	"net"

	"go.trai.ch/ybuild/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

const loopback = "127.0.0.1"

func (p *Pipeline) watchTestFiles(ctx context.Context, tasks ...string) error {
	return p.Watch.Run(ctx, p.project.Root, []domain.WatchBinding{
		{Pattern: p.opts.TestFiles, Tasks: tasks},
	})
}

// devNode reruns the specs whenever a test file changes.
func (p *Pipeline) devNode(ctx context.Context, _ io.Writer) error {
	return p.watchTestFiles(ctx, TaskTest)
}

// devBrowser rebuilds on changes and serves the spec runner until ctx is cancelled.
func (p *Pipeline) devBrowser(ctx context.Context, _ io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.watchTestFiles(ctx, TaskBuildTest)
	})
	g.Go(func() error {
		addr := net.JoinHostPort(loopback, p.opts.TestPort)
		return p.Server.ServeSpecs(ctx, addr, p.project.Root, p.testFiles)
	})

	return g.Wait()
}

// dev runs the specs once, then the browser and node dev bodies together.
// A failing first spec run is reported but does not stop the dev servers.
func (p *Pipeline) dev(ctx context.Context, out io.Writer) error {
	if err := p.test(ctx, out); err != nil {
		p.Logger.Error(err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.devBrowser(ctx, out)
	})
	g.Go(func() error {
		return p.devNode(ctx, out)
	})
	return g.Wait()
}

// devExamples rebuilds the examples bundle on changes and serves the examples directory.
func (p *Pipeline) devExamples(ctx context.Context, _ io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.watchTestFiles(ctx, TaskCopyDist)
	})
	g.Go(func() error {
		addr := net.JoinHostPort(loopback, p.opts.ExamplesPort)
		return p.Server.ServeDir(ctx, addr, p.abs(p.project.Layout.ExamplesDir))
	})

	return g.Wait()
}
