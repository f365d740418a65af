// Package main is the entry point for the ybuild tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/cmd/ybuild/commands"
	"go.trai.ch/ybuild/internal/app"
	"go.trai.ch/ybuild/internal/core/domain"
	_ "go.trai.ch/ybuild/internal/wiring"
)

// AppProvider is a function that returns the application.
type AppProvider func(context.Context) (*app.App, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.App, error) {
		a, _, err := graft.ExecuteFor[*app.App](ctx)
		return a, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider AppProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	application, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	for _, opt := range opts {
		opt(application)
	}

	cwd, err := os.Getwd()
	if err != nil {
		application.Logger.Error(err)
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(application, cwd)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildExecutionFailed) {
			return 1
		}
		application.Logger.Error(err)
		return 1
	}
	return 0
}
