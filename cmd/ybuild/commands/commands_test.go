package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/cmd/ybuild/commands"
	"go.trai.ch/ybuild/internal/app"
	"go.trai.ch/ybuild/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, cwd string, targetNames []string, opts app.RunOptions) error
	tasksFunc func(cwd string) ([]app.TaskInfo, error)
	cleanFunc func(ctx context.Context, cwd string, opts app.CleanOptions) error
}

func (m *mockApp) Run(ctx context.Context, cwd string, targetNames []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, cwd, targetNames, opts)
	}
	return nil
}

func (m *mockApp) Tasks(cwd string) ([]app.TaskInfo, error) {
	if m.tasksFunc != nil {
		return m.tasksFunc(cwd)
	}
	return nil, nil
}

func (m *mockApp) Clean(ctx context.Context, cwd string, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, cwd, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var (
			capturedOpts    app.RunOptions
			capturedTargets []string
			capturedCwd     string
		)

		mock := &mockApp{
			runFunc: func(_ context.Context, cwd string, targetNames []string, opts app.RunOptions) error {
				capturedCwd = cwd
				capturedOpts = opts
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock, "/work/y-webrtc")
		cli.SetArgs([]string{
			"deploy", "dev:examples",
			"--export", "umd",
			"--name", "webrtc.js",
			"--testport", "9999",
			"--testfiles", "src/*.spec.js",
			"--regenerator", "true",
			"--examplesport", "4000",
			"--no-cache",
			"-j", "4",
			"--ci",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "/work/y-webrtc", capturedCwd)
		assert.Equal(t, []string{"deploy", "dev:examples"}, capturedTargets)
		assert.Equal(t, app.Flags{
			Export:       "umd",
			Name:         "webrtc.js",
			TestPort:     "9999",
			TestFiles:    "src/*.spec.js",
			Regenerator:  "true",
			ExamplesPort: "4000",
		}, capturedOpts.Flags)
		assert.True(t, capturedOpts.NoCache)
		assert.Equal(t, 4, capturedOpts.Jobs)
		assert.Equal(t, "linear", capturedOpts.OutputMode)
	})

	t.Run("passes defaults without targets", func(t *testing.T) {
		var (
			capturedOpts    app.RunOptions
			capturedTargets []string
			called          bool
		)

		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, targetNames []string, opts app.RunOptions) error {
				called = true
				capturedOpts = opts
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock, t.TempDir())
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.Empty(t, capturedTargets)
		assert.Equal(t, "ignore", capturedOpts.Flags.Export)
		assert.Equal(t, "y-webrtc.js", capturedOpts.Flags.Name)
		assert.Empty(t, capturedOpts.Flags.Regenerator)
		assert.Equal(t, 1, capturedOpts.Jobs)
		assert.Equal(t, "auto", capturedOpts.OutputMode)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, []string, app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, t.TempDir())
		cli.SetArgs([]string{"test"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_RegeneratorHelp(t *testing.T) {
	cli := commands.New(&mockApp{}, t.TempDir())

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "Prepend the polyfills to the spec files")
	assert.Contains(t, buf.String(), "Generators are not lowered")
}

func TestCommands_Tasks(t *testing.T) {
	mock := &mockApp{
		tasksFunc: func(string) ([]app.TaskInfo, error) {
			return []app.TaskInfo{
				{Name: "build:test", Description: "Build the spec bundle"},
				{Name: "test", Description: "Run the specs", Dependencies: []string{"build:test"}},
			}, nil
		},
	}

	cli := commands.New(mock, t.TempDir())
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"tasks"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t,
		"build:test  Build the spec bundle  -\n"+
			"test        Run the specs          build:test\n",
		buf.String())
}

func TestCommands_Tasks_Error(t *testing.T) {
	mock := &mockApp{
		tasksFunc: func(string) ([]app.TaskInfo, error) {
			return nil, errors.New("bad config")
		},
	}

	cli := commands.New(mock, t.TempDir())
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"tasks"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "store only", args: []string{"clean"}, want: app.CleanOptions{}},
		{name: "all", args: []string{"clean", "--all"}, want: app.CleanOptions{All: true}},
		{name: "all with name", args: []string{"clean", "-a", "--name", "webrtc.js"}, want: app.CleanOptions{All: true, Name: "webrtc.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, _ string, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock, t.TempDir())
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, t.TempDir())

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "ybuild version "+build.Version)
}
