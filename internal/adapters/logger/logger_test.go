package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv(logger.FormatEnvVar, "")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("Serving specs on http://127.0.0.1:8888")
	lg.Warn("module format umd is not supported by the transpiler, emitting an iife")

	g := goldie.New(t)
	g.Assert(t, "levels", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("exit status 1"),
			goldenName: "error_plain",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "task failure chain",
			err: zerr.With(
				zerr.Wrap(
					zerr.With(zerr.New("command failed"), "exit_code", 2),
					"task execution failed",
				),
				"task", "deploy",
			),
			goldenName: "error_task_chain",
		},
		{
			name:       "stdlib chain is printed as one message",
			err:        fmt.Errorf("lint: %w", errors.New("standard: not found")),
			goldenName: "error_stdlib_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.Wrap(errors.New("connection refused"), "git push failed"), "remote", "origin"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"remote":"origin"`)
	assert.Contains(t, out, "git push failed")
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Error(errors.New("back to pretty"))
	assert.Equal(t, "✗ Error: back to pretty\n", buf.String())
}

func TestLogger_FormatFromEnv(t *testing.T) {
	t.Setenv(logger.FormatEnvVar, "json")

	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, buf := newTestLogger(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			lg.Info("watching")
			lg.Warn("rebuilding")
			lg.SetJSON(false)
		})
	}
	wg.Wait()

	assert.NotEmpty(t, buf.String())
}
