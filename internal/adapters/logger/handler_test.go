package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ybuild/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, ""},
		{slog.LevelInfo, "message\n"},
		{slog.LevelWarn, "! message\n"},
		{slog.LevelError, "✗ message\n"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			lg, buf := newTestHandler(t)
			lg.Log(t.Context(), tt.level, "message")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	lg, buf := newTestHandler(t)

	lg.With("task", "test").WithGroup("spec").Info("done", "failed", 0)

	assert.Equal(t, "done task=test spec.failed=0\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	lg, buf := newTestHandler(t)

	lg.WithGroup("run").With("jobs", 2).WithGroup("task").Info("done",
		"name", "test",
		slog.Group("specs", "failed", 0),
	)

	assert.Equal(t, "done run.jobs=2 run.task.name=test run.task.specs.failed=0\n", buf.String())
}

func TestPrettyHandler_WithAttrsDoesNotLeak(t *testing.T) {
	lg, buf := newTestHandler(t)

	_ = lg.With("a", 1)
	lg.Info("plain")

	assert.Equal(t, "plain\n", buf.String())
}
