package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/linear"
	"go.trai.ch/zerr"
)

func asciiProfile() termenv.Profile { return termenv.Ascii }

func newRenderer() (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr, asciiProfile), &stdout, &stderr
}

func TestRenderer_TaskLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer()
	require.NoError(t, r.Start(context.Background()))

	r.OnPlanEmit([]string{"build:test", "test"}, map[string][]string{
		"test": {"build:test"},
	}, []string{"default"})
	assert.Contains(t, stderr.String(), "Running 2 task(s) for default")

	start := time.Now()
	r.OnTaskStart("span1", "", "build:test", start)
	assert.Contains(t, stderr.String(), "[build:test] Starting...")

	r.OnTaskLog("span1", []byte("first line\n"))
	r.OnTaskLog("span1", []byte("second line\n"))
	assert.Equal(t, "[build:test] first line\n[build:test] second line\n", stdout.String())

	r.OnTaskComplete("span1", start.Add(100*time.Millisecond), nil, false)
	assert.Contains(t, stderr.String(), "[build:test] ✓ Completed in 100ms")

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "lint", start)

	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("span1", []byte(" line\r\nnext"))
	assert.Equal(t, "[lint] partial line\n", stdout.String())

	r.OnTaskComplete("span1", start.Add(time.Millisecond), nil, false)
	assert.Equal(t, "[lint] partial line\n[lint] next\n", stdout.String())
}

func TestRenderer_TaskError(t *testing.T) {
	r, _, stderr := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "test", start)
	r.OnTaskComplete("span1", start.Add(50*time.Millisecond), zerr.New("specs failed"), false)

	assert.Contains(t, stderr.String(), "[test] ✗ Failed after 50ms: specs failed")
}

func TestRenderer_Cached(t *testing.T) {
	r, _, stderr := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "deploy:build", start)
	r.OnTaskComplete("span1", start, nil, true)

	assert.Contains(t, stderr.String(), "[deploy:build] - Up to date (cached)")
	assert.NotContains(t, stderr.String(), "Completed")
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, stdout, stderr := newRenderer()

	r.OnTaskLog("missing", []byte("dropped\n"))
	r.OnTaskComplete("missing", time.Now(), nil, false)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_InterleavedTasks(t *testing.T) {
	r, stdout, _ := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "deploy:build", start)
	r.OnTaskStart("span2", "", "build:test", start)

	r.OnTaskLog("span1", []byte("a1\n"))
	r.OnTaskLog("span2", []byte("b1\n"))
	r.OnTaskLog("span1", []byte("a2\n"))

	assert.Equal(t, []string{
		"[deploy:build] a1",
		"[build:test] b1",
		"[deploy:build] a2",
	}, strings.Split(strings.TrimSpace(stdout.String()), "\n"))
}

func TestRenderer_StopFlushes(t *testing.T) {
	r, stdout, _ := newRenderer()

	r.OnTaskStart("span1", "", "dev:node", time.Now())
	r.OnTaskLog("span1", []byte("unterminated"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[dev:node] unterminated\n", stdout.String())
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, nil)

	start := time.Now()
	r.OnTaskStart("span1", "", "test", start)
	r.OnTaskComplete("span1", start, nil, false)

	assert.NotContains(t, stderr.String(), "\x1b[")
}

func TestRenderer_ANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, nil)

	start := time.Now()
	r.OnTaskStart("span1", "", "test", start)
	r.OnTaskComplete("span1", start, nil, false)

	assert.Contains(t, stderr.String(), "\x1b[")
}
