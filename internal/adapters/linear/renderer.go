// Package linear provides a synchronous, line-buffered renderer.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/ybuild/internal/ui/output"
	"go.trai.ch/ybuild/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological, task-prefixed logs.
// Task output goes to stdout, lifecycle messages to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	tasks   map[string]*taskState
	buffers map[string]*bytes.Buffer
}

type taskState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers default to the process streams
// and a nil profileFn selects output.ColorProfileANSI.
func NewRenderer(stdout, stderr io.Writer, profileFn func() termenv.Profile) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if profileFn == nil {
		profileFn = output.ColorProfileANSI
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, profileFn),
		tasks:   make(map[string]*taskState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}
	return nil
}

// Wait is a no-op.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned tasks.
func (r *Renderer) OnPlanEmit(tasks []string, _ map[string][]string, targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	arrow := r.output.String(style.Arrow).Foreground(r.output.Color(string(style.Iris))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s Running %d task(s) for %s\n",
		arrow, len(tasks), strings.Join(targets, ", "))
}

// OnTaskStart prints a task start message.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}
	r.buffers[spanID] = new(bytes.Buffer)

	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// OnTaskLog buffers log data and prints complete lines with the task prefix.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		idx := bytes.IndexByte(buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		r.printLineLocked(task.name, buf.Next(idx+1))
	}
}

// OnTaskComplete flushes the task buffer and prints its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error, cached bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := r.prefix(task.name)

	switch {
	case err != nil:
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	case cached:
		symbol := r.output.String(style.Skip).Foreground(r.output.Color(string(style.Slate))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Up to date (cached)\n", prefix, symbol)
	default:
		symbol := r.output.String(style.Check).Foreground(r.output.Color(string(style.Green))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.tasks, spanID)
	delete(r.buffers, spanID)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}

// flushBufferLocked prints a trailing partial line. Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(task.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints one line with the task prefix. Must be called with r.mu held.
func (r *Renderer) printLineLocked(taskName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", taskName, line)
}
