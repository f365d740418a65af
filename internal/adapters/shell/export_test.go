package shell

import "io"

var ResolveEnvironment = resolveEnvironment

// LineWriter exposes the PTY line normalizer.
type LineWriter = lineWriter

func NewLineWriter(w io.Writer) *LineWriter {
	return &lineWriter{w: w}
}

// WithEnviron replaces the inherited process environment.
func (e *Executor) WithEnviron(env []string) *Executor {
	e.environ = func() []string { return env }
	return e
}
