package domain

import (
	"context"
	"io"
	"strings"
	"unicode"
)

// Action is the body of a task. Anything written to out is attributed to the task.
type Action func(ctx context.Context, out io.Writer) error

// Task represents a unit of work in the build system.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString
	Description  string
	Dependencies []InternedString
	// Inputs are file patterns relative to the project root. They only feed the cache key.
	Inputs []InternedString
	// Outputs are paths relative to the project root owned exclusively by this task.
	Outputs []InternedString
	// Fingerprint carries option values that change what the task produces.
	Fingerprint map[string]string
	Cacheable   bool
	// Persistent tasks keep running until their context is cancelled.
	Persistent bool
	Action     Action
}

// ValidateTaskName rejects empty names and names containing whitespace.
func ValidateTaskName(name string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return ErrInvalidTaskName
	}
	return nil
}

// DependencyNames returns the dependency names as plain strings.
func (t *Task) DependencyNames() []string {
	names := make([]string, len(t.Dependencies))
	for i, dep := range t.Dependencies {
		names[i] = dep.String()
	}
	return names
}

// InputPatterns returns the input patterns as plain strings.
func (t *Task) InputPatterns() []string {
	patterns := make([]string, len(t.Inputs))
	for i, in := range t.Inputs {
		patterns[i] = in.String()
	}
	return patterns
}

// OutputPaths returns the output paths as plain strings.
func (t *Task) OutputPaths() []string {
	paths := make([]string, len(t.Outputs))
	for i, out := range t.Outputs {
		paths[i] = out.String()
	}
	return paths
}
