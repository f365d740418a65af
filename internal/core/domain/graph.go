// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	unvisited = iota
	visiting
	visited
)

// Graph represents a dependency graph of tasks.
// Tasks keep their registration order, which fixes the traversal order of Validate.
type Graph struct {
	root           string
	tasks          map[InternedString]Task
	order          []InternedString
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
	position       map[InternedString]int
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		dependents: make(map[InternedString][]InternedString),
		position:   make(map[InternedString]int),
	}
}

// SetRoot sets the project root directory the tasks operate in.
func (g *Graph) SetRoot(path string) {
	g.root = path
}

// Root returns the project root directory.
func (g *Graph) Root() string {
	return g.root
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if err := ValidateTaskName(t.Name.String()); err != nil {
		return zerr.With(err, "task_name", t.Name.String())
	}
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	g.order = append(g.order, t.Name)
	for _, dep := range t.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], t.Name)
	}
	return nil
}

// GetTask returns the task with the given name.
func (g *Graph) GetTask(name InternedString) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// TaskCount returns the number of registered tasks.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Dependents returns the tasks that declare name as a prerequisite, in registration order.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Tasks yields every registered task in registration order.
func (g *Graph) Tasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.order {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Validate checks for missing prerequisites and cycles with a depth-first traversal.
// Roots are visited in registration order and prerequisites in declaration order,
// so the resulting execution order is the deterministic depth-first post-order.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	g.position = make(map[InternedString]int, len(g.tasks))
	state := make(map[InternedString]int, len(g.tasks))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		task := g.tasks[u]
		for _, dep := range task.Dependencies {
			if _, exists := g.tasks[dep]; !exists {
				return zerr.With(zerr.With(ErrMissingDependency, "dependency", dep.String()), "task", u.String())
			}
			switch state[dep] {
			case visiting:
				return g.buildCycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		g.position[u] = len(g.executionOrder)
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.order {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				g.executionOrder = nil
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	var b strings.Builder
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for _, node := range path[startIdx:] {
		b.WriteString(node.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Position returns the index of name in the execution order computed by Validate.
func (g *Graph) Position(name InternedString) int {
	return g.position[name]
}

// Closure returns the targets and all of their transitive prerequisites in
// depth-first post-order: targets in the given order, prerequisites in
// declaration order. Every task appears once no matter how many targets reach it.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Closure(targets []string) ([]InternedString, error) {
	seen := make(map[InternedString]bool)
	var closure []InternedString
	var collect func(name InternedString)
	collect = func(name InternedString) {
		if seen[name] {
			return
		}
		seen[name] = true
		task := g.tasks[name]
		for _, dep := range task.Dependencies {
			collect(dep)
		}
		closure = append(closure, name)
	}

	for _, target := range targets {
		name := NewInternedString(target)
		if _, ok := g.tasks[name]; !ok {
			return nil, zerr.With(ErrTaskNotFound, "task", target)
		}
		collect(name)
	}

	return closure, nil
}

// CheckOutputConflicts reports tasks of the given set that may run at the same time
// while declaring the same output path, or one output nested inside the other.
// Two tasks never run at the same time when one is a transitive prerequisite of the other.
func (g *Graph) CheckOutputConflicts(names []InternedString) error {
	ancestors := make(map[InternedString]map[InternedString]bool, len(names))
	var reach func(name InternedString) map[InternedString]bool
	reach = func(name InternedString) map[InternedString]bool {
		if set, ok := ancestors[name]; ok {
			return set
		}
		set := make(map[InternedString]bool)
		ancestors[name] = set
		task := g.tasks[name]
		for _, dep := range task.Dependencies {
			set[dep] = true
			for a := range reach(dep) {
				set[a] = true
			}
		}
		return set
	}

	for i, a := range names {
		for _, b := range names[i+1:] {
			if reach(a)[b] || reach(b)[a] {
				continue
			}
			taskA, taskB := g.tasks[a], g.tasks[b]
			for _, outA := range taskA.Outputs {
				for _, outB := range taskB.Outputs {
					if pathsOverlap(outA.String(), outB.String()) {
						err := zerr.With(ErrOutputConflict, "task", a.String())
						err = zerr.With(err, "other_task", b.String())
						return zerr.With(err, "path", outA.String())
					}
				}
			}
		}
	}
	return nil
}

func pathsOverlap(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(a, b+sep) || strings.HasPrefix(b, a+sep) || a == "." || b == "."
}
