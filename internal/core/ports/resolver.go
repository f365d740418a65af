package ports

// InputResolver defines the interface for resolving file sets.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs expands patterns relative to root into absolute file paths.
	// Patterns are expanded in order and matches of one glob are sorted.
	// A path produced by an earlier pattern is not repeated.
	// A literal pattern that does not exist is an error; a glob may match nothing.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
