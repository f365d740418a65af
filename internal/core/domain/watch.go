package domain

// WatchBinding maps a glob over project-relative paths to tasks run when a matching file changes.
type WatchBinding struct {
	Pattern string
	Tasks   []string
}
