// Package style holds the colors, icons and text styles shared by the
// renderer, the logger and the spec reporter.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Skip    = "-"
	Arrow   = "→"
)

// Text styles.
var (
	Accent  = lipgloss.NewStyle().Foreground(Iris).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Slate)
	Success = lipgloss.NewStyle().Foreground(Green)
	Failure = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Caution = lipgloss.NewStyle().Foreground(Yellow)
)
