// Package detector inspects the process environment: terminal, CI and the
// local Node.js runtime.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode requested for the application.
type OutputMode int

const (
	// ModeAuto colors output when stdout is an interactive terminal outside CI.
	ModeAuto OutputMode = iota
	// ModeLinear forces plain ANSI output regardless of the terminal.
	ModeLinear
)

// Environment is the detected process environment.
type Environment struct {
	TTY bool
	CI  bool
}

// DetectEnvironment checks whether stdout is a TTY and whether CI is set.
func DetectEnvironment() *Environment {
	ci := os.Getenv("CI")
	return &Environment{
		TTY: term.IsTerminal(int(os.Stdout.Fd())),
		CI:  ci == "true" || ci == "1",
	}
}

// Mode returns the output mode the environment calls for.
func (e *Environment) Mode() OutputMode {
	if !e.TTY || e.CI {
		return ModeLinear
	}
	return ModeAuto
}

// ResolveMode applies the user's --output-mode flag to the detected mode.
// userFlag is one of "auto", "linear", "ci" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
