package domain

import "strings"

// Command describes a subprocess invocation as discrete arguments.
// Values such as version strings are passed as their own argument and never spliced into a shell line.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}

// NewCommand creates a command running in the project root.
func NewCommand(args ...string) Command {
	return Command{Args: args}
}

// In returns a copy of the command that runs in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// String renders the command for display only.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Step is one element of a command sequence. A step either runs a command or only reports a message.
type Step struct {
	Command Command
	Message string
}

// RunStep returns a step that runs cmd.
func RunStep(cmd Command) Step {
	return Step{Command: cmd}
}

// EchoStep returns a step that reports msg without running anything.
func EchoStep(msg string) Step {
	return Step{Message: msg}
}
