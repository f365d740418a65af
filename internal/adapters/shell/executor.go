// Package shell runs external commands inside a pseudo terminal.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/syntax"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and a PTY, so tools like
// git and standard keep their colored output.
type Executor struct {
	environ func() []string
}

// NewExecutor creates a new Executor inheriting the allow-listed process environment.
func NewExecutor() *Executor {
	return &Executor{environ: os.Environ}
}

// Execute echoes the command line to stdout, runs the command and waits for it.
// A PTY merges both streams, so everything the command prints goes to stdout.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, stdout, _ io.Writer) error {
	if cmd == nil || len(cmd.Args) == 0 {
		return nil
	}

	line := FormatCommand(cmd.Args)
	_, _ = io.WriteString(stdout, "$ "+line+"\n")

	env := resolveEnvironment(e.environ(), cmd.Env)

	name := cmd.Args[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // commands come from the task graph
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env

	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", line)
	}

	out := &lineWriter{w: stdout}
	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(out, ptmx)
		_ = out.Flush()
	}()

	waitErr := c.Wait()
	<-ioDone
	_ = ptmx.Close()

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err := zerr.With(zerr.Wrap(waitErr, domain.ErrCommandFailed.Error()), "exit_code", exitCode)
		return zerr.With(err, "command", line)
	}

	return nil
}

// FormatCommand renders args as a shell-quoted line for display.
func FormatCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// lineWriter forwards complete lines and rewrites the PTY's CRLF endings to LF.
type lineWriter struct {
	w   io.Writer
	buf []byte
}

func (l *lineWriter) Write(p []byte) (int, error) {
	l.buf = append(l.buf, p...)

	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(l.buf[:i], []byte{'\r'})
		if _, err := l.w.Write(append(slices.Clip(line), '\n')); err != nil {
			return len(p), err
		}
		l.buf = l.buf[i+1:]
	}

	return len(p), nil
}

// Flush writes a trailing partial line.
func (l *lineWriter) Flush() error {
	if len(l.buf) == 0 {
		return nil
	}
	_, err := l.w.Write(append(bytes.TrimSuffix(l.buf, []byte{'\r'}), '\n'))
	l.buf = nil
	return err
}

// allowListedEnvVars are inherited from the process environment. Git needs the
// ssh agent and identity variables for pull, push and tag.
var allowListedEnvVars = map[string]struct{}{
	"HOME":                {},
	"TERM":                {},
	"USER":                {},
	"PATH":                {},
	"LANG":                {},
	"SSH_AUTH_SOCK":       {},
	"GIT_SSH_COMMAND":     {},
	"GIT_AUTHOR_NAME":     {},
	"GIT_AUTHOR_EMAIL":    {},
	"GIT_COMMITTER_NAME":  {},
	"GIT_COMMITTER_EMAIL": {},
}

// resolveEnvironment keeps allow-listed system variables and applies overrides.
// The result is sorted.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches the PATH of env, not of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func isExecutable(file string) bool {
	d, err := os.Stat(file)
	if err != nil {
		return false
	}
	m := d.Mode()
	return !m.IsDir() && m&0o111 != 0
}
