package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ReleaseSteps returns the command sequence that publishes version.
// The dist directory is a separate repository that receives its own commit and tag.
func ReleaseSteps(version string, lint []string, remote, distDir string) []domain.Step {
	var steps []domain.Step
	if len(lint) > 0 {
		steps = append(steps, domain.RunStep(domain.NewCommand(lint...)))
	}

	return append(steps,
		domain.EchoStep("Deploying version "+version),
		domain.RunStep(domain.NewCommand("git", "pull")),
		domain.RunStep(domain.NewCommand("git", "add", "-A").In(distDir)),
		domain.RunStep(domain.NewCommand("git", "commit", "-am", "Deploy "+version, "-n").In(distDir)),
		domain.RunStep(domain.NewCommand("git", "push").In(distDir)),
		domain.RunStep(domain.NewCommand("git", "tag", "-a", "v"+version, "-m", "Release "+version).In(distDir)),
		domain.RunStep(domain.NewCommand("git", "push", remote, "--tags").In(distDir)),
		domain.RunStep(domain.NewCommand("git", "commit", "-am", "Release "+version, "-n")),
		domain.RunStep(domain.NewCommand("git", "push")),
	)
}

// RunSteps runs steps in order and stops at the first failing command.
// Steps that already ran are not undone.
func (p *Pipeline) RunSteps(ctx context.Context, steps []domain.Step, out io.Writer) error {
	for i, step := range steps {
		if step.Message != "" {
			_, _ = fmt.Fprintln(out, step.Message)
			continue
		}

		cmd := step.Command
		cmd.Dir = p.abs(cmd.Dir)
		if err := p.Executor.Execute(ctx, &cmd, out, out); err != nil {
			err = zerr.With(err, "step", i+1)
			return zerr.With(err, "command", step.Command.String())
		}
	}
	return nil
}

func (p *Pipeline) updateSubmodule(ctx context.Context, out io.Writer) error {
	return p.RunSteps(ctx, []domain.Step{
		domain.RunStep(domain.NewCommand("git", "submodule", "update", "--init")),
	}, out)
}

// bump increments the patch version of every manifest that exists.
func (p *Pipeline) bump(_ context.Context, out io.Writer) error {
	for _, manifest := range p.project.Layout.Manifests {
		file := p.abs(manifest)
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			_, _ = fmt.Fprintf(out, "skipped %s: not found\n", manifest)
			continue
		}

		version, err := p.Bumper.BumpPatch(file)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "bumped %s to %s\n", manifest, version)
	}
	return nil
}

// release reads the bumped version from the first manifest and publishes it.
func (p *Pipeline) release(ctx context.Context, out io.Writer) error {
	layout := p.project.Layout
	if len(layout.Manifests) == 0 {
		return zerr.With(domain.ErrVersionFieldMissing, "manifests", 0)
	}

	version, err := p.Bumper.ReadVersion(p.abs(layout.Manifests[0]))
	if err != nil {
		return err
	}

	steps := ReleaseSteps(version, p.project.Deploy.Lint, p.project.Deploy.Remote, layout.DistDir)
	return p.RunSteps(ctx, steps, out)
}

func (p *Pipeline) distReadme() string {
	return path.Join(p.project.Layout.DistDir, path.Base(p.project.Layout.Readme))
}

func (p *Pipeline) copyReadme(_ context.Context, out io.Writer) error {
	return p.copyFile(out, p.project.Layout.Readme, p.distReadme())
}

func (p *Pipeline) vendorBundle() []string {
	layout := p.project.Layout
	return []string{
		path.Join(layout.ExamplesVendorDir, p.opts.Name),
		path.Join(layout.ExamplesVendorDir, p.opts.Name+".map"),
	}
}

// copyDist copies the release bundle and its map into the examples vendor directory.
func (p *Pipeline) copyDist(_ context.Context, out io.Writer) error {
	layout := p.project.Layout
	dst := p.vendorBundle()
	if err := p.copyFile(out, layout.BundlePath(p.opts.Name), dst[0]); err != nil {
		return err
	}
	return p.copyFile(out, layout.BundleMapPath(p.opts.Name), dst[1])
}

func (p *Pipeline) copyFile(out io.Writer, src, dst string) error {
	data, err := os.ReadFile(p.abs(src))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "file", filepath.ToSlash(src))
	}
	return p.writeFile(out, dst, data)
}
