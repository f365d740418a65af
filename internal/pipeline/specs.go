package pipeline

import (
	"context"
	"io"

	"go.trai.ch/ybuild/internal/adapters/jsspec" //nolint:depguard // report format shared with the spec runner
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// testFiles resolves the test file set to absolute paths.
func (p *Pipeline) testFiles() ([]string, error) {
	patterns := p.project.Layout.TestFiles(p.opts.Regenerator).Strings()
	return p.Resolver.ResolveInputs(patterns, p.project.Root)
}

// test runs the specs and fails if any spec failed.
func (p *Pipeline) test(ctx context.Context, out io.Writer) error {
	files, err := p.testFiles()
	if err != nil {
		return err
	}

	report, err := p.Specs.Run(ctx, files, out)
	if err != nil {
		return err
	}

	jsspec.WriteReport(out, report)

	if report.Failed() {
		return zerr.With(domain.ErrSpecsFailed, "failures", report.Count(domain.SpecFailed))
	}
	return nil
}
