package ports

import (
	"context"
	"io"

	"go.trai.ch/ybuild/internal/core/domain"
)

// SpecRunner executes jasmine-style spec files.
//
//go:generate mockgen -source=spec_runner.go -destination=mocks/mock_spec_runner.go -package=mocks
type SpecRunner interface {
	// Run loads files in order into one runtime and runs every declared spec.
	// Console output of the specs is written to out.
	// Spec failures are reported in the result, not as an error.
	Run(ctx context.Context, files []string, out io.Writer) (*domain.SpecReport, error)
}
