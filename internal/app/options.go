package app

import (
	"context"

	"go.trai.ch/ybuild/internal/adapters/detector"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
)

// Flags are the raw option values given on the command line.
// An empty value selects the default.
type Flags struct {
	Export       string
	Name         string
	TestPort     string
	TestFiles    string
	Regenerator  string
	ExamplesPort string
}

// ResolveOptions validates flags and fills in defaults. An empty Regenerator
// is derived from the version of the local Node.js runtime.
func ResolveOptions(ctx context.Context, flags Flags, probe ports.RuntimeProbe) (domain.Options, error) {
	opts := domain.DefaultOptions()

	if flags.Export != "" {
		m, err := domain.ParseModuleType(flags.Export)
		if err != nil {
			return domain.Options{}, err
		}
		opts.Export = m
	}

	if flags.Name != "" {
		opts.Name = flags.Name
	}

	if flags.TestPort != "" {
		port, err := domain.ParsePort(flags.TestPort)
		if err != nil {
			return domain.Options{}, err
		}
		opts.TestPort = port
	}

	if flags.ExamplesPort != "" {
		port, err := domain.ParsePort(flags.ExamplesPort)
		if err != nil {
			return domain.Options{}, err
		}
		opts.ExamplesPort = port
	}

	if flags.TestFiles != "" {
		opts.TestFiles = flags.TestFiles
	}

	switch {
	case flags.Regenerator != "":
		regen, err := domain.ParseBool(flags.Regenerator)
		if err != nil {
			return domain.Options{}, err
		}
		opts.Regenerator = regen
	case probe != nil:
		opts.Regenerator = detector.DetectRegenerator(ctx, probe)
	}

	return opts, nil
}
