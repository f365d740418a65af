package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals that a set of tasks is planned for execution.
	EmitPlan(ctx context.Context, taskNames []string, deps map[string][]string, targets []string)
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// CachedAttribute marks a task span whose body was skipped because its outputs were current.
const CachedAttribute = "ybuild.cached"

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Root detaches the span from any parent in the context.
	Root bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithRoot starts the span as a new root.
func WithRoot() SpanOption {
	return func(c *SpanConfig) {
		c.Root = true
	}
}
