package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/ybuild/internal/adapters/telemetry"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/ybuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_StartAndComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := tp.Tracer("test")

	var startedID string
	gomock.InOrder(
		renderer.EXPECT().OnTaskStart(gomock.Any(), "", "build:test", gomock.Any()).
			Do(func(spanID, _, _ string, _ any) { startedID = spanID }),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil, false).
			Do(func(spanID string, _, _, _ any) { assert.Equal(t, startedID, spanID) }),
	)

	_, span := tracer.Start(context.Background(), "build:test")
	span.End()
}

func TestBridge_ParentID(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := tp.Tracer("test")

	var parentID string
	renderer.EXPECT().OnTaskStart(gomock.Any(), "", "test", gomock.Any()).
		Do(func(spanID, _, _ string, _ any) { parentID = spanID })
	ctx, parent := tracer.Start(context.Background(), "test")
	require.Equal(t, parent.SpanContext().SpanID().String(), parentID)

	renderer.EXPECT().OnTaskStart(gomock.Any(), parentID, "build:test", gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil, false)
	_, child := tracer.Start(ctx, "build:test")
	child.End()

	renderer.EXPECT().OnTaskComplete(parentID, gomock.Any(), nil, false)
	parent.End()
}

func TestBridge_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := tp.Tracer("test")

	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any(), false).
		Do(func(_ string, _ any, err error, _ bool) {
			require.Error(t, err)
			assert.Equal(t, "command failed", err.Error())
		})

	_, span := tracer.Start(context.Background(), "lint")
	span.SetStatus(codes.Error, "command failed")
	span.End()
}

func TestBridge_Cached(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), "build:test", gomock.Any())
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil, true)

	_, span := tracer.Start(context.Background(), "build:test")
	span.SetAttribute(ports.CachedAttribute, true)
	span.End()
}

func TestBridge_NilRenderer(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := tp.Tracer("test").Start(context.Background(), "test")
	span.End()

	bridge := telemetry.NewBridge(nil)
	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
