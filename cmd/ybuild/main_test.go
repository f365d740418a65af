package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ybuild/internal/app"
	"go.trai.ch/ybuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestApp(ctrl *gomock.Controller) (*app.App, *mocks.MockConfigLoader, *mocks.MockLogger) {
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	application := app.New(app.Adapters{
		ConfigLoader: loader,
		Logger:       logger,
	})
	return application, loader, logger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	application, _, _ := newTestApp(ctrl)

	provider := func(context.Context) (*app.App, error) {
		return application, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, io.Discard, provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "ybuild version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.App, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	application, loader, logger := newTestApp(ctrl)

	loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("load failed"))
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "load failed")
	})

	provider := func(context.Context) (*app.App, error) {
		return application, nil
	}

	exitCode := run(context.Background(), []string{"tasks"}, io.Discard, io.Discard, provider)
	assert.Equal(t, 1, exitCode)
}
