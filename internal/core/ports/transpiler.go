package ports

import (
	"context"

	"go.trai.ch/ybuild/internal/core/domain"
)

// Transpiler concatenates, transpiles, minifies and maps JavaScript sources.
//
//go:generate mockgen -source=transpiler.go -destination=mocks/mock_transpiler.go -package=mocks
type Transpiler interface {
	// Transform runs the request. Unparsable input yields domain.ErrTransformFailed.
	Transform(ctx context.Context, req *domain.TransformRequest) (*domain.TransformResult, error)
}
