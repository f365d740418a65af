package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/core/ports"
)

// NodeID is the unique identifier for the transpiler Graft node.
const NodeID graft.ID = "adapter.transpiler"

func init() {
	graft.Register(graft.Node[ports.Transpiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Transpiler, error) {
			return NewTranspiler(), nil
		},
	})
}
