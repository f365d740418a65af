package jsspec

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/core/ports"
)

// NodeID is the unique identifier for the spec runner Graft node.
const NodeID graft.ID = "adapter.spec_runner"

func init() {
	graft.Register(graft.Node[ports.SpecRunner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SpecRunner, error) {
			return NewRunner(), nil
		},
	})
}
