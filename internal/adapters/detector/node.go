package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the environment Graft node.
	NodeID graft.ID = "adapter.environment"
	// RuntimeNodeID is the unique identifier for the runtime probe Graft node.
	RuntimeNodeID graft.ID = "adapter.runtime_probe"
)

func init() {
	graft.Register(graft.Node[*Environment]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Environment, error) {
			return DetectEnvironment(), nil
		},
	})

	graft.Register(graft.Node[ports.RuntimeProbe]{
		ID:        RuntimeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RuntimeProbe, error) {
			return NewNodeProbe(), nil
		},
	})
}
