package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/core/ports"
)

// NodeID is the unique identifier for the version bumper Graft node.
const NodeID graft.ID = "adapter.version_bumper"

func init() {
	graft.Register(graft.Node[ports.VersionBumper]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionBumper, error) {
			return NewBumper(), nil
		},
	})
}
