package server

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ybuild/internal/adapters/logger"
	"go.trai.ch/ybuild/internal/core/ports"
)

// NodeID is the unique identifier for the dev server Graft node.
const NodeID graft.ID = "adapter.dev_server"

func init() {
	graft.Register(graft.Node[ports.DevServer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DevServer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewServer(log), nil
		},
	})
}
