package sysinfo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scout/internal/adapters/logger"
	"go.trai.ch/scout/internal/core/ports"
)

// NodeID is the unique identifier for the worker scaler Graft node.
const NodeID graft.ID = "adapter.sysinfo"

func init() {
	graft.Register(graft.Node[ports.WorkerScaler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WorkerScaler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
