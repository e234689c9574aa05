package checkpoint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scout/internal/adapters/logger"
	"go.trai.ch/scout/internal/adapters/metrics"
	"go.trai.ch/scout/internal/core/ports"
)

// NodeID is the unique identifier for the checkpoint factory Graft node.
const NodeID graft.ID = "adapter.checkpoint"

func init() {
	graft.Register(graft.Node[ports.CheckpointFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, metrics.NodeID},
		Run: func(ctx context.Context) (ports.CheckpointFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			rec, err := graft.Dep[*metrics.Prometheus](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, WithMetrics(rec)), nil
		},
	})
}
