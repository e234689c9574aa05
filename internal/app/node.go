package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scout/internal/adapters/cache"      //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/checkpoint" //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/metrics"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/provider"   //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/sysinfo"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scout/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			provider.NodeID,
			cache.NodeID,
			checkpoint.NodeID,
			sysinfo.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	rec, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	providers, err := graft.Dep[ports.ProviderFactory](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}

	checkpoints, err := graft.Dep[ports.CheckpointFactory](ctx)
	if err != nil {
		return nil, err
	}

	scaler, err := graft.Dep[ports.WorkerScaler](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, tracer, rec, rec, providers, caches, checkpoints, scaler), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
