// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/scout/internal/adapters/cache"
	_ "go.trai.ch/scout/internal/adapters/checkpoint"
	_ "go.trai.ch/scout/internal/adapters/config"
	_ "go.trai.ch/scout/internal/adapters/logger"
	_ "go.trai.ch/scout/internal/adapters/metrics"
	_ "go.trai.ch/scout/internal/adapters/provider"
	_ "go.trai.ch/scout/internal/adapters/sysinfo"
	_ "go.trai.ch/scout/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/scout/internal/app"
)
