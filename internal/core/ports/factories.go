package ports

import "go.trai.ch/scout/internal/core/domain"

// ProviderFactory builds the research provider selected by settings.
//
//go:generate mockgen -source=factories.go -destination=mocks/mock_factories.go -package=mocks
type ProviderFactory interface {
	// NewProvider validates cfg and returns the configured provider.
	NewProvider(cfg domain.ProviderSettings) (ResearchProvider, error)
}

// CacheFactory opens the response cache described by settings.
type CacheFactory interface {
	// OpenCache loads or creates the cache, recovering its index.
	OpenCache(cfg domain.CacheSettings) (Cache, error)
}

// CheckpointFactory creates checkpoint openers rooted at a settings directory.
type CheckpointFactory interface {
	// NewOpener returns an opener for per-run checkpoint stores.
	NewOpener(cfg domain.CheckpointSettings) CheckpointOpener
}

// WorkerScaler sizes the worker pools from the host's resources.
type WorkerScaler interface {
	// WorkerCounts returns pool sizes; positive overrides win.
	WorkerCounts(overrides domain.WorkerSettings) domain.WorkerCounts
}
