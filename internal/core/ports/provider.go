package ports

import (
	"context"

	"go.trai.ch/scout/internal/core/domain"
)

// ResearchProvider fetches discovery and research data from an external source.
// Every failure it returns is a *domain.Error, except the context error
// when ctx is cancelled.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type ResearchProvider interface {
	// Name identifies the provider in cache keys and error messages.
	Name() string

	// Discover lists candidates within a region matching the request.
	Discover(ctx context.Context, req domain.ResearchRequest, region string) ([]domain.Candidate, error)

	// Research fetches detailed metrics for a single candidate.
	Research(ctx context.Context, req domain.ResearchRequest, candidate domain.Candidate) (domain.Metrics, error)
}
