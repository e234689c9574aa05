package ports

import "go.trai.ch/scout/internal/core/domain"

// ConfigLoader defines the interface for loading settings and research plans.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadSettings reads the settings from path, or from the default
	// locations when path is empty, layered over defaults and environment.
	LoadSettings(path string) (domain.Settings, error)

	// LoadPlan reads and validates a research plan file.
	LoadPlan(path string) (domain.ResearchRequest, error)
}
