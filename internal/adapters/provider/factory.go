package provider

import (
	"fmt"
	"os"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
)

// Factory builds the provider selected by settings.
type Factory struct {
	logger ports.Logger
	opts   []HTTPOption
}

var _ ports.ProviderFactory = (*Factory)(nil)

// NewFactory creates a Factory. opts apply to every HTTP client it builds.
func NewFactory(log ports.Logger, opts ...HTTPOption) *Factory {
	return &Factory{logger: log, opts: opts}
}

// NewProvider validates cfg and returns the matching client.
func (f *Factory) NewProvider(cfg domain.ProviderSettings) (ports.ResearchProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case domain.ProviderFixture:
		info, err := os.Stat(cfg.FixtureDir)
		if err != nil || !info.IsDir() {
			return nil, domain.NewConfigurationError(
				fmt.Sprintf("provider.fixture_dir '%s' is not a directory", cfg.FixtureDir))
		}
		return NewFixtureClient(cfg.Name, os.DirFS(cfg.FixtureDir)), nil
	default:
		return NewHTTPClient(cfg, f.logger, f.opts...), nil
	}
}
