package domain

import (
	"fmt"
	"slices"
	"time"
)

// Provider kinds.
const (
	ProviderHTTP    = "http"
	ProviderFixture = "fixture"
)

// Log formats.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	Cache      CacheSettings      `mapstructure:"cache"`
	Checkpoint CheckpointSettings `mapstructure:"checkpoint"`
	Workers    WorkerSettings     `mapstructure:"workers"`
	Provider   ProviderSettings   `mapstructure:"provider"`
	Log        LogSettings        `mapstructure:"log"`
	Metrics    MetricsSettings    `mapstructure:"metrics"`
}

// CacheSettings configures the response cache.
type CacheSettings struct {
	Dir          string        `mapstructure:"dir"`
	Enabled      bool          `mapstructure:"enabled"`
	DiscoveryTTL time.Duration `mapstructure:"discovery_ttl"`
	ResearchTTL  time.Duration `mapstructure:"research_ttl"`
	MaxSizeMB    int64         `mapstructure:"max_size_mb"`
}

// MaxSizeBytes converts the configured budget to bytes.
func (c CacheSettings) MaxSizeBytes() int64 {
	return c.MaxSizeMB * 1024 * 1024
}

// CheckpointSettings configures run checkpoints.
type CheckpointSettings struct {
	Dir         string `mapstructure:"dir"`
	MaxRetained int    `mapstructure:"max_retained"`
	Every       int    `mapstructure:"every"`
}

// WorkerSettings overrides the computed pool sizes when positive.
type WorkerSettings struct {
	Discovery int `mapstructure:"discovery"`
	Research  int `mapstructure:"research"`
}

// ProviderSettings selects and configures the research provider.
type ProviderSettings struct {
	Kind       string        `mapstructure:"kind"`
	Name       string        `mapstructure:"name"`
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	FixtureDir string        `mapstructure:"fixture_dir"`
}

// LogSettings configures log output.
type LogSettings struct {
	Format string `mapstructure:"format"`
}

// MetricsSettings configures the metrics textfile export.
type MetricsSettings struct {
	File string `mapstructure:"file"`
}

// Validate reports the first invalid setting as a configuration error.
// Provider settings are validated separately, only by commands that call a
// provider.
func (s *Settings) Validate() error {
	if s.Cache.Dir == "" {
		return NewConfigurationError("cache.dir must not be empty")
	}
	if s.Cache.DiscoveryTTL < time.Second || s.Cache.ResearchTTL < time.Second {
		return NewConfigurationError("cache TTLs must be at least one second")
	}
	if s.Cache.MaxSizeMB < 0 {
		return NewConfigurationError("cache.max_size_mb must not be negative")
	}
	if s.Checkpoint.Dir == "" {
		return NewConfigurationError("checkpoint.dir must not be empty")
	}
	if s.Checkpoint.MaxRetained < 1 {
		return NewConfigurationError("checkpoint.max_retained must be at least 1")
	}
	if s.Checkpoint.Every < 1 {
		return NewConfigurationError("checkpoint.every must be at least 1")
	}
	if s.Workers.Discovery < 0 || s.Workers.Research < 0 {
		return NewConfigurationError("worker overrides must not be negative")
	}
	if !slices.Contains([]string{LogFormatAuto, LogFormatPretty, LogFormatJSON}, s.Log.Format) {
		return NewConfigurationError(fmt.Sprintf("log.format '%s' must be auto, pretty or json", s.Log.Format))
	}
	return nil
}

// Validate reports the first invalid provider setting.
func (p *ProviderSettings) Validate() error {
	if p.Name == "" {
		return NewConfigurationError("provider.name must not be empty")
	}
	if p.Timeout <= 0 {
		return NewConfigurationError("provider.timeout must be positive")
	}
	if p.MaxRetries < 0 {
		return NewConfigurationError("provider.max_retries must not be negative")
	}
	switch p.Kind {
	case ProviderHTTP:
		if p.BaseURL == "" {
			return NewConfigurationError("provider.base_url is required for the http provider")
		}
		if p.APIKey == "" {
			return NewConfigurationError("provider.api_key is required for the http provider")
		}
	case ProviderFixture:
		if p.FixtureDir == "" {
			return NewConfigurationError("provider.fixture_dir is required for the fixture provider")
		}
	default:
		return NewConfigurationError(fmt.Sprintf("provider.kind '%s' must be http or fixture", p.Kind))
	}
	return nil
}
