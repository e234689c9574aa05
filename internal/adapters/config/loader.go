// Package config loads scout settings with viper and research plans with yaml.v3.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. SCOUT_CACHE_DIR.
const EnvPrefix = "SCOUT"

var configExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger      ports.Logger
	fs          FileSystem
	searchPaths []string
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithSearchPaths sets the directories searched for scout.yaml when no
// explicit path is given.
func WithSearchPaths(dirs ...string) Option {
	return func(l *Loader) {
		l.searchPaths = dirs
	}
}

// NewLoader creates a Loader searching the working directory.
func NewLoader(log ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		logger:      log,
		fs:          NewOSFS(),
		searchPaths: []string{"."},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadSettings layers defaults, the config file and SCOUT_* environment
// variables, in increasing precedence. An explicit path must exist; without
// one, a missing scout.yaml is not an error.
func (l *Loader) LoadSettings(path string) (domain.Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	configPath, err := l.resolveConfigPath(path)
	if err != nil {
		return domain.Settings{}, err
	}

	if configPath != "" {
		data, err := l.fs.ReadFile(configPath)
		if err != nil {
			return domain.Settings{}, zerr.With(
				domain.NewConfigurationError(domain.ErrConfigReadFailed.Error()).WithCause(err), "path", configPath)
		}
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(configPath), "."))
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return domain.Settings{}, zerr.With(
				domain.NewConfigurationError(domain.ErrConfigParseFailed.Error()).WithCause(err), "path", configPath)
		}
		l.logger.Info(fmt.Sprintf("loaded settings from %s", configPath))
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return domain.Settings{}, domain.NewConfigurationError(domain.ErrConfigParseFailed.Error()).WithCause(err)
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (l *Loader) resolveConfigPath(path string) (string, error) {
	if path != "" {
		ext := filepath.Ext(path)
		if !slices.Contains(configExtensions, ext) {
			return "", zerr.With(domain.NewConfigurationError(
				fmt.Sprintf("unsupported config file extension '%s'", ext)), "path", path)
		}
		if _, err := l.fs.Stat(path); err != nil {
			return "", zerr.With(
				domain.NewConfigurationError(domain.ErrConfigReadFailed.Error()).WithCause(err), "path", path)
		}
		return path, nil
	}

	for _, dir := range l.searchPaths {
		for _, ext := range configExtensions {
			candidate := filepath.Join(dir, domain.ConfigFileName+ext)
			info, err := l.fs.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", zerr.With(
					domain.NewConfigurationError(domain.ErrConfigReadFailed.Error()).WithCause(err), "path", candidate)
			}
		}
	}
	return "", nil
}

// LoadPlan decodes a research plan, rejecting unknown keys, and validates
// everything except the run id, which the caller may still assign.
func (l *Loader) LoadPlan(path string) (domain.ResearchRequest, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return domain.ResearchRequest{}, zerr.With(zerr.Wrap(err, domain.ErrPlanReadFailed.Error()), "path", path)
	}

	var plan PlanFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("plan file is empty")
		}
		return domain.ResearchRequest{}, zerr.With(
			domain.NewValidationError("plan", domain.ErrPlanParseFailed.Error()).WithCause(err), "path", path)
	}

	req := domain.ResearchRequest{
		RunID:          plan.RunID,
		Regions:        plan.Regions,
		DwellingType:   plan.DwellingType,
		MaxMedianPrice: plan.MaxMedianPrice,
		NumEntities:    plan.NumEntities,
	}
	req.Normalize()

	if req.RunID != "" {
		if err := domain.ValidateRunID(req.RunID); err != nil {
			return domain.ResearchRequest{}, zerr.With(err, "path", path)
		}
	}
	if err := req.ValidateInput(); err != nil {
		return domain.ResearchRequest{}, zerr.With(err, "path", path)
	}
	return req, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.dir", domain.DefaultCachePath())
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.discovery_ttl", 24*time.Hour)
	v.SetDefault("cache.research_ttl", 7*24*time.Hour)
	v.SetDefault("cache.max_size_mb", 500)
	v.SetDefault("checkpoint.dir", domain.DefaultCheckpointPath())
	v.SetDefault("checkpoint.max_retained", 3)
	v.SetDefault("checkpoint.every", 5)
	v.SetDefault("workers.discovery", 0)
	v.SetDefault("workers.research", 0)
	v.SetDefault("provider.kind", domain.ProviderHTTP)
	v.SetDefault("provider.name", "perplexity")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", 300*time.Second)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.fixture_dir", "")
	v.SetDefault("log.format", domain.LogFormatAuto)
	v.SetDefault("metrics.file", "")
}
