package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheMarshalFailed is returned when a payload cannot be serialized for the cache.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache payload")

	// ErrCacheUnmarshalFailed is returned when a cached payload does not fit the destination value.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal cache payload")

	// ErrCacheIndexWriteFailed is returned when the cache index cannot be persisted.
	ErrCacheIndexWriteFailed = zerr.New("failed to write cache index")

	// ErrCacheStatFailed is returned when a freshly written cache file cannot be measured.
	ErrCacheStatFailed = zerr.New("failed to stat cache file")

	// ErrCheckpointCreateFailed is returned when the checkpoint directory cannot be created.
	ErrCheckpointCreateFailed = zerr.New("failed to create checkpoint directory")

	// ErrCheckpointMarshalFailed is returned when a checkpoint envelope cannot be serialized.
	ErrCheckpointMarshalFailed = zerr.New("failed to marshal checkpoint")

	// ErrCheckpointWriteFailed is returned when a checkpoint or its digest cannot be written.
	ErrCheckpointWriteFailed = zerr.New("failed to write checkpoint")

	// ErrCheckpointListFailed is returned when the checkpoint directory cannot be read.
	ErrCheckpointListFailed = zerr.New("failed to list checkpoints")

	// ErrCheckpointNotFound is returned when no valid checkpoint exists for a phase.
	ErrCheckpointNotFound = zerr.New("no valid checkpoint found")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the settings cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPlanReadFailed is returned when a research plan file cannot be read.
	ErrPlanReadFailed = zerr.New("failed to read research plan")

	// ErrPlanParseFailed is returned when a research plan file cannot be decoded.
	ErrPlanParseFailed = zerr.New("failed to parse research plan")

	// ErrProviderRequestFailed is returned when a provider request cannot be built.
	ErrProviderRequestFailed = zerr.New("failed to build provider request")

	// ErrProviderDecodeFailed is returned when a provider response cannot be decoded.
	ErrProviderDecodeFailed = zerr.New("failed to decode provider response")

	// ErrFixtureReadFailed is returned when a fixture file cannot be read.
	ErrFixtureReadFailed = zerr.New("failed to read fixture")

	// ErrDiscoveryFailed is returned when no region could be discovered.
	ErrDiscoveryFailed = zerr.New("discovery failed")

	// ErrNoCandidates is returned when discovery finishes without any candidate.
	ErrNoCandidates = zerr.New("no qualifying candidates found")

	// ErrRunAborted is returned when a run stops early on a fatal error.
	ErrRunAborted = zerr.New("run aborted with partial results")

	// ErrMetricsExportFailed is returned when the metrics textfile cannot be written.
	ErrMetricsExportFailed = zerr.New("failed to export metrics")
)
