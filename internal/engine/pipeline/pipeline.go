// Package pipeline drives a research run: discovery across regions, then
// research per candidate in checkpointed batches.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/scout/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// Candidate pool multipliers relative to the requested number of entities.
const (
	DiscoveryOverfetch = 3
	ResearchOverfetch  = 2
)

// Config tunes a Runner.
type Config struct {
	Workers domain.WorkerCounts
	// BatchSize is the number of research tasks between checkpoints.
	BatchSize   int
	PriceBucket int
}

// Runner executes the pipeline against one provider, cache and run store.
type Runner struct {
	provider    ports.ResearchProvider
	cache       ports.Cache
	checkpoints ports.CheckpointStore
	logger      ports.Logger
	tracer      ports.Tracer
	metrics     ports.MetricsRecorder
	cfg         Config

	cacheHits atomic.Int64
}

// NewRunner creates a Runner.
func NewRunner(
	provider ports.ResearchProvider,
	cache ports.Cache,
	checkpoints ports.CheckpointStore,
	log ports.Logger,
	tracer ports.Tracer,
	metrics ports.MetricsRecorder,
	cfg Config,
) *Runner {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &Runner{
		provider:    provider,
		cache:       cache,
		checkpoints: checkpoints,
		logger:      log,
		tracer:      tracer,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// discoveryState is the payload of the discovery checkpoint.
type discoveryState struct {
	Candidates []domain.Candidate `json:"candidates"`
}

// researchState is the payload of each research checkpoint.
type researchState struct {
	Completed []string         `json:"completed"`
	Results   []domain.Metrics `json:"results"`
}

// Run executes discovery and research for req. The result is always
// populated with whatever was gathered; the error is the fatal error that
// stopped the run or an infrastructure failure.
func (r *Runner) Run(ctx context.Context, req domain.ResearchRequest) (domain.RunResult, error) {
	r.cacheHits.Store(0)
	result := domain.RunResult{
		RunID:  r.checkpoints.RunID(),
		Status: domain.RunRunning,
	}
	if req.Provider == "" {
		req.Provider = r.provider.Name()
	}

	ctx, span := r.tracer.Start(ctx, "pipeline.run", ports.WithAttribute("run_id", result.RunID))
	defer span.End()

	candidates, err := r.discover(ctx, req, &result)
	if err != nil {
		span.RecordError(err)
		return r.finish(result, nil, req.NumEntities), err
	}
	result.Discovered = len(candidates)

	metrics, err := r.research(ctx, req, candidates, &result)
	result = r.finish(result, metrics, req.NumEntities)
	if err != nil {
		span.RecordError(err)
		return result, err
	}
	span.SetAttribute("status", string(result.Status))
	return result, nil
}

// finish ranks the gathered metrics and fills the run totals.
func (r *Runner) finish(result domain.RunResult, metrics []domain.Metrics, topN int) domain.RunResult {
	result.CacheHits = int(r.cacheHits.Load())
	if result.Status == domain.RunRunning {
		result.Status = domain.RunCompleted
	}
	result.Entities = domain.RankMetrics(metrics, topN)
	if result.Entities == nil {
		result.Entities = []domain.Metrics{}
	}
	return result
}

func (r *Runner) abort(result *domain.RunResult, phase domain.Phase, fatal error) error {
	result.Status = domain.RunAborted
	result.FatalError = fatal.Error()
	return zerr.With(zerr.Wrap(fatal, domain.ErrRunAborted.Error()), "phase", string(phase))
}

func (r *Runner) discover(ctx context.Context, req domain.ResearchRequest, result *domain.RunResult) ([]domain.Candidate, error) {
	if record, err := r.checkpoints.LoadLatest(domain.PhaseDiscovery); err != nil {
		r.logger.Warn(fmt.Sprintf("failed to load discovery checkpoint: %v", err))
	} else if record != nil {
		var state discoveryState
		if err := json.Unmarshal(record.State, &state); err == nil {
			r.logger.Info(fmt.Sprintf("resuming run %s with %d discovered candidates", result.RunID, len(state.Candidates)))
			return state.Candidates, nil
		}
		r.logger.Warn("discovery checkpoint has an unreadable state, discovering again")
	}

	ctx, span := r.tracer.Start(ctx, "pipeline.discovery", ports.WithAttribute("regions", req.Regions))
	defer span.End()

	o := orchestrator.New("discovery",
		func(ctx context.Context, _ int, region string) ([]domain.Candidate, error) {
			return r.discoverRegion(ctx, req, region)
		},
		func(string, error) []domain.Candidate { return []domain.Candidate{} },
		r.logger, r.tracer, r.metrics,
	)
	res := o.Run(ctx, req.Regions, r.cfg.Workers.Discovery)

	if res.FatalError != nil {
		span.RecordError(res.FatalError)
		return nil, r.abort(result, domain.PhaseDiscovery, res.FatalError)
	}

	var all []domain.Candidate
	for _, found := range res.Results {
		all = append(all, found...)
	}
	candidates := domain.DedupeCandidates(all)
	if limit := req.NumEntities * DiscoveryOverfetch; len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return nil, zerr.With(domain.ErrNoCandidates, "regions", strings.Join(req.Regions, ", "))
	}

	if err := r.checkpoints.Save(domain.PhaseDiscovery, discoveryState{Candidates: candidates}, 0); err != nil {
		return nil, err
	}
	r.logger.Info(fmt.Sprintf("discovered %d candidates across %d regions", len(candidates), len(req.Regions)))
	return candidates, nil
}

func (r *Runner) discoverRegion(ctx context.Context, req domain.ResearchRequest, region string) ([]domain.Candidate, error) {
	parts := domain.KeyParts{
		"region":        region,
		"dwelling_type": req.DwellingType,
		"max_price":     r.bucket(req.MaxMedianPrice),
		"provider":      req.Provider,
	}

	var cached []domain.Candidate
	if r.lookup(domain.CacheDiscovery, parts, &cached, nil) {
		valid, _ := domain.ValidateCandidates(cached)
		return valid, nil
	}

	found, err := r.provider.Discover(ctx, req, region)
	if err != nil {
		return nil, err
	}
	valid, dropped := domain.ValidateCandidates(found)
	for _, msg := range dropped {
		r.logger.Warn(fmt.Sprintf("discovery for %s dropped %s", region, msg))
	}
	// A response with nothing usable is not worth replaying from the cache.
	if len(valid) > 0 || len(found) == 0 {
		r.store(domain.CacheDiscovery, parts, valid)
	}
	return valid, nil
}

func (r *Runner) research(
	ctx context.Context,
	req domain.ResearchRequest,
	candidates []domain.Candidate,
	result *domain.RunResult,
) ([]domain.Metrics, error) {
	state, sequence := r.resumeResearch()
	completed := make(map[string]struct{}, len(state.Completed))
	for _, key := range state.Completed {
		completed[key] = struct{}{}
	}
	result.Resumed = len(state.Results)

	targets := candidates
	if limit := req.NumEntities * ResearchOverfetch; len(targets) > limit {
		targets = targets[:limit]
	}
	pending := make([]domain.Candidate, 0, len(targets))
	for _, c := range targets {
		if _, ok := completed[c.Key()]; !ok {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return state.Results, nil
	}
	r.logger.Info(fmt.Sprintf("researching %d candidates (%d already completed)", len(pending), len(state.Completed)))

	ctx, span := r.tracer.Start(ctx, "pipeline.research", ports.WithAttribute("candidates", len(pending)))
	defer span.End()

	for start := 0; start < len(pending); start += r.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			result.Skipped += len(pending) - start
			return state.Results, r.abort(result, domain.PhaseResearch, err)
		}

		batch := pending[start:min(start+r.cfg.BatchSize, len(pending))]
		res := r.researchBatch(ctx, req, batch)
		r.count(result, res.Outcomes)

		for i, outcome := range res.Outcomes {
			if outcome.Status.Filled() {
				state.Completed = append(state.Completed, batch[i].Key())
			}
		}
		state.Results = append(state.Results, res.Results...)

		sequence++
		if err := r.checkpoints.Save(domain.PhaseResearch, state, sequence); err != nil {
			return state.Results, err
		}

		if res.FatalError != nil {
			span.RecordError(res.FatalError)
			result.Skipped += len(pending) - start - len(batch)
			return state.Results, r.abort(result, domain.PhaseResearch, res.FatalError)
		}
	}
	return state.Results, nil
}

func (r *Runner) researchBatch(
	ctx context.Context,
	req domain.ResearchRequest,
	batch []domain.Candidate,
) orchestrator.Result[domain.Metrics] {
	o := orchestrator.New("research",
		func(ctx context.Context, _ int, c domain.Candidate) (domain.Metrics, error) {
			return r.researchCandidate(ctx, req, c)
		},
		func(c domain.Candidate, _ error) domain.Metrics { return domain.FallbackMetrics(c) },
		r.logger, r.tracer, r.metrics,
	)
	return o.Run(ctx, batch, r.cfg.Workers.Research)
}

func (r *Runner) researchCandidate(ctx context.Context, req domain.ResearchRequest, c domain.Candidate) (domain.Metrics, error) {
	parts := domain.KeyParts{
		"name":          c.Name,
		"state":         c.State,
		"dwelling_type": req.DwellingType,
		"max_price":     r.bucket(req.MaxMedianPrice),
		"provider":      req.Provider,
	}

	var cached domain.Metrics
	if r.lookup(domain.CacheResearch, parts, &cached, func() error { return cached.Validate() }) {
		return cached, nil
	}

	m, err := r.provider.Research(ctx, req, c)
	if err != nil {
		return domain.Metrics{}, err
	}
	// A malformed response is a provider failure for this candidate only, so
	// it is classified as an API error and replaced by a fallback.
	if verr := m.Validate(); verr != nil {
		return domain.Metrics{}, zerr.With(
			domain.NewAPIError(req.Provider, "invalid research response", 0).WithCause(verr),
			"candidate", c.Name)
	}
	if !m.Fallback {
		r.store(domain.CacheResearch, parts, m)
	}
	return m, nil
}

// resumeResearch returns the latest research state and its sequence. A
// discovery checkpoint yields an empty state.
func (r *Runner) resumeResearch() (researchState, int) {
	record, err := r.checkpoints.LoadLatest(domain.PhaseResearch)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("failed to load research checkpoint: %v", err))
		return researchState{}, 0
	}
	if record == nil || record.Phase != domain.PhaseResearch {
		return researchState{}, 0
	}

	var state researchState
	if err := json.Unmarshal(record.State, &state); err != nil {
		r.logger.Warn(fmt.Sprintf("research checkpoint %d has an unreadable state, starting research over", record.Sequence))
		return researchState{}, record.Sequence
	}
	return state, record.Sequence
}

// lookup reads a cached value into dst. A value failing check counts as a miss.
func (r *Runner) lookup(cacheType domain.CacheType, parts domain.KeyParts, dst any, check func() error) bool {
	found, err := r.cache.Get(cacheType, parts, dst)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("%s cache read failed: %v", cacheType, err))
		return false
	}
	if found && check != nil {
		if err := check(); err != nil {
			r.logger.Warn(fmt.Sprintf("ignoring cached %s entry: %v", cacheType, err))
			return false
		}
	}
	if found {
		r.cacheHits.Add(1)
	}
	return found
}

func (r *Runner) store(cacheType domain.CacheType, parts domain.KeyParts, data any) {
	if err := r.cache.Put(cacheType, parts, data); err != nil {
		r.logger.Warn(fmt.Sprintf("%s cache write failed: %v", cacheType, err))
	}
}

func (r *Runner) bucket(price float64) string {
	return strconv.FormatInt(domain.BucketPrice(price, r.cfg.PriceBucket), 10)
}

func (r *Runner) count(result *domain.RunResult, outcomes []orchestrator.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case domain.TaskSuccess:
			result.Succeeded++
		case domain.TaskFallbackUsed:
			result.Fallbacks++
		case domain.TaskSkipped:
			result.Skipped++
		}
	}
}
