package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Research request defaults and bounds.
const (
	DefaultRegion      = "All Australia"
	DefaultNumEntities = 10
	MaxNumEntities     = 100
	NeutralScore       = 50.0
)

// DwellingTypes lists the accepted dwelling types.
var DwellingTypes = []string{"house", "apartment", "townhouse"}

// ResearchRequest is the user input driving one pipeline run.
type ResearchRequest struct {
	RunID          string   `json:"run_id"`
	Regions        []string `json:"regions"`
	DwellingType   string   `json:"dwelling_type"`
	MaxMedianPrice float64  `json:"max_median_price"`
	NumEntities    int      `json:"num_entities"`
	Provider       string   `json:"provider"`
}

// Normalize fills defaults and trims whitespace.
func (r *ResearchRequest) Normalize() {
	r.RunID = strings.TrimSpace(r.RunID)
	r.DwellingType = strings.ToLower(strings.TrimSpace(r.DwellingType))

	regions := make([]string, 0, len(r.Regions))
	for _, region := range r.Regions {
		if region = strings.TrimSpace(region); region != "" && !slices.Contains(regions, region) {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		regions = []string{DefaultRegion}
	}
	r.Regions = regions

	if r.NumEntities == 0 {
		r.NumEntities = DefaultNumEntities
	}
}

// Validate checks the request after Normalize.
func (r *ResearchRequest) Validate() error {
	if err := ValidateRunID(r.RunID); err != nil {
		return err
	}
	return r.ValidateInput()
}

// ValidateInput checks everything but the run id, which callers may assign
// after a plan is loaded.
func (r *ResearchRequest) ValidateInput() error {
	if r.MaxMedianPrice <= 0 {
		return NewValidationError("max_median_price", "max median price must be greater than zero")
	}
	if !slices.Contains(DwellingTypes, r.DwellingType) {
		return NewValidationError("dwelling_type", fmt.Sprintf("dwelling type '%s' must be one of %s",
			r.DwellingType, strings.Join(DwellingTypes, ", ")))
	}
	if r.NumEntities < 1 || r.NumEntities > MaxNumEntities {
		return NewValidationError("num_entities", fmt.Sprintf("num entities must be between 1 and %d", MaxNumEntities))
	}
	return nil
}

// Candidate is an entity found during discovery.
type Candidate struct {
	Name            string   `json:"name"`
	State           string   `json:"state"`
	LGA             string   `json:"lga"`
	Region          string   `json:"region,omitempty"`
	MedianPrice     float64  `json:"median_price"`
	GrowthSignals   []string `json:"growth_signals,omitempty"`
	EventsRelevance string   `json:"major_events_relevance,omitempty"`
}

// Key identifies a candidate by name and state, case-insensitively.
func (c Candidate) Key() string {
	return strings.ToLower(strings.TrimSpace(c.Name)) + "|" + strings.ToUpper(strings.TrimSpace(c.State))
}

// DedupeCandidates drops later candidates sharing a Key, keeping input order.
func DedupeCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Key()]; ok {
			continue
		}
		seen[c.Key()] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ValidateCandidates splits a discovery response into usable candidates and
// one message per dropped item. A candidate needs a name and a state, and its
// median price must not be negative.
func ValidateCandidates(candidates []Candidate) ([]Candidate, []string) {
	valid := make([]Candidate, 0, len(candidates))
	var dropped []string
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			dropped = append(dropped, fmt.Sprintf("item %d (%q): %v", i, c.Name, err))
			continue
		}
		valid = append(valid, c)
	}
	return valid, dropped
}

// Validate reports the first missing or invalid required field.
func (c Candidate) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return NewValidationError("name", "candidate name is empty")
	case strings.TrimSpace(c.State) == "":
		return NewValidationError("state", "candidate state is empty")
	case c.MedianPrice < 0:
		return NewValidationError("median_price", fmt.Sprintf("median price %.0f is negative", c.MedianPrice))
	}
	return nil
}

// Identity names the researched entity.
type Identity struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	LGA    string `json:"lga"`
	Region string `json:"region,omitempty"`
}

// Metrics is the research result for one candidate.
type Metrics struct {
	Identity           Identity        `json:"identification"`
	MedianPrice        float64         `json:"median_price"`
	KeyDrivers         []string        `json:"key_drivers,omitempty"`
	ProjectedGrowthPct map[int]float64 `json:"projected_growth_pct,omitempty"`
	GrowthScore        float64         `json:"growth_score"`
	RiskScore          float64         `json:"risk_score"`
	CompositeScore     float64         `json:"composite_score"`
	EventsRelevance    string          `json:"major_events_relevance,omitempty"`
	Details            json.RawMessage `json:"details,omitempty"`
	Fallback           bool            `json:"fallback"`
}

// Validate checks that the metrics identify their entity.
func (m Metrics) Validate() error {
	if strings.TrimSpace(m.Identity.Name) == "" || strings.TrimSpace(m.Identity.State) == "" {
		return NewValidationError("identification", "research result has no identification")
	}
	if m.MedianPrice < 0 {
		return NewValidationError("median_price", fmt.Sprintf("median price %.0f is negative", m.MedianPrice))
	}
	return nil
}

// Key identifies the metrics by entity name and state.
func (m Metrics) Key() string {
	return Candidate{Name: m.Identity.Name, State: m.Identity.State}.Key()
}

// DefaultGrowthCurve is the projection used when research is unavailable.
func DefaultGrowthCurve() map[int]float64 {
	return map[int]float64{1: 3.0, 2: 6.0, 3: 9.5, 5: 16.0, 10: 35.0, 25: 95.0}
}

// FallbackMetrics builds minimal metrics from what discovery already knows.
func FallbackMetrics(c Candidate) Metrics {
	return Metrics{
		Identity: Identity{
			Name:   c.Name,
			State:  c.State,
			LGA:    c.LGA,
			Region: c.Region,
		},
		MedianPrice:        c.MedianPrice,
		KeyDrivers:         slices.Clone(c.GrowthSignals),
		ProjectedGrowthPct: DefaultGrowthCurve(),
		GrowthScore:        NeutralScore,
		RiskScore:          NeutralScore,
		CompositeScore:     NeutralScore,
		EventsRelevance:    c.EventsRelevance,
		Fallback:           true,
	}
}

// RankMetrics orders metrics by composite score, highest first, keeping the
// input order for ties, and truncates to topN when topN > 0.
func RankMetrics(metrics []Metrics, topN int) []Metrics {
	ranked := slices.Clone(metrics)
	slices.SortStableFunc(ranked, func(a, b Metrics) int {
		switch {
		case a.CompositeScore > b.CompositeScore:
			return -1
		case a.CompositeScore < b.CompositeScore:
			return 1
		default:
			return 0
		}
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// RunResult summarizes one pipeline run. Succeeded, Fallbacks and Skipped
// count research tasks of this invocation only.
type RunResult struct {
	RunID      string    `json:"run_id"`
	Status     RunStatus `json:"status"`
	FatalError string    `json:"fatal_error,omitempty"`
	Entities   []Metrics `json:"entities"`
	Discovered int       `json:"discovered"`
	Resumed    int       `json:"resumed"`
	Succeeded  int       `json:"succeeded"`
	Fallbacks  int       `json:"fallbacks"`
	Skipped    int       `json:"skipped"`
	CacheHits  int       `json:"cache_hits"`
}
