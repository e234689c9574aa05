package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Phase names a pipeline stage that can be checkpointed.
type Phase string

const (
	// PhaseDiscovery is written once per run and never pruned.
	PhaseDiscovery Phase = "discovery"
	// PhaseResearch is appended after every research batch.
	PhaseResearch Phase = "research"
)

// MaxRunIDLength bounds run identifiers.
const MaxRunIDLength = 100

var runIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p == PhaseDiscovery || p == PhaseResearch
}

// ParsePhase validates s as a checkpoint phase.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", NewValidationError("phase", "unknown phase '"+s+"', expected discovery or research")
	}
	return p, nil
}

// CheckpointName returns the file stem of a checkpoint: "research_0003" for
// positive sequences and the bare phase otherwise.
func CheckpointName(phase Phase, sequence int) string {
	if sequence > 0 {
		return fmt.Sprintf("%s_%04d", phase, sequence)
	}
	return string(phase)
}

// ValidateRunID checks that id is 1-100 characters of letters, digits, '-' or '_'.
// Run ids become directory names, so anything else is rejected.
func ValidateRunID(id string) error {
	if id == "" || len(id) > MaxRunIDLength {
		return NewValidationError("run_id", fmt.Sprintf("run id must be 1-%d characters, got %d", MaxRunIDLength, len(id)))
	}
	if !runIDPattern.MatchString(id) {
		return NewValidationError("run_id",
			fmt.Sprintf("run id '%s' contains invalid characters, only letters, numbers, '-' and '_' are allowed", id))
	}
	return nil
}

// CheckpointRecord is the envelope persisted for every checkpoint.
type CheckpointRecord struct {
	RunID     string          `json:"run_id"`
	Phase     Phase           `json:"phase"`
	Sequence  int             `json:"sequence"`
	Timestamp time.Time       `json:"timestamp"`
	State     json.RawMessage `json:"state"`
}

// CheckpointInfo describes a checkpoint file on disk.
type CheckpointInfo struct {
	Name      string    `json:"name"`
	Phase     Phase     `json:"phase"`
	Sequence  int       `json:"sequence"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
	Verified  bool      `json:"verified"`
}
