package ports

import "go.trai.ch/scout/internal/core/domain"

// CheckpointStore persists verified pipeline progress for a single run.
//
//go:generate mockgen -source=checkpoint.go -destination=mocks/mock_checkpoint.go -package=mocks
type CheckpointStore interface {
	// RunID returns the run this store belongs to.
	RunID() string

	// Save writes state as the checkpoint for phase. Research checkpoints
	// with a positive sequence are appended and pruned.
	Save(phase domain.Phase, state any, sequence int) error

	// LoadLatest returns the newest verified checkpoint usable for phase,
	// or nil when none exists.
	LoadLatest(phase domain.Phase) (*domain.CheckpointRecord, error)

	// Has reports whether any checkpoint file exists for phase.
	Has(phase domain.Phase) bool

	// List describes the checkpoint files of the run.
	List() ([]domain.CheckpointInfo, error)
}

// CheckpointOpener creates checkpoint stores per run.
type CheckpointOpener interface {
	// Open returns the store for runID, validating the id first.
	Open(runID string) (CheckpointStore, error)
}
