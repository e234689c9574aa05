package checkpoint

import "go.trai.ch/scout/internal/core/ports"

// Opener creates a Manager per run under a shared root directory.
type Opener struct {
	root        string
	maxRetained int
	logger      ports.Logger
	opts        []Option
}

var _ ports.CheckpointOpener = (*Opener)(nil)

// NewOpener returns an Opener for root.
func NewOpener(root string, maxRetained int, log ports.Logger, opts ...Option) *Opener {
	return &Opener{root: root, maxRetained: maxRetained, logger: log, opts: opts}
}

// Open returns the checkpoint store for runID.
func (o *Opener) Open(runID string) (ports.CheckpointStore, error) {
	m, err := NewManager(o.root, runID, o.maxRetained, o.logger, o.opts...)
	if err != nil {
		return nil, err
	}
	return m, nil
}
