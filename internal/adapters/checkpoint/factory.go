package checkpoint

import (
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
)

// Factory creates Openers from settings.
type Factory struct {
	logger ports.Logger
	opts   []Option
}

var _ ports.CheckpointFactory = (*Factory)(nil)

// NewFactory creates a Factory whose managers share opts.
func NewFactory(log ports.Logger, opts ...Option) *Factory {
	return &Factory{logger: log, opts: opts}
}

// NewOpener returns an Opener rooted at cfg.Dir.
func (f *Factory) NewOpener(cfg domain.CheckpointSettings) ports.CheckpointOpener {
	return NewOpener(cfg.Dir, cfg.MaxRetained, f.logger, f.opts...)
}
