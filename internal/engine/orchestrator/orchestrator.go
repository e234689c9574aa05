// Package orchestrator runs batches of provider calls on a bounded worker
// pool, substituting fallbacks for transient failures and stopping every
// worker on the first account-level failure.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// FetchFunc performs the work for one task.
type FetchFunc[T, R any] func(ctx context.Context, index int, task T) (R, error)

// FallbackFunc builds a substitute result for a task whose fetch failed transiently.
type FallbackFunc[T, R any] func(task T, err error) R

// ResultFunc observes a filled slot. Calls are serialized.
type ResultFunc[R any] func(index int, status domain.TaskStatus, result R)

// Outcome is the final state of one task.
type Outcome struct {
	Index  int
	Status domain.TaskStatus
	Err    error
}

// Result is the outcome of one Run.
type Result[R any] struct {
	// Results holds filled slots in task order.
	Results []R
	Status  domain.RunStatus
	// FatalError is the account-fatal or propagated error that stopped the run.
	FatalError error
	Outcomes   []Outcome
}

// Orchestrator fans tasks of type T out to fetch and gathers results of type R.
type Orchestrator[T, R any] struct {
	name     string
	fetch    FetchFunc[T, R]
	fallback FallbackFunc[T, R]
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.MetricsRecorder
	onResult ResultFunc[R]
}

// New creates an Orchestrator. name prefixes task spans. A nil fallback
// leaves transiently failed slots empty.
func New[T, R any](
	name string,
	fetch FetchFunc[T, R],
	fallback FallbackFunc[T, R],
	log ports.Logger,
	tracer ports.Tracer,
	metrics ports.MetricsRecorder,
) *Orchestrator[T, R] {
	return &Orchestrator[T, R]{
		name:     name,
		fetch:    fetch,
		fallback: fallback,
		logger:   log,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// WithOnResult registers fn to be called after each filled slot.
func (o *Orchestrator[T, R]) WithOnResult(fn ResultFunc[R]) *Orchestrator[T, R] {
	o.onResult = fn
	return o
}

// runState is the shared state of a single Run call.
type runState[R any] struct {
	signal     *AccountErrorSignal
	propagated *AccountErrorSignal
	results    *OrderedResultSet[R]

	mu       sync.Mutex
	outcomes []Outcome

	cbMu sync.Mutex
}

func (s *runState[R]) setOutcome(index int, status domain.TaskStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[index] = Outcome{Index: index, Status: status, Err: err}
}

func (s *runState[R]) stopped(ctx context.Context) bool {
	return s.signal.IsSet() || s.propagated.IsSet() || ctx.Err() != nil
}

// Run executes tasks with at most maxWorkers concurrent fetches. Tasks that
// have not started when the run stops are skipped; in-flight fetches finish.
func (o *Orchestrator[T, R]) Run(ctx context.Context, tasks []T, maxWorkers int) Result[R] {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	state := &runState[R]{
		signal:     NewAccountErrorSignal(),
		propagated: NewAccountErrorSignal(),
		results:    NewOrderedResultSet[R](len(tasks)),
		outcomes:   make([]Outcome, len(tasks)),
	}
	for i := range tasks {
		state.outcomes[i] = Outcome{Index: i, Status: domain.TaskPending}
	}

	g := new(errgroup.Group)
	g.SetLimit(maxWorkers)

	for i, task := range tasks {
		if state.stopped(ctx) {
			break
		}
		g.Go(func() error {
			o.runTask(ctx, state, i, task)
			return nil
		})
	}
	_ = g.Wait()

	for i := range state.outcomes {
		if state.outcomes[i].Status == domain.TaskPending {
			state.outcomes[i].Status = domain.TaskSkipped
			o.metrics.TaskFinished(domain.TaskSkipped)
		}
	}

	res := Result[R]{
		Results:  state.results.Ordered(),
		Status:   domain.RunCompleted,
		Outcomes: state.outcomes,
	}
	if state.results.Filled() < len(tasks) {
		res.Status = domain.RunAborted
	}

	switch {
	case state.signal.IsSet():
		res.FatalError = state.signal.Get()
	case state.propagated.IsSet():
		res.FatalError = state.propagated.Get()
	case res.Status == domain.RunAborted && ctx.Err() != nil:
		res.FatalError = ctx.Err()
	}
	if res.FatalError != nil {
		res.Status = domain.RunAborted
	}
	return res
}

func (o *Orchestrator[T, R]) runTask(ctx context.Context, state *runState[R], index int, task T) {
	if state.stopped(ctx) {
		state.setOutcome(index, domain.TaskSkipped, nil)
		o.metrics.TaskFinished(domain.TaskSkipped)
		return
	}

	state.setOutcome(index, domain.TaskRunning, nil)
	o.metrics.WorkerActive(1)
	defer o.metrics.WorkerActive(-1)

	ctx, span := o.tracer.Start(ctx, o.name+".task", ports.WithAttribute("index", index))
	defer span.End()

	result, err := o.fetch(ctx, index, task)
	status := o.classify(ctx, state, index, task, result, err)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttribute("status", string(status))

	state.setOutcome(index, status, err)
	o.metrics.TaskFinished(status)

	if status.Filled() && o.onResult != nil {
		filled, _ := state.results.Get(index)
		state.cbMu.Lock()
		defer state.cbMu.Unlock()
		o.onResult(index, status, filled)
	}
}

// classify records the fetch outcome and returns the task status.
func (o *Orchestrator[T, R]) classify(
	ctx context.Context,
	state *runState[R],
	index int,
	task T,
	result R,
	err error,
) domain.TaskStatus {
	switch {
	case err == nil:
		state.results.Put(index, result)
		return domain.TaskSuccess

	case domain.IsAccountFatal(err):
		if state.signal.Set(err) {
			o.logger.Error(zerr.Wrap(err, fmt.Sprintf("%s task %d hit an account limit, stopping workers", o.name, index)))
		}
		return domain.TaskSkipped

	case domain.IsTransientTaskError(err) || domain.IsKind(err, domain.KindCacheIO):
		if o.fallback == nil {
			o.logger.Warn(fmt.Sprintf("%s task %d failed: %v", o.name, index, err))
			return domain.TaskSkipped
		}
		o.logger.Warn(fmt.Sprintf("%s task %d failed, using fallback: %v", o.name, index, err))
		state.results.Put(index, o.fallback(task, err))
		return domain.TaskFallbackUsed

	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return domain.TaskSkipped

	default:
		state.propagated.Set(err)
		return domain.TaskSkipped
	}
}
