package trainer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"rlgridviz/pkg/snapshot"
)

// ErrTrainInFlight is returned when a training trigger arrives while a
// previous request is still outstanding
var ErrTrainInFlight = errors.New("a training request is already in flight")

// SnapshotCallback receives the snapshot produced by each completed
// training round
type SnapshotCallback func(round int, snap *snapshot.Snapshot)

// RunnerOptions configures an auto-training loop
type RunnerOptions struct {
	Rounds   int           // training rounds to run
	Debounce time.Duration // delay between rounds
	Request  TrainRequest  // per-round training parameters
}

// DefaultRunnerOptions returns a 10-round loop with a short debounce
func DefaultRunnerOptions() RunnerOptions {
	return RunnerOptions{
		Rounds:   10,
		Debounce: time.Millisecond * 250,
		Request:  TrainRequest{Episodes: 50, Alpha: 0.1},
	}
}

// Runner drives repeated training rounds against the service. It
// guarantees at most one in-flight request at a time and debounces
// successive rounds, so the downstream pipeline only ever sees
// complete, consistent snapshots.
type Runner struct {
	client   Client
	opts     RunnerOptions
	inFlight atomic.Bool
}

// NewRunner creates a runner over the given client
func NewRunner(client Client, opts RunnerOptions) *Runner {
	if opts.Rounds < 1 {
		opts.Rounds = 1
	}
	return &Runner{client: client, opts: opts}
}

// TriggerTrain issues a single training request, refusing to overlap
// with one already in flight.
func (r *Runner) TriggerTrain(ctx context.Context) (*snapshot.Snapshot, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTrainInFlight
	}
	defer r.inFlight.Store(false)

	return r.client.Train(ctx, r.opts.Request)
}

// Run executes the configured number of training rounds, invoking the
// callback after each one. It stops early on context cancellation or
// the first failed round.
func (r *Runner) Run(ctx context.Context, callback SnapshotCallback) error {
	for round := 1; round <= r.opts.Rounds; round++ {
		snap, err := r.TriggerTrain(ctx)
		if err != nil {
			return fmt.Errorf("training round %d failed: %w", round, err)
		}

		if callback != nil {
			callback(round, snap)
		}

		if round == r.opts.Rounds || r.opts.Debounce <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.opts.Debounce):
		}
	}
	return nil
}
