// Package sync holds the incremental-fetch loop shared by every harvester:
// deciding per identifier whether to hit the network, pacing requests with a
// politeness delay, and accounting outcomes.
package sync

import (
	"context"
	"errors"
	"time"

	"jpdiet/kokkaiharvester/logger"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

// Outcome is the result of one per-identifier step
type Outcome int

const (
	// OutcomeFetched means at least one network call was made for the item
	OutcomeFetched Outcome = iota
	// OutcomeSkipped means the cache satisfied the item without network I/O
	OutcomeSkipped
	// OutcomeErrored means the item failed and was left for a later run
	OutcomeErrored
)

// Summary aggregates the outcomes of one run
type Summary struct {
	Fetched int `json:"fetched"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
	Total   int `json:"total"`
}

func (s *Summary) add(o Outcome) {
	s.Total++
	switch o {
	case OutcomeFetched:
		s.Fetched++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeErrored:
		s.Errored++
	}
}

// Merge folds another summary into this one
func (s *Summary) Merge(other Summary) {
	s.Fetched += other.Fetched
	s.Skipped += other.Skipped
	s.Errored += other.Errored
	s.Total += other.Total
}

// Decide is the per-identifier decision: fetch when nothing is cached,
// skip terminal entries unless forced, refetch non-terminal entries unless
// the artifact is existence-only (immutable once downloaded).
func Decide(exists, terminal, force, existenceOnly bool) bool {
	if !exists {
		return true
	}
	if force {
		return true
	}
	if existenceOnly || terminal {
		return false
	}
	return true
}

// Step is one unit of work over a single identifier
type Step struct {
	ID string
	Do func(ctx context.Context) (Outcome, error)
}

// Driver sequences steps one at a time, sleeping the politeness delay after
// each step that attempted network work, successful or not
type Driver struct {
	log   *logger.Logger
	delay time.Duration
}

// NewDriver creates a driver with the given politeness delay
func NewDriver(log *logger.Logger, delay time.Duration) *Driver {
	return &Driver{log: log, delay: delay}
}

// Run executes the steps sequentially. A step error is logged and counted,
// never fatal. Cancellation is honored between steps, not mid-step.
func (d *Driver) Run(ctx context.Context, steps []Step) Summary {
	var summary Summary
	total := len(steps)
	for i, step := range steps {
		if ctx.Err() != nil {
			d.log.Warn().Msg("interrupted, stopping before next item")
			break
		}
		d.log.Info().
			Str("id", step.ID).
			Msgf("[%d/%d] processing", i+1, total)

		out, err := step.Do(ctx)
		if err != nil {
			out = OutcomeErrored
			ev := d.log.Error().Err(err).Str("id", step.ID)
			var he *kerrors.HarvestError
			if errors.As(err, &he) {
				ev = ev.Bool("retryable", he.IsRetryable())
			}
			ev.Msg("item failed, continuing")
		}
		summary.add(out)

		// A failed attempt still hit the upstream; only cache hits skip the
		// delay.
		if out != OutcomeSkipped {
			d.Sleep(ctx)
		}
	}
	return summary
}

// Sleep waits the politeness delay, returning early on cancellation
func (d *Driver) Sleep(ctx context.Context) {
	SleepFor(ctx, d.delay)
}

// SleepFor waits for delay, returning early on cancellation
func SleepFor(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
