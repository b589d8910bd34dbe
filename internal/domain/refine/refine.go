// Package refine improves candidate partitions with deterministic
// steepest-descent member swaps.
package refine

import (
	"github.com/okian/rondo/internal/domain/partition"
	"github.com/okian/rondo/internal/domain/scoring"
)

// DefaultMaxIterations caps swap rounds when the caller does not set one.
const DefaultMaxIterations = 50

// Refiner walks a partition downhill in score, one swap per iteration.
type Refiner struct {
	maxIterations int
	scorer        *scoring.Scorer
}

// Option adjusts a Refiner.
type Option func(*Refiner)

// WithMaxIterations bounds the number of applied swaps.
func WithMaxIterations(n int) Option {
	return func(r *Refiner) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// New returns a Refiner with the default iteration cap.
func New(opts ...Option) *Refiner {
	r := &Refiner{
		maxIterations: DefaultMaxIterations,
		scorer:        scoring.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Outcome reports where refinement stopped.
type Outcome struct {
	Breakdown  scoring.Breakdown
	Iterations int
	// Improved is the score shaved off the starting partition.
	Improved float64
}

// Refine mutates pt in place. Each iteration evaluates every cross-team
// pairwise swap, applies the single best strictly-improving one, and
// stops when no swap helps or the cap is reached. The scan order is
// fixed, so among equally good swaps the first encountered wins and the
// result is deterministic. The score never regresses.
func (r *Refiner) Refine(pt *partition.Partition) Outcome {
	current := r.scorer.Evaluate(pt)
	start := current.Total

	iterations := 0
	for ; iterations < r.maxIterations; iterations++ {
		bestI, bestA, bestJ, bestB := -1, -1, -1, -1
		best := current

		for i := 0; i < pt.TeamCount(); i++ {
			for j := i + 1; j < pt.TeamCount(); j++ {
				for a := 0; a < pt.Count(i); a++ {
					for b := 0; b < pt.Count(j); b++ {
						pt.Swap(i, a, j, b)
						cand := r.scorer.Evaluate(pt)
						pt.Swap(i, a, j, b)

						// All weights are exactly representable, so a
						// strict comparison needs no epsilon.
						if cand.Total < best.Total {
							best = cand
							bestI, bestA, bestJ, bestB = i, a, j, b
						}
					}
				}
			}
		}

		if bestI < 0 {
			break
		}
		pt.Swap(bestI, bestA, bestJ, bestB)
		current = best
	}

	return Outcome{
		Breakdown:  current,
		Iterations: iterations,
		Improved:   start - current.Total,
	}
}
