// Package engine orchestrates a full balancing run: planning, the
// playing/bench split, candidate generation, refinement, selection,
// role assignment and reporting. A run is synchronous and deterministic
// for a given roster and seed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rondo/internal/adapters/diag"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/partition"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/refine"
	"github.com/okian/rondo/internal/domain/report"
	"github.com/okian/rondo/internal/domain/roles"
	"github.com/okian/rondo/internal/domain/types"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Sentinel kinds returned by the engine.
var (
	// ErrStrategyPanic wraps a panic recovered from a strategy build.
	ErrStrategyPanic = errors.New("strategy panicked")
)

// Options carries per-run inputs that are not part of the roster.
type Options struct {
	// Seed feeds the strategies. Runs with the same roster and seed
	// produce identical results.
	Seed int64
}

// Engine runs the balancing pipeline over a fixed set of strategies.
type Engine struct {
	strategies []partition.Strategy
	refiner    *refine.Refiner
	sink       diag.Sink
	log        logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategies replaces the default strategy set. Order matters:
// ties during selection resolve to the earliest strategy.
func WithStrategies(s ...partition.Strategy) Option {
	return func(e *Engine) {
		if len(s) > 0 {
			e.strategies = s
		}
	}
}

// WithRefiner replaces the default swap refiner.
func WithRefiner(r *refine.Refiner) Option {
	return func(e *Engine) {
		if r != nil {
			e.refiner = r
		}
	}
}

// WithSink installs a diagnostics sink for per-stage trace entries.
func WithSink(s diag.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger overrides the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine with the default strategies, refiner and a
// no-op diagnostics sink.
func New(opts ...Option) *Engine {
	e := &Engine{
		strategies: partition.Default(),
		refiner:    refine.New(),
		sink:       diag.Nop(),
		log:        logger.Get().Named("engine"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// candidate is one strategy's finished attempt.
type candidate struct {
	strategy string
	pt       *partition.Partition
	outcome  refine.Outcome
	buildMS  float64
	err      error
}

// Solve runs the full pipeline and always returns a result; failures
// are reported through SolveResult.Success, never through a panic.
// The context is used for diagnostics only: a run is short and is not
// cancelled midway.
func (e *Engine) Solve(ctx context.Context, players []model.Player, opts Options) model.SolveResult {
	start := time.Now()
	solveID := uuid.New().String()
	log := e.log.With(logger.String("solve_id", solveID))

	n := len(players)
	metrics.RecordRosterSize(n)

	pl, err := plan.For(n)
	if err != nil {
		msg := fmt.Sprintf("Not enough players (%d). Need at least %d.", n, plan.MinPlayers)
		e.sink.Record(ctx, diag.Entry{
			Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StagePlan,
			RosterSize: n, Err: err.Error(),
		})
		log.Warn(ctx, "roster below minimum", logger.Int("players", n))
		return model.Failure(msg, msSince(start))
	}
	e.sink.Record(ctx, diag.Entry{
		Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StagePlan,
		RosterSize: n,
		Note:       fmt.Sprintf("%d teams %v, bench %d", pl.TeamCount, pl.TeamSizes, pl.BenchSize),
	})

	playing, bench := splitByCheckIn(players, pl)
	metrics.RecordBenchSize(len(bench))
	e.sink.Record(ctx, diag.Entry{
		Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageSplit,
		RosterSize: n,
		Note:       fmt.Sprintf("playing %d, bench %d", len(playing), len(bench)),
	})

	candidates := e.buildCandidates(ctx, solveID, playing, pl, opts.Seed)

	best := -1
	for i := range candidates {
		if candidates[i].err != nil {
			continue
		}
		if best < 0 || candidates[i].outcome.Breakdown.Total < candidates[best].outcome.Breakdown.Total {
			best = i
		}
	}
	if best < 0 {
		e.sink.Record(ctx, diag.Entry{
			Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageSelect,
			RosterSize: n, Err: "all strategies failed",
		})
		log.Error(ctx, "all strategies failed", logger.Int("players", n))
		return model.Failure("No feasible solution found. Try adjusting constraints.", msSince(start))
	}

	winner := candidates[best]
	minSkill, maxSkill := winner.pt.SkillSpread()
	gap := float64(maxSkill - minSkill)
	metrics.RecordStrategyWin(winner.strategy)
	metrics.RecordFinalScore(winner.outcome.Breakdown.Total, gap)
	e.sink.Record(ctx, diag.Entry{
		Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageSelect,
		Strategy: winner.strategy, Score: winner.outcome.Breakdown.Total,
		SkillGap: gap, Iterations: winner.outcome.Iterations,
		RosterSize: n,
	})
	log.Info(ctx, "strategy selected",
		logger.String("strategy", winner.strategy),
		logger.Float64("score", winner.outcome.Breakdown.Total),
		logger.Int("iterations", winner.outcome.Iterations))

	result := e.assemble(players, winner, bench, pl, start)
	e.sink.Record(ctx, diag.Entry{
		Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageResult,
		Strategy: winner.strategy, Score: winner.outcome.Breakdown.Total,
		RosterSize: n,
		Note:       result.Message,
	})
	return result
}

// buildCandidates runs every strategy concurrently over the same
// read-only pool. Results land in a slice indexed by strategy order,
// so selection never depends on goroutine scheduling.
func (e *Engine) buildCandidates(ctx context.Context, solveID string, pool []model.Player, pl plan.Plan, seed int64) []candidate {
	out := make([]candidate, len(e.strategies))
	var wg sync.WaitGroup
	for i, s := range e.strategies {
		wg.Add(1)
		go func(i int, s partition.Strategy) {
			defer wg.Done()
			out[i] = e.buildOne(s, pool, pl, seed)
			c := &out[i]
			if c.err != nil {
				metrics.RecordStrategyFailure(c.strategy)
				e.sink.Record(ctx, diag.Entry{
					Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageBuild,
					Strategy: c.strategy, RosterSize: len(pool), Err: c.err.Error(),
				})
				e.log.Warn(ctx, "strategy failed",
					logger.String("solve_id", solveID),
					logger.String("strategy", c.strategy),
					logger.Error(c.err))
				return
			}
			metrics.RecordStrategyBuild(c.strategy, c.buildMS)
			metrics.RecordRefineIterations(c.strategy, c.outcome.Iterations)
			lo, hi := c.pt.SkillSpread()
			e.sink.Record(ctx, diag.Entry{
				Time: time.Now().UTC(), SolveID: solveID, Stage: diag.StageBuild,
				Strategy: c.strategy, Score: c.outcome.Breakdown.Total,
				SkillGap: float64(hi - lo), Iterations: c.outcome.Iterations,
				RosterSize: len(pool),
			})
		}(i, s)
	}
	wg.Wait()
	return out
}

// buildOne builds and refines a single candidate. A panicking strategy
// is converted to a failed candidate so one bad generator cannot take
// down the run.
func (e *Engine) buildOne(s partition.Strategy, pool []model.Player, pl plan.Plan, seed int64) (c candidate) {
	c.strategy = s.Name()
	defer func() {
		if r := recover(); r != nil {
			c.err = fmt.Errorf("%w: %v", ErrStrategyPanic, r)
		}
	}()
	started := time.Now()
	pt, err := s.Build(pool, pl, seed)
	if err != nil {
		c.err = fmt.Errorf("%s: %w", c.strategy, err)
		return c
	}
	c.pt = pt
	c.outcome = e.refiner.Refine(pt)
	c.buildMS = msSince(started)
	return c
}

// assemble turns the winning partition into the wire-level result:
// one assignment per roster player in input order, team metric rows
// and warnings.
func (e *Engine) assemble(players []model.Player, winner candidate, bench []model.Player, pl plan.Plan, start time.Time) model.SolveResult {
	teams := make([][]model.Player, winner.pt.TeamCount())
	for i := range teams {
		teams[i] = winner.pt.Team(i)
	}
	assigned := roles.Assign(teams)

	type placement struct {
		team  types.TeamColor
		role  types.Position
		bench *types.TeamColor
	}
	placed := make(map[string]placement, len(players))
	for i, team := range teams {
		color, err := types.ColorFor(i)
		if err != nil {
			color = types.TeamNone
		}
		for j, p := range team {
			placed[p.ID] = placement{team: color, role: assigned[i][j]}
		}
	}
	for k, p := range bench {
		affiliation, err := types.ColorFor(k % pl.TeamCount)
		if err != nil {
			affiliation = types.TeamNone
		}
		placed[p.ID] = placement{team: types.TeamBench, role: p.Main, bench: &affiliation}
	}

	assignments := make([]model.Assignment, 0, len(players))
	for _, p := range players {
		slot, ok := placed[p.ID]
		if !ok {
			// Every parsed player is either playing or benched; a miss
			// here is a programming error worth surfacing loudly.
			panic(fmt.Sprintf("player %s left unplaced", p.ID))
		}
		assignments = append(assignments, model.Assignment{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Team:       slot.team,
			Role:       slot.role,
			BenchTeam:  slot.bench,
		})
	}

	rows, warnings := report.Build(teams, assigned, bench)
	elapsed := msSince(start)
	return model.SolveResult{
		Success:     true,
		Message:     fmt.Sprintf("Teams generated (optimal) in %.0fms", elapsed),
		IsOptimal:   true,
		Assignments: assignments,
		TeamMetrics: rows,
		Warnings:    warnings,
		SolveTimeMS: model.Round2(elapsed),
	}
}

// splitByCheckIn orders the roster by check-in time, zero timestamps
// first, and cuts it into the playing pool and the bench. The sort is
// stable so players without a check-in keep their roster order.
func splitByCheckIn(players []model.Player, pl plan.Plan) (playing, bench []model.Player) {
	ordered := make([]model.Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(a, b int) bool {
		ta, tb := ordered[a].CheckedInAt, ordered[b].CheckedInAt
		if ta.IsZero() != tb.IsZero() {
			return ta.IsZero()
		}
		if ta.IsZero() {
			return false
		}
		return ta.Before(tb)
	})
	cut := pl.TotalPlaying()
	return ordered[:cut], ordered[cut:]
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
