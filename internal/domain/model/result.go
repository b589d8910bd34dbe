package model

import (
	"math"

	"github.com/okian/rondo/internal/domain/types"
)

// Assignment places one player on a team with a concrete role. BenchTeam
// is set only for substitutes and names the team they rotate in for.
type Assignment struct {
	PlayerID   string           `json:"player_id"`
	PlayerName string           `json:"player_name"`
	Team       types.TeamColor  `json:"team"`
	Role       types.Position   `json:"role"`
	BenchTeam  *types.TeamColor `json:"bench_team"`
}

// TeamMetrics summarizes one team, or the substitute pool, after role
// assignment. Positions always carries all four position keys.
type TeamMetrics struct {
	Team          types.TeamColor        `json:"team"`
	PlayerCount   int                    `json:"player_count"`
	SkillSum      int                    `json:"skill_sum"`
	AgeSum        int                    `json:"age_sum"`
	SkillAvg      float64                `json:"skill_avg"`
	AgeAvg        float64                `json:"age_avg"`
	HasGoalkeeper bool                   `json:"has_goalkeeper"`
	Positions     map[types.Position]int `json:"positions"`
}

// SolveResult is the complete outcome of one balancing run. Failures are
// results too: Success false plus a message, never a panic.
type SolveResult struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	IsOptimal   bool          `json:"is_optimal"`
	Assignments []Assignment  `json:"assignments,omitempty"`
	TeamMetrics []TeamMetrics `json:"team_metrics,omitempty"`
	Warnings    []string      `json:"warnings,omitempty"`
	SolveTimeMS float64       `json:"solve_time_ms"`
}

// Failure builds an unsuccessful result with a reason message.
func Failure(msg string, elapsedMS float64) SolveResult {
	return SolveResult{
		Success:     false,
		Message:     msg,
		SolveTimeMS: Round2(elapsedMS),
	}
}

// ValidationReport is the outcome of a dry-run roster check. Errors mark
// records the solver would refuse; warnings flag shortages it would
// tolerate but penalize.
type ValidationReport struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	PlayerCount int      `json:"player_count"`
}

// Round2 rounds to two decimals for wire fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
