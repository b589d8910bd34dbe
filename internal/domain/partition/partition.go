// Package partition holds the working form of candidate team splits and
// the construction strategies that build them from a playing pool.
package partition

import (
	"errors"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/types"
)

// Sentinel kinds for partition errors.
var (
	ErrTeamFull   = errors.New("team is full")
	ErrBadTeam    = errors.New("team index out of range")
	ErrIncomplete = errors.New("partition left players unplaced")
)

// Partition is one candidate split of the playing pool into teams. Every
// instance is an independent working copy; strategies and the refiner
// mutate their own and never share backing arrays.
type Partition struct {
	capacity []int
	teams    [][]model.Player
}

// New returns an empty partition shaped by p.
func New(p plan.Plan) *Partition {
	capacity := make([]int, len(p.TeamSizes))
	copy(capacity, p.TeamSizes)
	teams := make([][]model.Player, len(p.TeamSizes))
	for i, size := range p.TeamSizes {
		teams[i] = make([]model.Player, 0, size)
	}
	return &Partition{capacity: capacity, teams: teams}
}

// Clone returns a deep working copy safe to mutate independently.
func (pt *Partition) Clone() *Partition {
	capacity := make([]int, len(pt.capacity))
	copy(capacity, pt.capacity)
	teams := make([][]model.Player, len(pt.teams))
	for i, team := range pt.teams {
		teams[i] = make([]model.Player, len(team), cap(team))
		copy(teams[i], team)
	}
	return &Partition{capacity: capacity, teams: teams}
}

// TeamCount returns the number of teams.
func (pt *Partition) TeamCount() int { return len(pt.teams) }

// Capacity returns the target size of team i.
func (pt *Partition) Capacity(i int) int { return pt.capacity[i] }

// Team returns the members of team i in assignment order. The slice is a
// view; callers inside the solver treat it as read-only.
func (pt *Partition) Team(i int) []model.Player { return pt.teams[i] }

// Count returns the current size of team i.
func (pt *Partition) Count(i int) int { return len(pt.teams[i]) }

// Full reports whether team i reached its target size.
func (pt *Partition) Full(i int) bool { return len(pt.teams[i]) >= pt.capacity[i] }

// Complete reports whether every team is exactly at its target size.
func (pt *Partition) Complete() bool {
	for i := range pt.teams {
		if len(pt.teams[i]) != pt.capacity[i] {
			return false
		}
	}
	return true
}

// Add appends p to team i.
func (pt *Partition) Add(i int, p model.Player) error {
	if i < 0 || i >= len(pt.teams) {
		return ErrBadTeam
	}
	if pt.Full(i) {
		return ErrTeamFull
	}
	pt.teams[i] = append(pt.teams[i], p)
	return nil
}

// Swap exchanges member a of team i with member b of team j.
func (pt *Partition) Swap(i, a, j, b int) {
	pt.teams[i][a], pt.teams[j][b] = pt.teams[j][b], pt.teams[i][a]
}

// SkillSum returns the rating total of team i.
func (pt *Partition) SkillSum(i int) int {
	sum := 0
	for _, p := range pt.teams[i] {
		sum += p.Rating
	}
	return sum
}

// AgeSum returns the age total of team i.
func (pt *Partition) AgeSum(i int) int {
	sum := 0
	for _, p := range pt.teams[i] {
		sum += p.Age
	}
	return sum
}

// MeanSkill returns the average of all current team skill sums.
func (pt *Partition) MeanSkill() float64 {
	if len(pt.teams) == 0 {
		return 0
	}
	total := 0
	for i := range pt.teams {
		total += pt.SkillSum(i)
	}
	return float64(total) / float64(len(pt.teams))
}

// SkillSpread returns the lowest and highest team skill sums.
func (pt *Partition) SkillSpread() (min, max int) {
	for i := range pt.teams {
		s := pt.SkillSum(i)
		if i == 0 || s < min {
			min = s
		}
		if i == 0 || s > max {
			max = s
		}
	}
	return min, max
}

// AgeSpread returns the lowest and highest team age sums.
func (pt *Partition) AgeSpread() (min, max int) {
	for i := range pt.teams {
		s := pt.AgeSum(i)
		if i == 0 || s < min {
			min = s
		}
		if i == 0 || s > max {
			max = s
		}
	}
	return min, max
}

// PositionCount counts members of team i whose main position is pos.
func (pt *Partition) PositionCount(i int, pos types.Position) int {
	count := 0
	for _, p := range pt.teams[i] {
		if p.Main == pos {
			count++
		}
	}
	return count
}

// AltCovers reports whether any member of team i lists pos as their
// alternate position.
func (pt *Partition) AltCovers(i int, pos types.Position) bool {
	for _, p := range pt.teams[i] {
		if p.Alt == pos {
			return true
		}
	}
	return false
}
