// Package plan decides the team structure for a roster size: how many
// teams, how big each one is, and how many players start on the bench.
package plan

import (
	"errors"
	"fmt"
)

// MinPlayers is the smallest roster the solver accepts.
const MinPlayers = 6

// Thresholds for the structure rules.
const (
	fullTeamSize    = 7
	twoFullTeamsMin = 15
	threeTeamsMin   = 21
)

// Sentinel kinds for planning errors.
var ErrTooFewPlayers = errors.New("too few players")

// Plan is the target structure for one solve.
type Plan struct {
	TeamCount int
	TeamSizes []int
	BenchSize int
}

// TotalPlaying returns the number of roster spots across all teams.
func (p Plan) TotalPlaying() int {
	total := 0
	for _, s := range p.TeamSizes {
		total += s
	}
	return total
}

// For maps a roster size onto a structure.
//
// Large turnouts run three full-sided teams, mid-size turnouts two, and
// small ones split as evenly as possible with nobody benched:
//
//	n >= 21        3 teams of 7, bench n-21
//	15 <= n <= 20  2 teams of 7, bench n-14
//	6 <= n <= 14   2 teams of ceil(n/2) and floor(n/2), no bench
func For(n int) (Plan, error) {
	switch {
	case n < MinPlayers:
		return Plan{}, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewPlayers, n, MinPlayers)
	case n >= threeTeamsMin:
		return Plan{
			TeamCount: 3,
			TeamSizes: []int{fullTeamSize, fullTeamSize, fullTeamSize},
			BenchSize: n - 3*fullTeamSize,
		}, nil
	case n >= twoFullTeamsMin:
		return Plan{
			TeamCount: 2,
			TeamSizes: []int{fullTeamSize, fullTeamSize},
			BenchSize: n - 2*fullTeamSize,
		}, nil
	default:
		first := (n + 1) / 2
		return Plan{
			TeamCount: 2,
			TeamSizes: []int{first, n - first},
			BenchSize: 0,
		}, nil
	}
}
