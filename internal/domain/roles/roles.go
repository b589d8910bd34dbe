// Package roles pins each selected team member to a concrete on-pitch
// role, patching empty field positions from declared alternates.
package roles

import (
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/types"
)

// Assign returns one role slice per team, index-aligned with the team
// members. Everyone starts on their main position; then, in DF, MID, ST
// order, a position nobody holds is filled by the first member whose
// alternate matches and whose current role still has another occupant.
//
// This is a single best-effort pass. It never backtracks, never moves a
// player whose departure would open a new hole, and never fills an empty
// goal; surplus keepers may rotate out through their alternates like
// anyone else. Gaps it cannot fix surface as warnings instead.
func Assign(teams [][]model.Player) [][]types.Position {
	out := make([][]types.Position, len(teams))
	for i, team := range teams {
		out[i] = assignTeam(team)
	}
	return out
}

func assignTeam(team []model.Player) []types.Position {
	assigned := make([]types.Position, len(team))
	counts := make(map[types.Position]int, 4)
	for i, p := range team {
		assigned[i] = p.Main
		counts[p.Main]++
	}

	for _, pos := range types.FieldPositions() {
		if counts[pos] > 0 {
			continue
		}
		for i, p := range team {
			if p.Alt == pos && counts[assigned[i]] > 1 {
				counts[assigned[i]]--
				assigned[i] = pos
				counts[pos]++
				break
			}
		}
	}

	return assigned
}
