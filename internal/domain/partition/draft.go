package partition

import (
	"sort"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/types"
)

// Draft is the position-aware builder: it drafts position by position,
// strongest players first, always handing the next player to the team
// with the thinnest cover for that position.
type Draft struct{}

// NewDraft returns the position-aware draft strategy.
func NewDraft() *Draft { return &Draft{} }

// Name implements Strategy.
func (d *Draft) Name() string { return "position_draft" }

// Build implements Strategy.
//
// Positions are processed in GK, DF, MID, ST order. Within a position,
// players go out by descending rating to the open team with the fewest
// players of that position; ties fall to the lower team skill sum, then
// the lower team index.
func (d *Draft) Build(pool []model.Player, p plan.Plan, _ int64) (*Partition, error) {
	pt := New(p)
	groups := groupByMain(pool)

	var leftovers []model.Player
	for _, pos := range types.AllPositions() {
		group := groups[pos]
		sort.SliceStable(group, func(a, b int) bool { return group[a].Rating > group[b].Rating })

		for _, player := range group {
			team, ok := thinnestOpenTeam(pt, pos)
			if !ok {
				leftovers = append(leftovers, player)
				continue
			}
			if err := pt.Add(team, player); err != nil {
				return nil, err
			}
		}
	}

	// Safety net: players whose position round found no open team land on
	// the weakest open team.
	for _, player := range leftovers {
		team, ok := lowestSkillOpenTeam(pt)
		if !ok {
			return nil, ErrIncomplete
		}
		if err := pt.Add(team, player); err != nil {
			return nil, err
		}
	}

	if !pt.Complete() {
		return nil, ErrIncomplete
	}
	return pt, nil
}

// thinnestOpenTeam picks the open team with the fewest players of pos,
// breaking ties toward the lower skill sum and then the lower index.
func thinnestOpenTeam(pt *Partition, pos types.Position) (int, bool) {
	best := -1
	bestCount, bestSkill := 0, 0
	for i := 0; i < pt.TeamCount(); i++ {
		if pt.Full(i) {
			continue
		}
		count := pt.PositionCount(i, pos)
		skill := pt.SkillSum(i)
		if best == -1 || count < bestCount || (count == bestCount && skill < bestSkill) {
			best, bestCount, bestSkill = i, count, skill
		}
	}
	return best, best != -1
}

// lowestSkillOpenTeam picks the open team with the lowest skill sum,
// ties toward the lower index.
func lowestSkillOpenTeam(pt *Partition) (int, bool) {
	best := -1
	bestSkill := 0
	for i := 0; i < pt.TeamCount(); i++ {
		if pt.Full(i) {
			continue
		}
		skill := pt.SkillSum(i)
		if best == -1 || skill < bestSkill {
			best, bestSkill = i, skill
		}
	}
	return best, best != -1
}
