// Package report turns selected teams into wire metrics and warnings.
package report

import (
	"fmt"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/types"
)

// SkillGapWarningThreshold is the team skill spread beyond which the
// roster-wide warning fires.
const SkillGapWarningThreshold = 2

// Build computes one metrics row per team in index order, plus a SUB row
// when the bench is not empty, and the warning list.
//
// Position counts reflect assigned roles, so a patched alternate counts
// at the position they will actually play. Bench players keep their main
// position and never trigger warnings.
func Build(teams [][]model.Player, teamRoles [][]types.Position, bench []model.Player) ([]model.TeamMetrics, []string) {
	metrics := make([]model.TeamMetrics, 0, len(teams)+1)
	warnings := make([]string, 0, 4)

	minSkill, maxSkill := 0, 0
	for i, team := range teams {
		color, err := types.ColorFor(i)
		if err != nil {
			color = types.TeamNone
		}
		row := buildRow(color, team, teamRoles[i])
		metrics = append(metrics, row)

		if i == 0 || row.SkillSum < minSkill {
			minSkill = row.SkillSum
		}
		if i == 0 || row.SkillSum > maxSkill {
			maxSkill = row.SkillSum
		}

		if !row.HasGoalkeeper {
			warnings = append(warnings, fmt.Sprintf("Team %s is missing a goalkeeper", color))
		}
		for _, pos := range types.FieldPositions() {
			switch count := row.Positions[pos]; {
			case count == 0:
				warnings = append(warnings, fmt.Sprintf("Team %s has no %s", color, pos))
			case count >= 2:
				warnings = append(warnings, fmt.Sprintf("Team %s has %d %s", color, count, pos))
			}
		}
	}

	if gap := maxSkill - minSkill; gap > SkillGapWarningThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"Skill gap between teams is %d (max %d recommended)", gap, SkillGapWarningThreshold))
	}

	if len(bench) > 0 {
		benchRoles := make([]types.Position, len(bench))
		for i, p := range bench {
			benchRoles[i] = p.Main
		}
		metrics = append(metrics, buildRow(types.TeamBench, bench, benchRoles))
	}

	return metrics, warnings
}

func buildRow(color types.TeamColor, members []model.Player, assigned []types.Position) model.TeamMetrics {
	row := model.TeamMetrics{
		Team:      color,
		Positions: make(map[types.Position]int, 4),
	}
	for _, pos := range types.AllPositions() {
		row.Positions[pos] = 0
	}

	for i, p := range members {
		row.PlayerCount++
		row.SkillSum += p.Rating
		row.AgeSum += p.Age
		row.Positions[assigned[i]]++
	}

	if row.PlayerCount > 0 {
		row.SkillAvg = model.Round2(float64(row.SkillSum) / float64(row.PlayerCount))
		row.AgeAvg = model.Round2(float64(row.AgeSum) / float64(row.PlayerCount))
	}
	row.HasGoalkeeper = row.Positions[types.Goalkeeper] > 0
	return row
}
