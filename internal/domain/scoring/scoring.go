// Package scoring turns a candidate partition into a single comparable
// penalty score. Lower is better; a perfectly balanced split scores 0.
package scoring

import (
	"fmt"

	"github.com/okian/rondo/internal/domain/partition"
	"github.com/okian/rondo/internal/domain/types"
)

// Penalty weights. These are calibrated against each other (one point of
// skill gap outweighs a coverable position hole by 10x) and changing any
// of them reorders candidate solutions, so treat them as contract values.
const (
	// SkillGapWeight scales the spread between the strongest and weakest
	// team's rating sum.
	SkillGapWeight = 100.0
	// MissingFieldPenalty applies per team per field position with no
	// players at all and no alternate able to step in.
	MissingFieldPenalty = 50.0
	// CoveredFieldPenalty applies when a field position is empty but some
	// teammate lists it as their alternate.
	CoveredFieldPenalty = 10.0
	// FieldClusterPenalty applies per surplus player beyond the first in
	// one field position.
	FieldClusterPenalty = 15.0
	// MissingKeeperPenalty applies per team with nobody able to keep goal.
	MissingKeeperPenalty = 100.0
	// KeeperClusterPenalty applies per surplus keeper beyond the first.
	KeeperClusterPenalty = 80.0
	// AgeGapWeight scales the spread between team age sums.
	AgeGapWeight = 0.5
)

// Breakdown carries the total next to its ingredients so diagnostics can
// say why a candidate lost.
type Breakdown struct {
	Total         float64
	SkillGap      float64
	SkillScore    float64
	PositionScore float64
	AgeGap        float64
	AgeScore      float64
	// TeamIssues lists human-readable position problems per team index.
	TeamIssues [][]string
}

// Scorer evaluates partitions. It is stateless and safe for concurrent
// use across solves.
type Scorer struct{}

// New returns a Scorer.
func New() *Scorer { return &Scorer{} }

// Evaluate scores a partition on main-position composition. Role
// patching happens after selection, so alternates count only as cover
// that softens an empty slot, not as occupants.
func (s *Scorer) Evaluate(pt *partition.Partition) Breakdown {
	var b Breakdown

	minSkill, maxSkill := pt.SkillSpread()
	b.SkillGap = float64(maxSkill - minSkill)
	b.SkillScore = b.SkillGap * SkillGapWeight

	b.TeamIssues = make([][]string, pt.TeamCount())
	for i := 0; i < pt.TeamCount(); i++ {
		var issues []string

		keepers := pt.PositionCount(i, types.Goalkeeper)
		switch {
		case keepers == 0 && !pt.AltCovers(i, types.Goalkeeper):
			b.PositionScore += MissingKeeperPenalty
			issues = append(issues, "no GK")
		case keepers == 0:
			issues = append(issues, "no GK (alt cover)")
		case keepers >= 2:
			b.PositionScore += KeeperClusterPenalty * float64(keepers-1)
			issues = append(issues, fmt.Sprintf("%d GK", keepers))
		}

		for _, pos := range types.FieldPositions() {
			count := pt.PositionCount(i, pos)
			switch {
			case count == 0 && !pt.AltCovers(i, pos):
				b.PositionScore += MissingFieldPenalty
				issues = append(issues, fmt.Sprintf("no %s", pos))
			case count == 0:
				b.PositionScore += CoveredFieldPenalty
				issues = append(issues, fmt.Sprintf("no %s (alt cover)", pos))
			case count >= 2:
				b.PositionScore += FieldClusterPenalty * float64(count-1)
				issues = append(issues, fmt.Sprintf("%d %s", count, pos))
			}
		}

		b.TeamIssues[i] = issues
	}

	minAge, maxAge := pt.AgeSpread()
	b.AgeGap = float64(maxAge - minAge)
	b.AgeScore = b.AgeGap * AgeGapWeight

	b.Total = b.SkillScore + b.PositionScore + b.AgeScore
	return b
}
