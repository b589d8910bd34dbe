package refine_test

import (
	"fmt"
	"testing"

	model "github.com/okian/rondo/internal/domain/model"
	partition "github.com/okian/rondo/internal/domain/partition"
	plan "github.com/okian/rondo/internal/domain/plan"
	refine "github.com/okian/rondo/internal/domain/refine"
	scoring "github.com/okian/rondo/internal/domain/scoring"
	types "github.com/okian/rondo/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func mid(id string, rating int) model.Player {
	return model.Player{ID: id, Name: id, Rating: rating, Age: 30, Main: types.Midfielder}
}

func build(teams ...[]model.Player) *partition.Partition {
	sizes := make([]int, len(teams))
	for i, team := range teams {
		sizes[i] = len(team)
	}
	pt := partition.New(plan.Plan{TeamCount: len(teams), TeamSizes: sizes})
	for i, team := range teams {
		for _, p := range team {
			if err := pt.Add(i, p); err != nil {
				panic(err)
			}
		}
	}
	return pt
}

func TestRefineImproves(t *testing.T) {
	Convey("Given a lopsided split that a single swap can even out", t, func() {
		// Sums 10 vs 8; one swap of adjacent ratings reaches 9 vs 9.
		pt := build(
			[]model.Player{mid("a", 5), mid("b", 3), mid("c", 2)},
			[]model.Player{mid("d", 4), mid("e", 3), mid("f", 1)},
		)
		r := refine.New()

		Convey("When refining", func() {
			out := r.Refine(pt)

			Convey("Then the skill gap closes in one applied swap", func() {
				So(out.Breakdown.SkillGap, ShouldEqual, 0)
				So(out.Iterations, ShouldEqual, 1)
				So(out.Improved, ShouldEqual, 2*scoring.SkillGapWeight)
				So(pt.SkillSum(0), ShouldEqual, 9)
				So(pt.SkillSum(1), ShouldEqual, 9)
			})
		})
	})
}

func TestRefineLocalOptimum(t *testing.T) {
	Convey("Given a split no single swap can improve", t, func() {
		// Rating multiset {5,5,5,1,1,1} can only split 3v3 as 7/11 or
		// worse; every cross swap keeps or mirrors the gap.
		pt := build(
			[]model.Player{mid("a", 5), mid("b", 1), mid("c", 1)},
			[]model.Player{mid("d", 5), mid("e", 5), mid("f", 1)},
		)
		r := refine.New()
		before := scoring.New().Evaluate(pt)

		Convey("When refining", func() {
			out := r.Refine(pt)

			Convey("Then nothing is applied and nothing regresses", func() {
				So(out.Iterations, ShouldEqual, 0)
				So(out.Improved, ShouldEqual, 0)
				So(out.Breakdown.Total, ShouldEqual, before.Total)
				So(pt.SkillSum(0), ShouldEqual, 7)
				So(pt.SkillSum(1), ShouldEqual, 11)
			})
		})
	})
}

func TestRefineCap(t *testing.T) {
	Convey("Given a split needing two swaps and a cap of one", t, func() {
		pt := build(
			[]model.Player{mid("a", 5), mid("b", 5), mid("c", 5), mid("d", 5)},
			[]model.Player{mid("e", 1), mid("f", 1), mid("g", 1), mid("h", 1)},
		)
		r := refine.New(refine.WithMaxIterations(1))

		Convey("When refining", func() {
			out := r.Refine(pt)

			Convey("Then it stops at the cap with partial progress", func() {
				So(out.Iterations, ShouldEqual, 1)
				So(out.Breakdown.SkillGap, ShouldEqual, 8)
				So(out.Improved, ShouldEqual, 8*scoring.SkillGapWeight)
			})
		})

		Convey("When refining without the cap", func() {
			full := build(
				[]model.Player{mid("a", 5), mid("b", 5), mid("c", 5), mid("d", 5)},
				[]model.Player{mid("e", 1), mid("f", 1), mid("g", 1), mid("h", 1)},
			)
			out := refine.New().Refine(full)

			Convey("Then two swaps reach the even split", func() {
				So(out.Iterations, ShouldEqual, 2)
				So(out.Breakdown.SkillGap, ShouldEqual, 0)
				So(full.SkillSum(0), ShouldEqual, 12)
				So(full.SkillSum(1), ShouldEqual, 12)
			})
		})
	})
}

func TestRefineNeverRegresses(t *testing.T) {
	Convey("Given strategy-built partitions of many sizes", t, func() {
		scorer := scoring.New()
		r := refine.New()

		Convey("When refining each candidate", func() {
			for n := 6; n <= 21; n += 5 {
				pool := make([]model.Player, 0, n)
				positions := types.AllPositions()
				for i := 0; i < n; i++ {
					p := mid(fmt.Sprintf("p%02d", i), 1+(i*2)%5)
					p.Main = positions[i%len(positions)]
					pool = append(pool, p)
				}
				pl, err := plan.For(n)
				So(err, ShouldBeNil)
				playing := pool[:pl.TotalPlaying()]

				for _, s := range partition.Default() {
					pt, err := s.Build(playing, pl, 0)
					So(err, ShouldBeNil)
					before := scorer.Evaluate(pt).Total

					out := r.Refine(pt)
					So(out.Breakdown.Total, ShouldBeLessThanOrEqualTo, before)
					So(out.Iterations, ShouldBeLessThanOrEqualTo, refine.DefaultMaxIterations)
					So(pt.Complete(), ShouldBeTrue)
				}
			}
		})
	})
}

func TestRefineDeterminism(t *testing.T) {
	Convey("Given two identical partitions", t, func() {
		mkTeams := func() *partition.Partition {
			return build(
				[]model.Player{mid("a", 5), mid("b", 4), mid("c", 4)},
				[]model.Player{mid("d", 2), mid("e", 1), mid("f", 1)},
			)
		}
		first := mkTeams()
		second := mkTeams()
		r := refine.New()

		Convey("When refining both", func() {
			outFirst := r.Refine(first)
			outSecond := r.Refine(second)

			Convey("Then every placement matches", func() {
				So(outFirst.Breakdown.Total, ShouldEqual, outSecond.Breakdown.Total)
				So(outFirst.Iterations, ShouldEqual, outSecond.Iterations)
				for i := 0; i < first.TeamCount(); i++ {
					for j := range first.Team(i) {
						So(first.Team(i)[j].ID, ShouldEqual, second.Team(i)[j].ID)
					}
				}
			})
		})
	})
}
