package partition_test

import (
	"fmt"
	"testing"

	model "github.com/okian/rondo/internal/domain/model"
	partition "github.com/okian/rondo/internal/domain/partition"
	plan "github.com/okian/rondo/internal/domain/plan"
	types "github.com/okian/rondo/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// sixMids is a pool with one obvious strong half and weak half.
func sixMids() []model.Player {
	return []model.Player{
		mk("a", 5, 30, types.Midfielder),
		mk("b", 5, 30, types.Midfielder),
		mk("c", 5, 30, types.Midfielder),
		mk("d", 1, 30, types.Midfielder),
		mk("e", 1, 30, types.Midfielder),
		mk("f", 1, 30, types.Midfielder),
	}
}

func mixedPool(n int) []model.Player {
	positions := []types.Position{
		types.Goalkeeper, types.Defender, types.Midfielder, types.Striker,
		types.Defender, types.Midfielder, types.Striker,
	}
	pool := make([]model.Player, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, mk(
			fmt.Sprintf("p%02d", i),
			1+(i*3)%5,
			18+(i*7)%30,
			positions[i%len(positions)],
		))
	}
	return pool
}

func memberIDs(pt *partition.Partition) map[string]int {
	seen := make(map[string]int)
	for i := 0; i < pt.TeamCount(); i++ {
		for _, p := range pt.Team(i) {
			seen[p.ID]++
		}
	}
	return seen
}

func TestSnakeBuild(t *testing.T) {
	Convey("Given six players on a clean rating ladder", t, func() {
		pool := sixMids()
		p, _ := plan.For(len(pool))

		Convey("When the snake deals them", func() {
			pt, err := partition.NewSnake().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then the serpentine order doubles back at the ends", func() {
				So(pt.Team(0)[0].ID, ShouldEqual, "a")
				So(pt.Team(1)[0].ID, ShouldEqual, "b")
				So(pt.Team(1)[1].ID, ShouldEqual, "c")
				So(pt.Team(0)[1].ID, ShouldEqual, "d")
				So(pt.Team(0)[2].ID, ShouldEqual, "e")
				So(pt.Team(1)[2].ID, ShouldEqual, "f")
			})

			Convey("Then the pool itself is untouched", func() {
				So(pool[0].ID, ShouldEqual, "a")
				So(pool[5].ID, ShouldEqual, "f")
			})
		})
	})

	Convey("Given uneven team sizes", t, func() {
		pool := mixedPool(9)
		p, _ := plan.For(9)

		Convey("When the snake deals them", func() {
			pt, err := partition.NewSnake().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then the smaller team fills late but correctly", func() {
				So(pt.Complete(), ShouldBeTrue)
				So(pt.Count(0), ShouldEqual, 5)
				So(pt.Count(1), ShouldEqual, 4)
			})
		})
	})
}

func TestDraftBuild(t *testing.T) {
	Convey("Given six same-position players", t, func() {
		pool := sixMids()
		p, _ := plan.For(len(pool))

		Convey("When the draft places them", func() {
			pt, err := partition.NewDraft().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then thin-cover and low-skill ties steer each pick", func() {
				// a opens team 0, b evens the count on team 1, c ties back
				// to team 0, then the weak tail rebalances.
				So(pt.Team(0)[0].ID, ShouldEqual, "a")
				So(pt.Team(0)[1].ID, ShouldEqual, "c")
				So(pt.Team(0)[2].ID, ShouldEqual, "f")
				So(pt.Team(1)[0].ID, ShouldEqual, "b")
				So(pt.Team(1)[1].ID, ShouldEqual, "d")
				So(pt.Team(1)[2].ID, ShouldEqual, "e")
			})
		})
	})

	Convey("Given a position-diverse pool", t, func() {
		pool := mixedPool(14)
		p, _ := plan.For(14)

		Convey("When the draft places them", func() {
			pt, err := partition.NewDraft().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then every player lands exactly once", func() {
				So(pt.Complete(), ShouldBeTrue)
				seen := memberIDs(pt)
				So(len(seen), ShouldEqual, 14)
				for _, count := range seen {
					So(count, ShouldEqual, 1)
				}
			})

			Convey("Then no team hoards a position the other lacks by two", func() {
				for _, pos := range types.AllPositions() {
					diff := pt.PositionCount(0, pos) - pt.PositionCount(1, pos)
					if diff < 0 {
						diff = -diff
					}
					So(diff, ShouldBeLessThanOrEqualTo, 1)
				}
			})
		})
	})
}

func TestHybridBuild(t *testing.T) {
	Convey("Given three keepers for three teams", t, func() {
		pool := mixedPool(21)
		keepers := 0
		for _, p := range pool {
			if p.Main == types.Goalkeeper {
				keepers++
			}
		}
		So(keepers, ShouldEqual, 3)
		p, _ := plan.For(21)

		Convey("When the hybrid builds teams", func() {
			pt, err := partition.NewHybrid().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then each team has exactly one keeper", func() {
				So(pt.Complete(), ShouldBeTrue)
				for i := 0; i < 3; i++ {
					So(pt.PositionCount(i, types.Goalkeeper), ShouldEqual, 1)
				}
			})

			Convey("Then every team covers every field position", func() {
				for i := 0; i < 3; i++ {
					for _, pos := range types.FieldPositions() {
						So(pt.PositionCount(i, pos), ShouldBeGreaterThanOrEqualTo, 1)
					}
				}
			})
		})
	})

	Convey("Given keepers with spread ratings", t, func() {
		pool := []model.Player{
			mk("k1", 5, 30, types.Goalkeeper),
			mk("k2", 3, 30, types.Goalkeeper),
			mk("k3", 1, 30, types.Goalkeeper),
			mk("d1", 4, 30, types.Defender),
			mk("d2", 4, 30, types.Defender),
			mk("m1", 2, 30, types.Midfielder),
		}
		p, _ := plan.For(6)

		Convey("When the hybrid spreads the gloves", func() {
			pt, err := partition.NewHybrid().Build(pool, p, 0)
			So(err, ShouldBeNil)

			Convey("Then the best and worst keepers go to opposite teams", func() {
				So(pt.Team(0)[0].ID, ShouldEqual, "k1")
				So(pt.Team(1)[0].ID, ShouldEqual, "k3")
			})
		})
	})
}

func TestStrategyContract(t *testing.T) {
	Convey("Given every shipped strategy", t, func() {
		strategies := partition.Default()
		So(len(strategies), ShouldEqual, 3)
		So(strategies[0].Name(), ShouldEqual, "position_draft")
		So(strategies[1].Name(), ShouldEqual, "snake_draft")
		So(strategies[2].Name(), ShouldEqual, "balanced_hybrid")

		Convey("When building across a range of pool sizes", func() {
			for n := 6; n <= 24; n += 3 {
				pool := mixedPool(n)
				p, err := plan.For(n)
				So(err, ShouldBeNil)
				playing := pool[:p.TotalPlaying()]

				for _, s := range strategies {
					pt, err := s.Build(playing, p, 42)
					So(err, ShouldBeNil)
					So(pt.Complete(), ShouldBeTrue)

					seen := memberIDs(pt)
					So(len(seen), ShouldEqual, len(playing))
					for _, count := range seen {
						So(count, ShouldEqual, 1)
					}
				}
			}
		})

		Convey("When building twice from the same pool", func() {
			pool := mixedPool(14)
			p, _ := plan.For(14)

			for _, s := range strategies {
				first, err := s.Build(pool, p, 7)
				So(err, ShouldBeNil)
				second, err := s.Build(pool, p, 7)
				So(err, ShouldBeNil)

				for i := 0; i < first.TeamCount(); i++ {
					So(len(first.Team(i)), ShouldEqual, len(second.Team(i)))
					for j := range first.Team(i) {
						So(first.Team(i)[j].ID, ShouldEqual, second.Team(i)[j].ID)
					}
				}
			}
		})
	})
}
