package roles_test

import (
	"testing"

	model "github.com/okian/rondo/internal/domain/model"
	roles "github.com/okian/rondo/internal/domain/roles"
	types "github.com/okian/rondo/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func player(id string, main types.Position, alt ...types.Position) model.Player {
	p := model.Player{ID: id, Name: id, Rating: 3, Age: 30, Main: main}
	if len(alt) > 0 {
		p.Alt = alt[0]
	}
	return p
}

func TestAssign(t *testing.T) {
	Convey("Given a team with a patchable midfield hole", t, func() {
		team := []model.Player{
			player("gk", types.Goalkeeper),
			player("df1", types.Defender),
			player("df2", types.Defender, types.Midfielder),
			player("st", types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then the clustered defender slides into midfield", func() {
				So(got[0][0], ShouldEqual, types.Goalkeeper)
				So(got[0][1], ShouldEqual, types.Defender)
				So(got[0][2], ShouldEqual, types.Midfielder)
				So(got[0][3], ShouldEqual, types.Striker)
			})
		})
	})

	Convey("Given a hole whose only donor is a singleton", t, func() {
		team := []model.Player{
			player("gk", types.Goalkeeper),
			player("df", types.Defender, types.Midfielder),
			player("st", types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then nobody moves and the hole stays", func() {
				So(got[0][1], ShouldEqual, types.Defender)
			})
		})
	})

	Convey("Given two eligible donors for one hole", t, func() {
		team := []model.Player{
			player("mid1", types.Midfielder, types.Defender),
			player("mid2", types.Midfielder, types.Defender),
			player("st", types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then the first in team order moves", func() {
				So(got[0][0], ShouldEqual, types.Defender)
				So(got[0][1], ShouldEqual, types.Midfielder)
			})
		})
	})

	Convey("Given an empty goal with a willing alternate", t, func() {
		team := []model.Player{
			player("df1", types.Defender, types.Goalkeeper),
			player("df2", types.Defender),
			player("mid", types.Midfielder),
			player("st", types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then the goal stays empty; the pass never fills GK", func() {
				So(got[0][0], ShouldEqual, types.Defender)
				So(got[0][1], ShouldEqual, types.Defender)
			})
		})
	})

	Convey("Given a surplus keeper who can play out", t, func() {
		team := []model.Player{
			player("gk1", types.Goalkeeper),
			player("gk2", types.Goalkeeper, types.Defender),
			player("mid", types.Midfielder),
			player("st", types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then the second keeper takes the empty defence", func() {
				So(got[0][0], ShouldEqual, types.Goalkeeper)
				So(got[0][1], ShouldEqual, types.Defender)
			})
		})
	})

	Convey("Given holes that cascade in the fixed order", t, func() {
		team := []model.Player{
			player("gk", types.Goalkeeper),
			player("df1", types.Defender),
			player("df2", types.Defender, types.Midfielder),
			player("df3", types.Defender, types.Striker),
		}

		Convey("When assigning roles", func() {
			got := roles.Assign([][]model.Player{team})

			Convey("Then DF, then MID, then ST resolve against live counts", func() {
				So(got[0][1], ShouldEqual, types.Defender)
				So(got[0][2], ShouldEqual, types.Midfielder)
				So(got[0][3], ShouldEqual, types.Striker)
			})
		})
	})

	Convey("Given several teams at once", t, func() {
		teams := [][]model.Player{
			{player("a1", types.Defender), player("a2", types.Midfielder)},
			{player("b1", types.Striker, types.Midfielder), player("b2", types.Striker)},
		}

		Convey("When assigning roles", func() {
			got := roles.Assign(teams)

			Convey("Then each team is patched independently", func() {
				So(len(got), ShouldEqual, 2)
				So(got[0][0], ShouldEqual, types.Defender)
				So(got[1][0], ShouldEqual, types.Midfielder)
				So(got[1][1], ShouldEqual, types.Striker)
			})
		})
	})
}
