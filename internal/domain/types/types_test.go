package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/rondo/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPosition(t *testing.T) {
	Convey("Given the position vocabulary", t, func() {
		Convey("When parsing wire names", func() {
			cases := map[string]types.Position{
				"GK":  types.Goalkeeper,
				"DF":  types.Defender,
				"MID": types.Midfielder,
				"ST":  types.Striker,
			}
			for wire, want := range cases {
				got, err := types.ParsePosition(wire)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
				So(got.String(), ShouldEqual, wire)
				So(got.Valid(), ShouldBeTrue)
			}
		})

		Convey("When parsing an unknown name", func() {
			_, err := types.ParsePosition("CB")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown position")
		})

		Convey("When parsing an empty name", func() {
			_, err := types.ParsePosition("")
			So(err, ShouldNotBeNil)
		})

		Convey("When marshaling inside JSON", func() {
			b, err := json.Marshal(types.Midfielder)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `"MID"`)

			var p types.Position
			So(json.Unmarshal([]byte(`"ST"`), &p), ShouldBeNil)
			So(p, ShouldEqual, types.Striker)
		})

		Convey("When marshaling the zero value", func() {
			_, err := json.Marshal(types.PositionUnknown)
			So(err, ShouldNotBeNil)
		})

		Convey("When used as a map key", func() {
			counts := map[types.Position]int{
				types.Goalkeeper: 1,
				types.Defender:   2,
			}
			b, err := json.Marshal(counts)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"GK":1`)
			So(string(b), ShouldContainSubstring, `"DF":2`)
		})

		Convey("When listing canonical orders", func() {
			all := types.AllPositions()
			So(len(all), ShouldEqual, 4)
			So(all[0], ShouldEqual, types.Goalkeeper)
			So(all[3], ShouldEqual, types.Striker)

			field := types.FieldPositions()
			So(len(field), ShouldEqual, 3)
			So(field[0], ShouldEqual, types.Defender)
			So(field[1], ShouldEqual, types.Midfielder)
			So(field[2], ShouldEqual, types.Striker)
		})
	})
}

func TestTeamColor(t *testing.T) {
	Convey("Given the team vocabulary", t, func() {
		Convey("When mapping indices to colors", func() {
			red, err := types.ColorFor(0)
			So(err, ShouldBeNil)
			So(red, ShouldEqual, types.TeamRed)

			blue, err := types.ColorFor(1)
			So(err, ShouldBeNil)
			So(blue, ShouldEqual, types.TeamBlue)

			yellow, err := types.ColorFor(2)
			So(err, ShouldBeNil)
			So(yellow, ShouldEqual, types.TeamYellow)

			_, err = types.ColorFor(3)
			So(err, ShouldNotBeNil)
			_, err = types.ColorFor(-1)
			So(err, ShouldNotBeNil)
		})

		Convey("When listing colors for a team count", func() {
			two := types.TeamColors(2)
			So(len(two), ShouldEqual, 2)
			So(two[0], ShouldEqual, types.TeamRed)
			So(two[1], ShouldEqual, types.TeamBlue)

			three := types.TeamColors(3)
			So(len(three), ShouldEqual, 3)
			So(three[2], ShouldEqual, types.TeamYellow)

			So(len(types.TeamColors(0)), ShouldEqual, 0)
		})

		Convey("When round-tripping indices", func() {
			for i := 0; i < types.MaxTeams; i++ {
				c, err := types.ColorFor(i)
				So(err, ShouldBeNil)
				So(c.Index(), ShouldEqual, i)
				So(c.Playing(), ShouldBeTrue)
			}
			So(types.TeamBench.Index(), ShouldEqual, -1)
			So(types.TeamBench.Playing(), ShouldBeFalse)
		})

		Convey("When parsing wire names", func() {
			c, err := types.ParseTeamColor("SUB")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, types.TeamBench)

			_, err = types.ParseTeamColor("GREEN")
			So(err, ShouldNotBeNil)
		})

		Convey("When marshaling inside JSON", func() {
			b, err := json.Marshal(types.TeamYellow)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `"YELLOW"`)

			var c types.TeamColor
			So(json.Unmarshal([]byte(`"SUB"`), &c), ShouldBeNil)
			So(c, ShouldEqual, types.TeamBench)
		})
	})
}
