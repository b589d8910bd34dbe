// Package types holds the closed position and team vocabularies shared
// across the solver.
package types

import (
	"errors"
	"fmt"
)

// Sentinel kinds for vocabulary errors.
var (
	ErrUnknownPosition = errors.New("unknown position")
	ErrUnknownTeam     = errors.New("unknown team")
)

// Position is a player's role on the pitch.
type Position uint8

const (
	PositionUnknown Position = iota
	Goalkeeper
	Defender
	Midfielder
	Striker
)

// Wire names, shared with the HTTP payloads.
const (
	wireGoalkeeper = "GK"
	wireDefender   = "DF"
	wireMidfielder = "MID"
	wireStriker    = "ST"
)

// AllPositions returns the four positions in canonical order.
func AllPositions() []Position {
	return []Position{Goalkeeper, Defender, Midfielder, Striker}
}

// FieldPositions returns the outfield positions in the order gap fixes
// and penalties are applied: DF, MID, ST.
func FieldPositions() []Position {
	return []Position{Defender, Midfielder, Striker}
}

// ParsePosition maps a wire name to a Position.
func ParsePosition(s string) (Position, error) {
	switch s {
	case wireGoalkeeper:
		return Goalkeeper, nil
	case wireDefender:
		return Defender, nil
	case wireMidfielder:
		return Midfielder, nil
	case wireStriker:
		return Striker, nil
	default:
		return PositionUnknown, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
	}
}

// Valid reports whether p is one of the four playable positions.
func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Striker:
		return true
	case PositionUnknown:
		return false
	default:
		return false
	}
}

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return wireGoalkeeper
	case Defender:
		return wireDefender
	case Midfielder:
		return wireMidfielder
	case Striker:
		return wireStriker
	case PositionUnknown:
		return ""
	default:
		return ""
	}
}

// MarshalText renders the wire name; an unknown position is an error so
// bad values never leak into payloads.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPosition, uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText parses a wire name.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TeamColor identifies a generated team, or the substitute pool.
type TeamColor uint8

const (
	TeamNone TeamColor = iota
	TeamRed
	TeamBlue
	TeamYellow
	// TeamBench is the substitute pool, not a playing team.
	TeamBench
)

const (
	wireRed    = "RED"
	wireBlue   = "BLUE"
	wireYellow = "YELLOW"
	wireBench  = "SUB"
)

// teamOrder maps team index to color. The planner never produces more
// than three teams.
var teamOrder = [...]TeamColor{TeamRed, TeamBlue, TeamYellow}

// MaxTeams is the largest team count the color vocabulary supports.
const MaxTeams = len(teamOrder)

// ColorFor returns the color of the team at index i.
func ColorFor(i int) (TeamColor, error) {
	if i < 0 || i >= len(teamOrder) {
		return TeamNone, fmt.Errorf("%w: index %d", ErrUnknownTeam, i)
	}
	return teamOrder[i], nil
}

// TeamColors returns the colors of the first count teams in index order.
func TeamColors(count int) []TeamColor {
	if count < 0 {
		return nil
	}
	if count > len(teamOrder) {
		count = len(teamOrder)
	}
	out := make([]TeamColor, count)
	copy(out, teamOrder[:count])
	return out
}

// ParseTeamColor maps a wire name to a TeamColor.
func ParseTeamColor(s string) (TeamColor, error) {
	switch s {
	case wireRed:
		return TeamRed, nil
	case wireBlue:
		return TeamBlue, nil
	case wireYellow:
		return TeamYellow, nil
	case wireBench:
		return TeamBench, nil
	default:
		return TeamNone, fmt.Errorf("%w: %q", ErrUnknownTeam, s)
	}
}

// Index returns the team index for a playing color, or -1 for the bench
// and for unknown values.
func (c TeamColor) Index() int {
	switch c {
	case TeamRed:
		return 0
	case TeamBlue:
		return 1
	case TeamYellow:
		return 2
	case TeamBench, TeamNone:
		return -1
	default:
		return -1
	}
}

// Playing reports whether c is a real team rather than the bench.
func (c TeamColor) Playing() bool {
	switch c {
	case TeamRed, TeamBlue, TeamYellow:
		return true
	case TeamBench, TeamNone:
		return false
	default:
		return false
	}
}

func (c TeamColor) String() string {
	switch c {
	case TeamRed:
		return wireRed
	case TeamBlue:
		return wireBlue
	case TeamYellow:
		return wireYellow
	case TeamBench:
		return wireBench
	case TeamNone:
		return ""
	default:
		return ""
	}
}

// MarshalText renders the wire name.
func (c TeamColor) MarshalText() ([]byte, error) {
	if c == TeamNone {
		return nil, fmt.Errorf("%w: unset", ErrUnknownTeam)
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a wire name.
func (c *TeamColor) UnmarshalText(text []byte) error {
	parsed, err := ParseTeamColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
