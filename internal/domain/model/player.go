// Package model contains the roster and result records passed between layers.
package model

import (
	"time"

	"github.com/okian/rondo/internal/domain/types"
)

// Bounds applied while parsing roster records.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
	MinAge        = 5
	MaxAge        = 100
)

// Player is a validated, clamped roster entry. Values are never mutated
// after parsing; the solver works on copies of the slice, not the players.
type Player struct {
	ID          string
	Name        string
	Age         int
	Rating      int
	Main        types.Position
	Alt         types.Position // PositionUnknown when no second role was given
	CheckedInAt time.Time      // zero when the player never checked in
}

// HasAlt reports whether the player declared a usable second position.
func (p Player) HasAlt() bool { return p.Alt.Valid() }

// Covers reports whether the player can take pos with either role.
func (p Player) Covers(pos types.Position) bool {
	return p.Main == pos || p.Alt == pos
}

// KeeperCapable reports whether the player can go in goal at all.
func (p Player) KeeperCapable() bool { return p.Covers(types.Goalkeeper) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
