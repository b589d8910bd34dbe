package partition

import (
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
)

// Snake is the rating-ladder builder: the whole pool sorted by rating is
// dealt in serpentine order, so the team that picks last in one round
// picks first in the next.
type Snake struct{}

// NewSnake returns the snake-draft strategy.
func NewSnake() *Snake { return &Snake{} }

// Name implements Strategy.
func (s *Snake) Name() string { return "snake_draft" }

// Build implements Strategy.
func (s *Snake) Build(pool []model.Player, p plan.Plan, _ int64) (*Partition, error) {
	pt := New(p)
	walk := newSerpent(pt.TeamCount())

	for _, player := range byRatingDesc(pool) {
		if err := walk.place(pt, player); err != nil {
			return nil, err
		}
	}

	if !pt.Complete() {
		return nil, ErrIncomplete
	}
	return pt, nil
}
