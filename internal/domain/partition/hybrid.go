package partition

import (
	"sort"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/types"
)

// Hybrid is the balanced builder: keepers are spread first, positional
// gaps are patched against the running skill average, and whoever is
// left goes out in a rating zig-zag.
type Hybrid struct{}

// NewHybrid returns the balanced-hybrid strategy.
func NewHybrid() *Hybrid { return &Hybrid{} }

// Name implements Strategy.
func (h *Hybrid) Name() string { return "balanced_hybrid" }

// Build implements Strategy.
func (h *Hybrid) Build(pool []model.Player, p plan.Plan, _ int64) (*Partition, error) {
	pt := New(p)

	pools := make(map[types.Position]*ratedPool, len(types.AllPositions()))
	for pos, group := range groupByMain(pool) {
		pools[pos] = newRatedPool(group)
	}
	for _, pos := range types.AllPositions() {
		if pools[pos] == nil {
			pools[pos] = newRatedPool(nil)
		}
	}

	// Keeper spread: one per team at most, alternating the strongest and
	// weakest remaining keeper so no side stacks the good gloves.
	keepers := pools[types.Goalkeeper]
	takeStrongest := true
	for i := 0; i < pt.TeamCount() && !keepers.empty(); i++ {
		if pt.Full(i) {
			continue
		}
		var keeper model.Player
		if takeStrongest {
			keeper = keepers.popStrongest()
		} else {
			keeper = keepers.popWeakest()
		}
		takeStrongest = !takeStrongest
		if err := pt.Add(i, keeper); err != nil {
			return nil, err
		}
	}

	// Gap patching: a team missing a field position gets the strongest
	// remaining player of it while the team trails the average skill,
	// otherwise the weakest.
	for _, pos := range types.FieldPositions() {
		candidates := pools[pos]
		for i := 0; i < pt.TeamCount(); i++ {
			if candidates.empty() || pt.Full(i) || pt.PositionCount(i, pos) > 0 {
				continue
			}
			var pick model.Player
			if float64(pt.SkillSum(i)) < pt.MeanSkill() {
				pick = candidates.popStrongest()
			} else {
				pick = candidates.popWeakest()
			}
			if err := pt.Add(i, pick); err != nil {
				return nil, err
			}
		}
	}

	// Whoever is left, extra keepers included, goes out by rating.
	var rest []model.Player
	for _, pos := range types.AllPositions() {
		rest = append(rest, pools[pos].players...)
	}
	walk := newSerpent(pt.TeamCount())
	for _, player := range byRatingDesc(rest) {
		if err := walk.place(pt, player); err != nil {
			return nil, err
		}
	}

	if !pt.Complete() {
		return nil, ErrIncomplete
	}
	return pt, nil
}

// ratedPool is a rating-sorted pool with cheap access to both ends.
type ratedPool struct {
	players []model.Player // descending rating
}

func newRatedPool(group []model.Player) *ratedPool {
	players := make([]model.Player, len(group))
	copy(players, group)
	sort.SliceStable(players, func(a, b int) bool { return players[a].Rating > players[b].Rating })
	return &ratedPool{players: players}
}

func (r *ratedPool) empty() bool { return len(r.players) == 0 }

func (r *ratedPool) popStrongest() model.Player {
	p := r.players[0]
	r.players = r.players[1:]
	return p
}

func (r *ratedPool) popWeakest() model.Player {
	p := r.players[len(r.players)-1]
	r.players = r.players[:len(r.players)-1]
	return p
}
