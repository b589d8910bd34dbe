package partition

import (
	"sort"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/types"
)

// Strategy builds one candidate partition from the playing pool.
//
// Implementations must be deterministic for a given pool and seed,
// stateless across calls, and must leave the pool slice untouched. The
// seed is reserved for randomized or exact-search strategies; the
// shipped heuristics ignore it.
type Strategy interface {
	Name() string
	Build(pool []model.Player, p plan.Plan, seed int64) (*Partition, error)
}

// Default returns the shipped strategies in their selection order.
func Default() []Strategy {
	return []Strategy{NewDraft(), NewSnake(), NewHybrid()}
}

// byRatingDesc returns a fresh copy of pool ordered by rating, highest
// first. The sort is stable so equal ratings keep their pool order.
func byRatingDesc(pool []model.Player) []model.Player {
	out := make([]model.Player, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Rating > out[b].Rating })
	return out
}

// groupByMain splits pool by main position, keeping pool order inside
// each group.
func groupByMain(pool []model.Player) map[types.Position][]model.Player {
	groups := make(map[types.Position][]model.Player, len(types.AllPositions()))
	for _, p := range pool {
		groups[p.Main] = append(groups[p.Main], p)
	}
	return groups
}

// serpent walks team indices in boustrophedon order, repeating the end
// teams on each turn: 0,1,...,T-1,T-1,...,1,0,0,1,...
type serpent struct {
	n   int
	i   int
	dir int
}

func newSerpent(n int) *serpent {
	return &serpent{n: n, dir: 1}
}

// next returns the current index and steps the walk.
func (s *serpent) next() int {
	cur := s.i
	if next := s.i + s.dir; next < 0 || next >= s.n {
		s.dir = -s.dir
	} else {
		s.i = next
	}
	return cur
}

// place drops p on the next open team along the walk.
func (s *serpent) place(pt *Partition, p model.Player) error {
	// Each open team is visited within one full sweep back and forth.
	for tries := 0; tries < 2*s.n; tries++ {
		i := s.next()
		if !pt.Full(i) {
			return pt.Add(i, p)
		}
	}
	return ErrIncomplete
}
