package rules

import (
	"cmp"
	"slices"

	"github.com/nstehr/armada/model"
)

// Ranked pairs an entity with its distance from the ranking origin.
type Ranked struct {
	Distance float64
	Entity   model.Entity
}

// Group holds every entity at one exact distance, in snapshot order.
type Group struct {
	Distance float64
	Entities []model.Entity
}

// Rank orders every entity in the snapshot by ascending distance from origin.
// The sort is stable over gs.Entities(), so equal distances keep snapshot order.
func Rank(origin model.Point, gs *model.GameState) []Ranked {
	entities := gs.Entities()
	out := make([]Ranked, len(entities))
	for i, e := range entities {
		out[i] = Ranked{Distance: model.Distance(origin, e.Position()), Entity: e}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return out
}

// RankGroups is Rank with entries at the same distance collapsed into one group.
func RankGroups(origin model.Point, gs *model.GameState) []Group {
	var groups []Group
	for _, r := range Rank(origin, gs) {
		if n := len(groups); n > 0 && groups[n-1].Distance == r.Distance {
			groups[n-1].Entities = append(groups[n-1].Entities, r.Entity)
			continue
		}
		groups = append(groups, Group{Distance: r.Distance, Entities: []model.Entity{r.Entity}})
	}
	return groups
}

// nearest walks a ranking and returns the first entry of concrete type T that
// satisfies keep.
func nearest[T model.Entity](ranked []Ranked, keep func(T) bool) (T, float64, bool) {
	for _, r := range ranked {
		v, ok := r.Entity.(T)
		if ok && keep(v) {
			return v, r.Distance, true
		}
	}
	var zero T
	return zero, 0, false
}

// collect is nearest for the first n matches (all of them when n <= 0).
func collect[T model.Entity](ranked []Ranked, n int, keep func(T) bool) []T {
	var out []T
	for _, r := range ranked {
		v, ok := r.Entity.(T)
		if !ok || !keep(v) {
			continue
		}
		out = append(out, v)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
