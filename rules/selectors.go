package rules

import (
	"slices"

	"github.com/nstehr/armada/model"
)

// NearestVulnerableEnemy finds the closest enemy ship that is docking, docked
// or undocking within radius. Such ships cannot fight back.
func (t *Turn) NearestVulnerableEnemy(s model.Ship, radius float64) (model.Ship, bool) {
	e, d, ok := nearest(t.RankFrom(s), func(e model.Ship) bool {
		return t.Class.IsEnemy(e) && t.Class.IsDocked(e)
	})
	if !ok || d > radius {
		return model.Ship{}, false
	}
	return e, true
}

// NearestUnownedPlanets returns up to n unowned planets, nearest first.
func (t *Turn) NearestUnownedPlanets(s model.Ship, n int) []model.Planet {
	return collect(t.RankFrom(s), n, func(p model.Planet) bool {
		return t.Class.IsUnowned(p)
	})
}

// LargestPlanet picks the planet with the greatest radius; the earliest wins ties.
func LargestPlanet(planets []model.Planet) (model.Planet, bool) {
	if len(planets) == 0 {
		return model.Planet{}, false
	}
	// MaxFunc returns the first maximal element.
	return slices.MaxFunc(planets, func(a, b model.Planet) int {
		switch {
		case a.Radius < b.Radius:
			return -1
		case a.Radius > b.Radius:
			return 1
		}
		return 0
	}), true
}

// NearestReinforcePlanet is my nearest planet with spare capacity whose radius is
// at least the average of my planets. Without one it settles for any of my
// planets with spare capacity.
func (t *Turn) NearestReinforcePlanet(s model.Ship) (model.Planet, bool) {
	open := func(p model.Planet) bool {
		return t.Class.IsMine(p) && !t.Class.IsFull(p) && t.Tracker.Remaining(p.ID) > 0
	}
	ranked := t.RankFrom(s)
	if p, _, ok := nearest(ranked, func(p model.Planet) bool {
		return open(p) && p.Radius >= t.AverageOwnedRadius()
	}); ok {
		return p, true
	}
	p, _, ok := nearest(ranked, open)
	return p, ok
}

// NearestUnownedPlanet skips planets whose capacity is already committed this turn.
func (t *Turn) NearestUnownedPlanet(s model.Ship) (model.Planet, bool) {
	p, _, ok := nearest(t.RankFrom(s), func(p model.Planet) bool {
		return t.Class.IsUnowned(p) && t.Tracker.Remaining(p.ID) > 0
	})
	return p, ok
}

// UnownedPlanetCandidates lists unowned planets with capacity left, nearest first.
func (t *Turn) UnownedPlanetCandidates(s model.Ship) []model.Planet {
	return collect(t.RankFrom(s), 0, func(p model.Planet) bool {
		return t.Class.IsUnowned(p) && t.Tracker.Remaining(p.ID) > 0
	})
}

func (t *Turn) NearestEnemyPlanet(s model.Ship) (model.Planet, bool) {
	p, _, ok := nearest(t.RankFrom(s), func(p model.Planet) bool {
		return t.Class.IsEnemy(p)
	})
	return p, ok
}

func (t *Turn) NearestEnemyShip(s model.Ship) (model.Ship, float64, bool) {
	return nearest(t.RankFrom(s), func(e model.Ship) bool {
		return t.Class.IsEnemy(e)
	})
}

// NearestShipOf returns the closest ship owned by owner. Finding none is an
// ordinary miss, not an error.
func (t *Turn) NearestShipOf(s model.Ship, owner int) (model.Ship, float64, bool) {
	return nearest(t.RankFrom(s), func(e model.Ship) bool {
		return e.Owner == owner && owner != t.Class.Me
	})
}

// AttackTarget prefers the leader's nearest ship when it is no farther than
// LeaderDistanceRatio times the nearest enemy ship, else the nearest enemy ship.
func (t *Turn) AttackTarget(s model.Ship) (model.Ship, bool) {
	target, dist, ok := t.NearestEnemyShip(s)
	if !ok {
		return model.Ship{}, false
	}
	if !t.HasLeader || target.Owner == t.Leader {
		return target, true
	}
	lt, ld, ok := t.NearestShipOf(s, t.Leader)
	if ok && ld <= t.Tuning.LeaderDistanceRatio*dist {
		return lt, true
	}
	return target, true
}
