package rules

import "github.com/nstehr/armada/model"

// UnitEnv is what rule conditions see for one ship. Fields and methods are
// callable from expr expressions, e.g. `Turn >= 20 && ShipID % 4 == 0`.
type UnitEnv struct {
	ShipID    int
	Health    int
	X         float64
	Y         float64
	Turn      int
	MyShips   int
	MyPlanets int
	HasLeader bool
	HasRally  bool

	turn *Turn
	ship model.Ship
}

func (t *Turn) unitEnv(s model.Ship) UnitEnv {
	planets := 0
	for _, p := range t.State.Planets {
		if t.Class.IsMine(p) {
			planets++
		}
	}
	return UnitEnv{
		ShipID:    s.ID,
		Health:    s.Health,
		X:         s.X,
		Y:         s.Y,
		Turn:      t.State.Turn,
		MyShips:   len(t.State.MyShips()),
		MyPlanets: planets,
		HasLeader: t.HasLeader,
		HasRally:  t.HasRally,
		turn:      t,
		ship:      s,
	}
}

// EnemiesWithin counts undocked enemy ships within radius of the ship.
func (e UnitEnv) EnemiesWithin(radius float64) int {
	if e.turn == nil {
		return 0
	}
	n := 0
	for _, en := range e.turn.enemies {
		if en.Docking == model.Undocked && model.Distance(e.ship.Position(), en.Position()) <= radius {
			n++
		}
	}
	return n
}

// UnownedPlanets counts planets nobody holds yet.
func (e UnitEnv) UnownedPlanets() int {
	if e.turn == nil {
		return 0
	}
	n := 0
	for _, p := range e.turn.State.Planets {
		if !p.IsOwned() {
			n++
		}
	}
	return n
}
