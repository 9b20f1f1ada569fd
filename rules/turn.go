package rules

import (
	"github.com/nstehr/armada/model"
)

// NavOptions is the intent handed to the navigator alongside a destination.
type NavOptions struct {
	Speed          int
	MaxCorrections int
	AngularStep    int
	IgnoreShips    bool
	IgnorePlanets  bool
}

// Navigator turns a destination into a thrust command. Obstacle avoidance lives
// behind this interface; the engine never positions ships itself.
type Navigator interface {
	Navigate(ship model.Ship, target model.Point, gs *model.GameState, opts NavOptions) (model.Command, bool)
}

// Turn is everything one decision pass needs. It is built fresh for every
// snapshot and dropped when the turn's commands are returned.
type Turn struct {
	State   *model.GameState
	Class   Classifier
	Tracker *Tracker
	Tuning  Tuning
	Nav     Navigator

	Leader    int
	HasLeader bool
	Rally     int // rally planet id, valid when HasRally
	HasRally  bool

	ranked    map[int][]Ranked
	avgRadius float64
	enemies   []model.Ship
}

func newTurn(gs *model.GameState, tuning Tuning, nav Navigator) *Turn {
	t := &Turn{
		State:   gs,
		Class:   Classifier{Me: gs.PlayerID},
		Tracker: NewTracker(gs),
		Tuning:  tuning,
		Nav:     nav,
		ranked:  make(map[int][]Ranked),
	}

	var sum float64
	var n int
	for _, p := range gs.Planets {
		if t.Class.IsMine(p) {
			sum += p.Radius
			n++
		}
	}
	if n > 0 {
		t.avgRadius = sum / float64(n)
	}
	for _, p := range gs.Players {
		if p.ID == gs.PlayerID {
			continue
		}
		t.enemies = append(t.enemies, p.Ships...)
	}
	return t
}

// RankFrom returns the ranking around a ship, computed once per ship per turn.
func (t *Turn) RankFrom(s model.Ship) []Ranked {
	if r, ok := t.ranked[s.ID]; ok {
		return r
	}
	r := Rank(s.Position(), t.State)
	t.ranked[s.ID] = r
	return r
}

// AverageOwnedRadius is the mean radius of my planets, 0 when I own none.
func (t *Turn) AverageOwnedRadius() float64 { return t.avgRadius }

// enemyWithin reports whether an undocked enemy ship is within radius of p.
func (t *Turn) enemyWithin(p model.Point, radius float64) bool {
	for _, e := range t.enemies {
		if e.Docking == model.Undocked && model.Distance(p, e.Position()) <= radius {
			return true
		}
	}
	return false
}

func (t *Turn) navOptions() NavOptions {
	return NavOptions{
		Speed:          t.Tuning.Speed,
		MaxCorrections: t.Tuning.MaxCorrections,
		AngularStep:    t.Tuning.AngularStep,
	}
}
