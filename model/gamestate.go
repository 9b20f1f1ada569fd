package model

import (
	"encoding/json"
	"fmt"
)

// Unowned is the owner id of a planet nobody has docked at yet.
const Unowned = -1

// GameState is the immutable snapshot the engine decides one turn from.
type GameState struct {
	Turn     int      `json:"turn"`
	PlayerID int      `json:"playerId"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Players  []Player `json:"players"`
	Planets  []Planet `json:"planets"`
}

type Player struct {
	ID    int    `json:"id"`
	Ships []Ship `json:"ships"`
}

// DockingStatus mirrors the match engine's four docking states.
type DockingStatus int

const (
	Undocked DockingStatus = iota
	Docking
	Docked
	Undocking
)

var dockingNames = [...]string{"undocked", "docking", "docked", "undocking"}

func (d DockingStatus) String() string {
	if d < 0 || int(d) >= len(dockingNames) {
		return fmt.Sprintf("DockingStatus(%d)", int(d))
	}
	return dockingNames[d]
}

func (d DockingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DockingStatus) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("docking status: %w", err)
	}
	for i, name := range dockingNames {
		if name == s {
			*d = DockingStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown docking status %q", s)
}

type Ship struct {
	ID       int           `json:"id"`
	Owner    int           `json:"owner"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Health   int           `json:"health"`
	Docking  DockingStatus `json:"docking"`
	PlanetID int           `json:"planetId"`
}

type Planet struct {
	ID           int     `json:"id"`
	Owner        int     `json:"owner"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Radius       float64 `json:"radius"`
	DockingSpots int     `json:"dockingSpots"`
	Health       int     `json:"health"`
	DockedShips  []int   `json:"dockedShips"`
}

// UnmarshalJSON treats a missing owner as Unowned rather than player 0.
func (p *Planet) UnmarshalJSON(b []byte) error {
	type plain Planet
	v := plain{Owner: Unowned}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("planet: %w", err)
	}
	*p = Planet(v)
	return nil
}

// Occupancy is the number of docking spots currently taken.
func (p Planet) Occupancy() int { return len(p.DockedShips) }

// IsOwned reports whether any player holds the planet.
func (p Planet) IsOwned() bool { return p.Owner != Unowned }

// Me returns the acting player, or nil if the snapshot does not contain it.
func (gs *GameState) Me() *Player {
	return gs.Player(gs.PlayerID)
}

func (gs *GameState) Player(id int) *Player {
	for i := range gs.Players {
		if gs.Players[i].ID == id {
			return &gs.Players[i]
		}
	}
	return nil
}

// MyShips returns the acting player's ships in snapshot order.
func (gs *GameState) MyShips() []Ship {
	if me := gs.Me(); me != nil {
		return me.Ships
	}
	return nil
}

// Ships returns every ship, players in snapshot order.
func (gs *GameState) Ships() []Ship {
	var out []Ship
	for _, p := range gs.Players {
		out = append(out, p.Ships...)
	}
	return out
}

func (gs *GameState) Ship(id int) (Ship, bool) {
	for _, p := range gs.Players {
		for _, s := range p.Ships {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Ship{}, false
}

func (gs *GameState) Planet(id int) (Planet, bool) {
	for _, p := range gs.Planets {
		if p.ID == id {
			return p, true
		}
	}
	return Planet{}, false
}

// Entities enumerates ships (player by player) followed by planets. This order is
// the tie-break for every distance ranking, so it must never depend on map iteration.
func (gs *GameState) Entities() []Entity {
	out := make([]Entity, 0, len(gs.Planets)+8*len(gs.Players))
	for _, p := range gs.Players {
		for _, s := range p.Ships {
			out = append(out, s)
		}
	}
	for _, p := range gs.Planets {
		out = append(out, p)
	}
	return out
}
