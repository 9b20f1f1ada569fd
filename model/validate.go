package model

import "fmt"

// StateConsistencyError reports a snapshot that contradicts itself. It is raised
// once at ingestion so selectors never have to second-guess the data.
type StateConsistencyError struct {
	Turn   int
	Reason string
}

func (e *StateConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent state at turn %d: %s", e.Turn, e.Reason)
}

// Validate checks the cross references inside the snapshot.
func (gs *GameState) Validate() error {
	fail := func(format string, args ...any) error {
		return &StateConsistencyError{Turn: gs.Turn, Reason: fmt.Sprintf(format, args...)}
	}

	players := make(map[int]bool, len(gs.Players))
	for _, p := range gs.Players {
		if players[p.ID] {
			return fail("duplicate player %d", p.ID)
		}
		players[p.ID] = true
	}
	if !players[gs.PlayerID] {
		return fail("acting player %d not in player list", gs.PlayerID)
	}

	ships := make(map[int]bool)
	for _, p := range gs.Players {
		for _, s := range p.Ships {
			if ships[s.ID] {
				return fail("duplicate ship %d", s.ID)
			}
			ships[s.ID] = true
			if s.Owner != p.ID {
				return fail("ship %d listed under player %d but owned by %d", s.ID, p.ID, s.Owner)
			}
			if s.Health < 0 {
				return fail("ship %d has negative health %d", s.ID, s.Health)
			}
		}
	}

	planets := make(map[int]bool, len(gs.Planets))
	for _, p := range gs.Planets {
		if planets[p.ID] {
			return fail("duplicate planet %d", p.ID)
		}
		planets[p.ID] = true
		if p.Owner != Unowned && !players[p.Owner] {
			return fail("planet %d owned by unknown player %d", p.ID, p.Owner)
		}
		if p.Occupancy() > p.DockingSpots {
			return fail("planet %d has %d docked ships but %d spots", p.ID, p.Occupancy(), p.DockingSpots)
		}
		for _, id := range p.DockedShips {
			if !ships[id] {
				return fail("planet %d references missing ship %d", p.ID, id)
			}
		}
	}
	return nil
}
