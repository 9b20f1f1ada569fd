package agent

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/nstehr/armada/model"
	"github.com/nstehr/armada/rules"
)

// EventKind identifies a notable change between two consecutive turns.
type EventKind string

const (
	EventPlanetCaptured  EventKind = "planet_captured"
	EventPlanetLost      EventKind = "planet_lost"
	EventLeaderChanged   EventKind = "leader_changed"
	EventFleetDevastated EventKind = "fleet_devastated"
	EventOpponentOut     EventKind = "opponent_out"
)

// Event is detected by diffing consecutive snapshots and logged for the match
// record.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string // human-readable description
}

// stateSnapshot captures the diffable fields from a turn.
type stateSnapshot struct {
	turn      int
	me        int
	owners    map[int]int // planet id → owner
	myShips   int
	leader    int
	hasLeader bool
	alive     map[int]bool // opponents holding a ship or a planet
}

// devastationRatio is the fraction of the fleet lost in one turn that counts
// as devastation; fleets smaller than devastationMinFleet are ignored.
const (
	devastationRatio    = 0.5
	devastationMinFleet = 4
)

func takeSnapshot(gs *model.GameState, res rules.TurnResult) stateSnapshot {
	snap := stateSnapshot{
		turn:      gs.Turn,
		me:        gs.PlayerID,
		owners:    make(map[int]int, len(gs.Planets)),
		myShips:   len(gs.MyShips()),
		leader:    res.Leader,
		hasLeader: res.HasLeader,
		alive:     make(map[int]bool),
	}
	for _, p := range gs.Planets {
		snap.owners[p.ID] = p.Owner
		if p.Owner != model.Unowned && p.Owner != gs.PlayerID {
			snap.alive[p.Owner] = true
		}
	}
	for _, p := range gs.Players {
		if p.ID != gs.PlayerID && len(p.Ships) > 0 {
			snap.alive[p.ID] = true
		}
	}
	return snap
}

// detectEvents compares the previous turn with the current one. Events come out
// in a fixed order: planets by id, leader, fleet, opponents.
func detectEvents(prev *stateSnapshot, cur stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	for _, id := range sortedKeys(cur.owners) {
		before, ok := prev.owners[id]
		after := cur.owners[id]
		if !ok || before == after {
			continue
		}
		switch {
		case after == cur.me:
			events = append(events, Event{Kind: EventPlanetCaptured, Turn: cur.turn,
				Detail: fmt.Sprintf("planet %d captured", id)})
		case before == cur.me:
			events = append(events, Event{Kind: EventPlanetLost, Turn: cur.turn,
				Detail: fmt.Sprintf("planet %d lost to %s", id, ownerName(after))})
		}
	}
	for _, id := range sortedKeys(prev.owners) {
		if _, ok := cur.owners[id]; !ok && prev.owners[id] == cur.me {
			events = append(events, Event{Kind: EventPlanetLost, Turn: cur.turn,
				Detail: fmt.Sprintf("planet %d destroyed", id)})
		}
	}

	if prev.hasLeader && cur.hasLeader && prev.leader != cur.leader {
		events = append(events, Event{Kind: EventLeaderChanged, Turn: cur.turn,
			Detail: fmt.Sprintf("leader %d → %d", prev.leader, cur.leader)})
	}

	if prev.myShips >= devastationMinFleet &&
		float64(prev.myShips-cur.myShips) >= devastationRatio*float64(prev.myShips) {
		events = append(events, Event{Kind: EventFleetDevastated, Turn: cur.turn,
			Detail: fmt.Sprintf("fleet %d → %d ships", prev.myShips, cur.myShips)})
	}

	for _, id := range sortedKeys(prev.alive) {
		if !cur.alive[id] {
			events = append(events, Event{Kind: EventOpponentOut, Turn: cur.turn,
				Detail: fmt.Sprintf("player %d has no ships or planets", id)})
		}
	}
	return events
}

func ownerName(owner int) string {
	if owner == model.Unowned {
		return "nobody"
	}
	return fmt.Sprintf("player %d", owner)
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
