package rules

import (
	"log/slog"

	"github.com/nstehr/armada/model"
)

type ThreatState int

const (
	ThreatWatched ThreatState = iota
	ThreatIntercepted
)

func (s ThreatState) String() string {
	if s == ThreatIntercepted {
		return "intercepted"
	}
	return "watched"
}

// Threat is an enemy ship seen near one of my docked ships.
type Threat struct {
	ShipID    int
	Owner     int
	FirstSeen int // turn
	LastNear  int // last turn it was within watch radius of a docked ship
	State     ThreatState
}

// DefenseCoordinator keeps the watch-list of enemy ships menacing my docked
// ships. It lives as long as the match; the list is pruned every turn so it
// never names a ship missing from the current snapshot.
type DefenseCoordinator struct {
	threats []*Threat // insertion order
}

func NewDefenseCoordinator() *DefenseCoordinator {
	return &DefenseCoordinator{}
}

// Update prunes dead and stale threats, then records undocked enemy ships within
// WatchRadius of any of my docked ships.
func (d *DefenseCoordinator) Update(gs *model.GameState, tuning Tuning) {
	class := Classifier{Me: gs.PlayerID}

	alive := make(map[int]model.Ship)
	var enemies []model.Ship
	for _, p := range gs.Players {
		if p.ID == gs.PlayerID {
			continue
		}
		for _, s := range p.Ships {
			alive[s.ID] = s
			enemies = append(enemies, s)
		}
	}

	kept := d.threats[:0]
	for _, th := range d.threats {
		if _, ok := alive[th.ShipID]; !ok {
			slog.Debug("threat gone", "enemy", th.ShipID, "state", th.State)
			continue
		}
		kept = append(kept, th)
	}
	d.threats = kept

	index := make(map[int]*Threat, len(d.threats))
	for _, th := range d.threats {
		index[th.ShipID] = th
	}

	for _, mine := range gs.MyShips() {
		if !class.IsDocked(mine) {
			continue
		}
		for _, e := range enemies {
			if class.IsDocked(e) || model.Distance(mine.Position(), e.Position()) > tuning.WatchRadius {
				continue
			}
			if th, ok := index[e.ID]; ok {
				th.LastNear = gs.Turn
				continue
			}
			th := &Threat{ShipID: e.ID, Owner: e.Owner, FirstSeen: gs.Turn, LastNear: gs.Turn}
			d.threats = append(d.threats, th)
			index[e.ID] = th
			slog.Info("threat spotted", "enemy", e.ID, "owner", e.Owner, "near", mine.ID, "turn", gs.Turn)
		}
	}

	kept = d.threats[:0]
	for _, th := range d.threats {
		if gs.Turn-th.LastNear >= tuning.WatchExpiryTurns {
			slog.Debug("threat expired", "enemy", th.ShipID, "lastNear", th.LastNear)
			continue
		}
		kept = append(kept, th)
	}
	d.threats = kept
}

// Assign sends up to InterceptorsPerThreat of my nearest free ships within
// ResponseRadius at each watched threat. Assigned ships are claimed in the
// turn's tracker before the regular rule chain runs.
func (d *DefenseCoordinator) Assign(t *Turn) []model.Command {
	var cmds []model.Command
	for _, th := range d.threats {
		th.State = ThreatWatched
		enemy, ok := t.State.Ship(th.ShipID)
		if !ok {
			continue
		}
		origin := enemy.Position()
		candidates := collect(Rank(origin, t.State), 0, func(s model.Ship) bool {
			return t.Class.IsMine(s) &&
				!t.Class.IsDocked(s) &&
				!t.Tracker.Claimed(s.ID) &&
				model.Distance(origin, s.Position()) <= t.Tuning.ResponseRadius
		})

		sent := 0
		for _, s := range candidates {
			if sent >= t.Tuning.InterceptorsPerThreat {
				break
			}
			cmd, err := t.moveTo(s, enemy)
			if err != nil {
				slog.Debug("interceptor has no route", "ship", s.ID, "enemy", enemy.ID, "error", err)
				continue
			}
			if !t.Tracker.TryClaim(s.ID) {
				continue
			}
			cmds = append(cmds, cmd)
			sent++
			slog.Debug("intercepting threat", "ship", s.ID, "enemy", enemy.ID)
		}
		if sent > 0 {
			th.State = ThreatIntercepted
		}
	}
	return cmds
}

// Watching lists the watched enemy ship ids in the order they were spotted.
func (d *DefenseCoordinator) Watching() []int {
	ids := make([]int, len(d.threats))
	for i, th := range d.threats {
		ids[i] = th.ShipID
	}
	return ids
}

// Threats returns a copy of the watch-list.
func (d *DefenseCoordinator) Threats() []Threat {
	out := make([]Threat, len(d.threats))
	for i, th := range d.threats {
		out[i] = *th
	}
	return out
}
