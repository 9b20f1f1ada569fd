package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nstehr/armada/model"
)

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatalf("NewEngine(DefaultTuning()) failed: %v", err)
	}
	want := []string{"raid-dockers", "rally", "reinforce", "expand", "siege", "attack"}
	if len(engine.rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(engine.rules))
	}
	for i, name := range want {
		if engine.rules[i].Name != name {
			t.Errorf("rule %d = %s, want %s", i, engine.rules[i].Name, name)
		}
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(engine.rules); i++ {
		if engine.rules[i].Priority > engine.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				engine.rules[i].Name, engine.rules[i].Priority,
				engine.rules[i-1].Name, engine.rules[i-1].Priority)
		}
	}
}

func TestNewEngineRejectsBadGate(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Gates = map[string]string{"siege": "Turn >"}
	if _, err := NewEngine(tuning, stubNav{}); err == nil {
		t.Error("expected compile error for malformed gate")
	}
}

func TestDecideTurnRejectsInconsistentState(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 1, []model.Player{mkPlayer(0, mkShip(1, 0, 0, 0), mkShip(1, 0, 5, 5))})

	res, err := engine.DecideTurn(context.Background(), gs)
	var sce *model.StateConsistencyError
	if !errors.As(err, &sce) {
		t.Fatalf("err = %v, want StateConsistencyError", err)
	}
	if len(res.Commands) != 0 {
		t.Errorf("got %d commands for a rejected snapshot", len(res.Commands))
	}
}

func TestDecideTurnDocksAtRallyPlanet(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 1,
		[]model.Player{mkPlayer(0, mkShip(1, 0, 0, 0), mkShip(2, 0, 0, 1), mkShip(3, 0, 0, -1))},
		mkPlanet(1, model.Unowned, 5, 0, 1, 2),
		mkPlanet(2, model.Unowned, 60, 0, 0.8, 2),
	)

	res, err := engine.DecideTurn(context.Background(), gs)
	if err != nil {
		t.Fatalf("DecideTurn: %v", err)
	}
	if res.Status != TurnComplete {
		t.Errorf("status = %s, want complete", res.Status)
	}
	if len(res.Commands) != 3 {
		t.Fatalf("got %d commands, want 3: %v", len(res.Commands), res.Commands)
	}

	docks := 0
	for _, c := range res.Commands {
		if c.Kind == model.CommandDock {
			if c.PlanetID != 1 {
				t.Errorf("ship %d docks at %d, want 1", c.ShipID, c.PlanetID)
			}
			docks++
		}
	}
	if docks != 2 {
		t.Errorf("got %d dock commands at a 2-spot planet, want 2", docks)
	}
	if res.ByRule["rally"] != 2 || res.ByRule["expand"] != 1 {
		t.Errorf("ByRule = %v, want 2 rally and 1 expand", res.ByRule)
	}
}

func TestDecideTurnOneCommandPerShip(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 40,
		[]model.Player{
			mkPlayer(0,
				mkDocked(1, 0, 0, 0, 1),
				mkShip(2, 0, 10, 10), mkShip(3, 0, 12, 10), mkShip(4, 0, 14, 10),
				mkShip(8, 0, 20, 20), mkShip(12, 0, 22, 20),
			),
			mkPlayer(1, mkShip(10, 1, 20, 0), mkDocked(11, 1, 80, 3, 3)),
		},
		mkPlanet(1, 0, 0, -3, 2, 3, 1),
		mkPlanet(2, model.Unowned, 40, 40, 4, 2),
		mkPlanet(3, 1, 80, 0, 3, 2, 11),
	)

	res, err := engine.DecideTurn(context.Background(), gs)
	if err != nil {
		t.Fatalf("DecideTurn: %v", err)
	}

	seen := make(map[int]bool)
	for _, c := range res.Commands {
		if seen[c.ShipID] {
			t.Errorf("ship %d got two commands", c.ShipID)
		}
		seen[c.ShipID] = true
	}
	if _, ok := commandFor(res.Commands, 1); ok {
		t.Error("docked ship 1 received a command")
	}
	if res.Defending == 0 {
		t.Error("expected interceptors for enemy 10 near docked ship 1")
	}
	if got := engine.Watching(); len(got) != 1 || got[0] != 10 {
		t.Errorf("Watching = %v, want [10]", got)
	}
	if len(res.Commands)+res.Idle != 5 {
		t.Errorf("commands %d + idle %d, want 5 undocked ships accounted for", len(res.Commands), res.Idle)
	}
}

func TestDecideTurnPastDeadline(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 5,
		[]model.Player{
			mkPlayer(0, mkDocked(1, 0, 0, 0, 1), mkShip(2, 0, 5, 5), mkShip(3, 0, 6, 6), mkShip(4, 0, 200, 0)),
			mkPlayer(1, mkShip(10, 1, 20, 0)),
		},
		mkPlanet(1, 0, 0, -3, 2, 3, 1),
	)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	res, err := engine.DecideTurn(ctx, gs)
	if err != nil {
		t.Fatalf("DecideTurn should not fail on budget: %v", err)
	}
	if res.Status != TurnBudgetExceeded {
		t.Errorf("status = %s, want budget_exceeded", res.Status)
	}
	// Ship 1 is docked and ships 2 and 3 intercept; only ship 4 is left undecided.
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
	if len(res.Commands) != res.Defending || res.Defending != 2 {
		t.Errorf("commands = %d, defending = %d; want only the 2 interceptors", len(res.Commands), res.Defending)
	}
}

func TestDecideTurnIdleShip(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{fail: true})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 1,
		[]model.Player{mkPlayer(0, mkShip(1, 0, 0, 0)), mkPlayer(1, mkShip(10, 1, 50, 50))},
		mkPlanet(1, model.Unowned, 30, 0, 3, 2),
	)

	res, err := engine.DecideTurn(context.Background(), gs)
	if err != nil {
		t.Fatalf("DecideTurn: %v", err)
	}
	if res.Idle != 1 || len(res.Commands) != 0 {
		t.Errorf("idle = %d, commands = %d; want 1 idle ship and no commands", res.Idle, len(res.Commands))
	}
	if !res.HasLeader || res.Leader != 1 {
		t.Errorf("leader = %d (has=%v), want 1", res.Leader, res.HasLeader)
	}
}

func TestDecideTurnNoOpponents(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	gs := mkState(0, 1, []model.Player{mkPlayer(0, mkShip(1, 0, 0, 0))}, mkPlanet(1, model.Unowned, 30, 0, 3, 2))

	res, err := engine.DecideTurn(context.Background(), gs)
	if err != nil {
		t.Fatalf("DecideTurn: %v", err)
	}
	if res.HasLeader {
		t.Error("no opponents should mean no leader")
	}
	if len(res.Commands) != 1 {
		t.Errorf("got %d commands, want the ship to head for planet 1", len(res.Commands))
	}
}

func TestRallyForgottenWhenPlanetGone(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}
	ships := []model.Player{mkPlayer(0, mkShip(1, 0, 0, 0))}
	if _, err := engine.DecideTurn(context.Background(), mkState(0, 1, ships, mkPlanet(1, model.Unowned, 30, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	if !engine.hasRally || engine.rally != 1 {
		t.Fatalf("rally = %d (has=%v), want planet 1", engine.rally, engine.hasRally)
	}
	if _, err := engine.DecideTurn(context.Background(), mkState(0, 2, ships)); err != nil {
		t.Fatal(err)
	}
	if engine.hasRally {
		t.Error("rally should be dropped once its planet is gone")
	}
}

func TestSwap(t *testing.T) {
	engine, err := NewEngine(DefaultTuning(), stubNav{})
	if err != nil {
		t.Fatal(err)
	}

	bad := DefaultTuning()
	bad.Speed = 3
	bad.Gates = map[string]string{"attack": "Turn >"}
	if err := engine.Swap(bad); err == nil {
		t.Fatal("Swap with malformed gate should fail")
	}
	if engine.Tuning().Speed != 7 {
		t.Errorf("failed Swap changed tuning: speed = %d", engine.Tuning().Speed)
	}

	good := DefaultTuning()
	good.Speed = 3
	good.Gates = map[string]string{"expand": "Turn > 100"}
	if err := engine.Swap(good); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if engine.Tuning().Speed != 3 {
		t.Errorf("speed = %d after Swap, want 3", engine.Tuning().Speed)
	}

	gs := mkState(0, 1, []model.Player{mkPlayer(0, mkShip(1, 0, 0, 0))}, mkPlanet(1, model.Unowned, 30, 0, 3, 2))
	engine.hasRally, engine.turns = false, 1 // skip the rally so expand is the only candidate
	res, err := engine.DecideTurn(context.Background(), gs)
	if err != nil {
		t.Fatal(err)
	}
	if res.ByRule["expand"] != 0 || res.Idle != 1 {
		t.Errorf("ByRule = %v, idle = %d; gated expand should not fire", res.ByRule, res.Idle)
	}
}

func TestTurnStatusString(t *testing.T) {
	tests := map[TurnStatus]string{
		TurnIdle:           "idle",
		TurnRunning:        "running",
		TurnComplete:       "complete",
		TurnBudgetExceeded: "budget_exceeded",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
