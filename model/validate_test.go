package model

import (
	"errors"
	"strings"
	"testing"
)

func validState() GameState {
	return GameState{
		Turn:     3,
		PlayerID: 0,
		Players: []Player{
			{ID: 0, Ships: []Ship{
				{ID: 1, Owner: 0, Health: 255, Docking: Docked, PlanetID: 1},
				{ID: 2, Owner: 0, Health: 255},
			}},
			{ID: 1, Ships: []Ship{{ID: 3, Owner: 1, Health: 128}}},
		},
		Planets: []Planet{
			{ID: 1, Owner: 0, Radius: 4, DockingSpots: 2, DockedShips: []int{1}},
			{ID: 2, Owner: Unowned, Radius: 6, DockingSpots: 3},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gs *GameState)
		reason string
	}{
		{"valid", func(*GameState) {}, ""},
		{"duplicate player", func(gs *GameState) { gs.Players = append(gs.Players, Player{ID: 1}) }, "duplicate player"},
		{"acting player missing", func(gs *GameState) { gs.PlayerID = 7 }, "acting player"},
		{"duplicate ship", func(gs *GameState) { gs.Players[1].Ships[0].ID = 2 }, "duplicate ship"},
		{"owner mismatch", func(gs *GameState) { gs.Players[1].Ships[0].Owner = 0 }, "owned by"},
		{"negative health", func(gs *GameState) { gs.Players[0].Ships[1].Health = -1 }, "negative health"},
		{"duplicate planet", func(gs *GameState) { gs.Planets[1].ID = 1 }, "duplicate planet"},
		{"unknown planet owner", func(gs *GameState) { gs.Planets[1].Owner = 9 }, "unknown player"},
		{"over capacity", func(gs *GameState) { gs.Planets[0].DockingSpots = 0 }, "spots"},
		{"missing docked ship", func(gs *GameState) { gs.Planets[0].DockedShips = []int{1, 42} }, "missing ship"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := validState()
			tt.mutate(&gs)
			err := gs.Validate()
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var sce *StateConsistencyError
			if !errors.As(err, &sce) {
				t.Fatalf("err = %v, want StateConsistencyError", err)
			}
			if sce.Turn != 3 || !strings.Contains(sce.Reason, tt.reason) {
				t.Errorf("err = %v, want turn 3 and reason containing %q", err, tt.reason)
			}
		})
	}
}

func TestEntitiesOrder(t *testing.T) {
	gs := validState()
	var got []string
	for _, e := range gs.Entities() {
		switch v := e.(type) {
		case Ship:
			got = append(got, "s"+string(rune('0'+v.ID)))
		case Planet:
			got = append(got, "p"+string(rune('0'+v.ID)))
		}
	}
	want := "s1 s2 s3 p1 p2"
	if strings.Join(got, " ") != want {
		t.Errorf("Entities = %v, want %s", got, want)
	}
}

func TestLookups(t *testing.T) {
	gs := validState()
	if s, ok := gs.Ship(3); !ok || s.Owner != 1 {
		t.Errorf("Ship(3) = %+v, %v", s, ok)
	}
	if _, ok := gs.Ship(99); ok {
		t.Error("Ship(99) should miss")
	}
	if p, ok := gs.Planet(2); !ok || p.IsOwned() {
		t.Errorf("Planet(2) = %+v, %v; want unowned planet", p, ok)
	}
	if len(gs.MyShips()) != 2 || len(gs.Ships()) != 3 {
		t.Errorf("MyShips = %d, Ships = %d; want 2 and 3", len(gs.MyShips()), len(gs.Ships()))
	}
	gs.PlayerID = 5
	if gs.Me() != nil || gs.MyShips() != nil {
		t.Error("unknown acting player should have no ships")
	}
}
