package rules

import "github.com/nstehr/armada/model"

// stubNav thrusts straight at the destination unless fail is set.
type stubNav struct {
	fail bool
}

func (n stubNav) Navigate(ship model.Ship, target model.Point, gs *model.GameState, opts NavOptions) (model.Command, bool) {
	if n.fail {
		return model.Command{}, false
	}
	return model.Thrust(ship.ID, opts.Speed, int(model.AngleDeg(ship.Position(), target))), true
}

func mkShip(id, owner int, x, y float64) model.Ship {
	return model.Ship{ID: id, Owner: owner, X: x, Y: y, Health: 255}
}

func mkDocked(id, owner int, x, y float64, planetID int) model.Ship {
	s := mkShip(id, owner, x, y)
	s.Docking = model.Docked
	s.PlanetID = planetID
	return s
}

func mkPlanet(id, owner int, x, y, radius float64, spots int, docked ...int) model.Planet {
	return model.Planet{
		ID: id, Owner: owner, X: x, Y: y, Radius: radius,
		DockingSpots: spots, Health: 1000, DockedShips: docked,
	}
}

func mkPlayer(id int, ships ...model.Ship) model.Player {
	return model.Player{ID: id, Ships: ships}
}

func mkState(me, turn int, players []model.Player, planets ...model.Planet) *model.GameState {
	return &model.GameState{
		Turn:     turn,
		PlayerID: me,
		Width:    240,
		Height:   160,
		Players:  players,
		Planets:  planets,
	}
}

func commandFor(cmds []model.Command, shipID int) (model.Command, bool) {
	for _, c := range cmds {
		if c.ShipID == shipID {
			return c, true
		}
	}
	return model.Command{}, false
}
