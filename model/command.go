package model

import (
	"encoding/json"
	"fmt"
)

type CommandKind string

const (
	CommandDock   CommandKind = "dock"
	CommandUndock CommandKind = "undock"
	CommandThrust CommandKind = "thrust"
)

// Command is one order for one ship. The adapter on the other side of the
// socket translates it into the match engine's own syntax.
type Command struct {
	Kind      CommandKind `json:"kind"`
	ShipID    int         `json:"shipId"`
	PlanetID  int         `json:"planetId"`
	Magnitude int         `json:"magnitude"`
	Angle     int         `json:"angle"`
}

func Dock(shipID, planetID int) Command {
	return Command{Kind: CommandDock, ShipID: shipID, PlanetID: planetID}
}

func Undock(shipID int) Command {
	return Command{Kind: CommandUndock, ShipID: shipID}
}

func Thrust(shipID, magnitude, angle int) Command {
	return Command{Kind: CommandThrust, ShipID: shipID, Magnitude: magnitude, Angle: angle}
}

// MarshalJSON writes only the fields the kind uses, zero values included:
// planet 0 and a heading of 0 degrees are both valid.
func (c Command) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind      CommandKind `json:"kind"`
		ShipID    int         `json:"shipId"`
		PlanetID  *int        `json:"planetId,omitempty"`
		Magnitude *int        `json:"magnitude,omitempty"`
		Angle     *int        `json:"angle,omitempty"`
	}
	w := wire{Kind: c.Kind, ShipID: c.ShipID}
	switch c.Kind {
	case CommandDock:
		w.PlanetID = &c.PlanetID
	case CommandThrust:
		w.Magnitude, w.Angle = &c.Magnitude, &c.Angle
	}
	return json.Marshal(w)
}

func (c Command) String() string {
	switch c.Kind {
	case CommandDock:
		return fmt.Sprintf("d %d %d", c.ShipID, c.PlanetID)
	case CommandUndock:
		return fmt.Sprintf("u %d", c.ShipID)
	case CommandThrust:
		return fmt.Sprintf("t %d %d %d", c.ShipID, c.Magnitude, c.Angle)
	}
	return fmt.Sprintf("? %d", c.ShipID)
}
