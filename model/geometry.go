package model

import "math"

// Match engine constants.
const (
	DockRadius  = 4.0 // reach beyond a planet's surface within which a ship may dock
	MaxSpeed    = 7   // maximum thrust magnitude per turn
	MinDistance = 3.0 // standoff kept from a target's surface when approaching it
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance is the center-to-center Euclidean distance.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleDeg returns the direction from a to b in degrees, in [0, 360).
func AngleDeg(a, b Point) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ClosestPointTo returns the point on the line from `from` to the target's center
// that sits minDistance outside the target's collision radius.
func ClosestPointTo(from Point, target Entity, minDistance float64) Point {
	c := target.Position()
	angle := math.Atan2(from.Y-c.Y, from.X-c.X)
	r := target.CollisionRadius() + minDistance
	return Point{
		X: c.X + r*math.Cos(angle),
		Y: c.Y + r*math.Sin(angle),
	}
}

// CanDock reports whether the ship is close enough to the planet to dock this turn.
func CanDock(s Ship, p Planet) bool {
	return Distance(s.Position(), p.Position()) <= p.Radius+DockRadius+ShipRadius
}
