package model

// Entity is a closed variant: only Ship and Planet implement it. Callers switch
// on the concrete type instead of inspecting a kind field.
type Entity interface {
	EntityID() int
	Position() Point
	OwnerID() int
	CollisionRadius() float64
	entity()
}

// ShipRadius is the collision radius of every ship.
const ShipRadius = 0.5

func (s Ship) EntityID() int              { return s.ID }
func (s Ship) Position() Point            { return Point{X: s.X, Y: s.Y} }
func (s Ship) OwnerID() int               { return s.Owner }
func (s Ship) CollisionRadius() float64   { return ShipRadius }
func (Ship) entity()                      {}
func (p Planet) EntityID() int            { return p.ID }
func (p Planet) Position() Point          { return Point{X: p.X, Y: p.Y} }
func (p Planet) OwnerID() int             { return p.Owner }
func (p Planet) CollisionRadius() float64 { return p.Radius }
func (Planet) entity()                    {}
