package rules

import "github.com/nstehr/armada/model"

// Classifier answers ownership questions from the acting player's point of view.
type Classifier struct {
	Me int
}

func (c Classifier) IsMine(e model.Entity) bool {
	return e.OwnerID() == c.Me
}

// IsEnemy is true for anything owned by another player. Unowned planets are not enemies.
func (c Classifier) IsEnemy(e model.Entity) bool {
	owner := e.OwnerID()
	return owner != c.Me && owner != model.Unowned
}

func (c Classifier) IsUnowned(e model.Entity) bool {
	return e.OwnerID() == model.Unowned
}

func (c Classifier) IsFull(p model.Planet) bool {
	return p.Occupancy() >= p.DockingSpots
}

// IsDocked is true for every state other than Undocked, including the
// transitions in and out of a planet.
func (c Classifier) IsDocked(s model.Ship) bool {
	return s.Docking != model.Undocked
}
