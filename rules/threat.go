package rules

import "github.com/nstehr/armada/model"

// Strength is one opponent's score for the threat ranking.
type Strength struct {
	Player int
	Ships  int
	Size   float64
}

func (s Strength) Score() float64 { return float64(s.Ships) + s.Size }

// Strengths scores every player except me, in snapshot order.
// Score = live ships + summed radius of owned planets.
func Strengths(gs *model.GameState, me int) []Strength {
	var out []Strength
	for _, p := range gs.Players {
		if p.ID == me {
			continue
		}
		s := Strength{Player: p.ID}
		for _, ship := range p.Ships {
			if ship.Health > 0 {
				s.Ships++
			}
		}
		for _, planet := range gs.Planets {
			if planet.Owner == p.ID {
				s.Size += planet.Radius
			}
		}
		out = append(out, s)
	}
	return out
}

// Leader returns the strongest opponent. Ties go to the player listed first.
func Leader(gs *model.GameState, me int) (int, error) {
	leader, best := 0, -1.0
	for _, s := range Strengths(gs, me) {
		if s.Ships == 0 && s.Size == 0 {
			continue
		}
		if score := s.Score(); score > best {
			leader, best = s.Player, score
		}
	}
	if best < 0 {
		return 0, ErrNoOpponents
	}
	return leader, nil
}
