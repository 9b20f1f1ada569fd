// Package nav holds the straight-line navigator the sidecar uses when the
// adapter does not supply obstacle-aware routing of its own.
package nav

import (
	"math"

	"github.com/nstehr/armada/model"
	"github.com/nstehr/armada/rules"
)

// Direct thrusts straight at the destination, capped at the requested speed.
// It ignores obstacles, so correction settings in NavOptions are unused.
type Direct struct{}

var _ rules.Navigator = Direct{}

func (Direct) Navigate(ship model.Ship, target model.Point, gs *model.GameState, opts rules.NavOptions) (model.Command, bool) {
	from := ship.Position()
	dist := model.Distance(from, target)
	speed := opts.Speed
	if speed <= 0 || speed > model.MaxSpeed {
		speed = model.MaxSpeed
	}
	magnitude := int(math.Min(float64(speed), math.Floor(dist)))
	if magnitude < 1 {
		return model.Command{}, false
	}
	angle := int(math.Round(model.AngleDeg(from, target))) % 360
	return model.Thrust(ship.ID, magnitude, angle), true
}
