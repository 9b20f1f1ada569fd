package rules

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/armada/model"
)

// PolicyRaidDockers attacks an enemy ship caught in a docking state nearby.
func PolicyRaidDockers(t *Turn, s model.Ship) (model.Command, error) {
	target, ok := t.NearestVulnerableEnemy(s, t.Tuning.RaidRadius)
	if !ok {
		return model.Command{}, ErrEmptySelection
	}
	slog.Debug("raiding docking ship", "ship", s.ID, "target", target.ID)
	return t.moveTo(s, target)
}

// PolicyRally sends the ship to the shared early-game rally planet.
func PolicyRally(t *Turn, s model.Ship) (model.Command, error) {
	if !t.HasRally {
		return model.Command{}, ErrEmptySelection
	}
	p, ok := t.State.Planet(t.Rally)
	if !ok || t.Class.IsEnemy(p) || t.Class.IsFull(p) {
		return model.Command{}, ErrEmptySelection
	}
	slog.Debug("heading to rally planet", "ship", s.ID, "planet", p.ID)
	return t.claimPlanet(s, p)
}

// PolicyReinforce fills a worthwhile planet I already own.
func PolicyReinforce(t *Turn, s model.Ship) (model.Command, error) {
	p, ok := t.NearestReinforcePlanet(s)
	if !ok {
		return model.Command{}, ErrEmptySelection
	}
	slog.Debug("reinforcing planet", "ship", s.ID, "planet", p.ID)
	return t.claimPlanet(s, p)
}

// PolicyExpand claims the nearest unowned planet that still has room this turn.
// A planet filled by an earlier ship's reservation is skipped for the next one.
func PolicyExpand(t *Turn, s model.Ship) (model.Command, error) {
	for _, p := range t.UnownedPlanetCandidates(s) {
		cmd, err := t.claimPlanet(s, p)
		if errors.Is(err, ErrCapacityExceeded) {
			continue
		}
		if err == nil {
			slog.Debug("expanding to planet", "ship", s.ID, "planet", p.ID)
		}
		return cmd, err
	}
	return model.Command{}, ErrEmptySelection
}

// PolicySiege flies at the nearest enemy planet to contest its dockers.
func PolicySiege(t *Turn, s model.Ship) (model.Command, error) {
	p, ok := t.NearestEnemyPlanet(s)
	if !ok {
		return model.Command{}, ErrEmptySelection
	}
	slog.Debug("sieging enemy planet", "ship", s.ID, "planet", p.ID, "owner", p.Owner)
	return t.moveTo(s, p)
}

// PolicyAttack engages the nearest enemy ship, or the leader's when close enough.
func PolicyAttack(t *Turn, s model.Ship) (model.Command, error) {
	target, ok := t.AttackTarget(s)
	if !ok {
		return model.Command{}, ErrEmptySelection
	}
	slog.Debug("attacking ship", "ship", s.ID, "target", target.ID, "owner", target.Owner)
	return t.moveTo(s, target)
}

// claimPlanet reserves a slot on p and docks or approaches. The reservation is
// rolled back when no command comes out of it.
func (t *Turn) claimPlanet(s model.Ship, p model.Planet) (model.Command, error) {
	if err := t.Tracker.Reserve(p.ID); err != nil {
		return model.Command{}, err
	}
	cmd, err := t.dockOrMove(s, p)
	if err != nil {
		t.Tracker.Unreserve(p.ID)
		return model.Command{}, err
	}
	return cmd, nil
}

// dockOrMove docks when in range of a planet with room and no enemy close by,
// otherwise asks the navigator for an approach.
func (t *Turn) dockOrMove(s model.Ship, p model.Planet) (model.Command, error) {
	if model.CanDock(s, p) && !t.Class.IsFull(p) {
		if !t.Tuning.SafeDocking || !t.enemyWithin(s.Position(), t.Tuning.MinSafeDistance) {
			return model.Dock(s.ID, p.ID), nil
		}
		slog.Debug("holding dock, enemy too close", "ship", s.ID, "planet", p.ID)
	}
	return t.moveTo(s, p)
}

func (t *Turn) moveTo(s model.Ship, target model.Entity) (model.Command, error) {
	dest := model.ClosestPointTo(s.Position(), target, model.MinDistance)
	cmd, ok := t.Nav.Navigate(s, dest, t.State, t.navOptions())
	if !ok {
		return model.Command{}, fmt.Errorf("ship %d to entity %d: %w", s.ID, target.EntityID(), ErrNoRoute)
	}
	return cmd, nil
}
