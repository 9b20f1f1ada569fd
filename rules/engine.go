package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/armada/model"
)

// TurnStatus tracks a decision pass: idle → running → complete | budget exceeded.
type TurnStatus int

const (
	TurnIdle TurnStatus = iota
	TurnRunning
	TurnComplete
	TurnBudgetExceeded
)

func (s TurnStatus) String() string {
	switch s {
	case TurnRunning:
		return "running"
	case TurnComplete:
		return "complete"
	case TurnBudgetExceeded:
		return "budget_exceeded"
	}
	return "idle"
}

// TurnResult is the outcome of one DecideTurn call. Commands holds at most one
// command per ship, defense interceptions first.
type TurnResult struct {
	Turn      int
	Status    TurnStatus
	Commands  []model.Command
	Defending int            // commands issued by the defense pass
	Idle      int            // ships the rule chain could not place
	Skipped   int            // ships never reached because the budget ran out
	ByRule    map[string]int // commands per rule name
	Leader    int
	HasLeader bool
	Elapsed   time.Duration
}

// Engine runs compiled rules against each turn's snapshot. It owns the state
// that outlives a turn: the defense watch-list and the early-game rally planet.
type Engine struct {
	mu     sync.RWMutex
	rules  []*Rule
	tuning Tuning
	nav    Navigator

	memMu    sync.Mutex // serializes turns; guards everything below
	defense  *DefenseCoordinator
	turns    int
	rally    int
	hasRally bool
	lastDiag int
}

// NewEngine compiles the rule chain for the tuning and sorts it by priority.
func NewEngine(tuning Tuning, nav Navigator) (*Engine, error) {
	tuning.Validate()
	compiled, err := compileRules(CompileTuning(tuning))
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:   compiled,
		tuning:  tuning,
		nav:     nav,
		defense: NewDefenseCoordinator(),
	}, nil
}

// DecideTurn produces this turn's commands. It never fails because of the
// clock: when the allowance runs out, ships not yet reached get no command and
// whatever was decided is returned. The only error is a snapshot that fails
// validation, reported before any decision is made.
func (e *Engine) DecideTurn(ctx context.Context, gs *model.GameState) (TurnResult, error) {
	start := time.Now()
	res := TurnResult{Turn: gs.Turn, Status: TurnIdle, ByRule: make(map[string]int)}

	if err := gs.Validate(); err != nil {
		return res, fmt.Errorf("ingest snapshot: %w", err)
	}

	e.mu.RLock()
	rules, tuning, nav := e.rules, e.tuning, e.nav
	e.mu.RUnlock()

	e.memMu.Lock()
	defer e.memMu.Unlock()

	ctx, cancel := context.WithDeadline(ctx, start.Add(tuning.TurnAllowance))
	defer cancel()

	res.Status = TurnRunning
	t := newTurn(gs, tuning, nav)

	leader, err := Leader(gs, gs.PlayerID)
	switch {
	case err == nil:
		t.Leader, t.HasLeader = leader, true
		res.Leader, res.HasLeader = leader, true
	case errors.Is(err, ErrNoOpponents):
		slog.Debug("no leader this turn", "turn", gs.Turn, "error", err)
	}

	e.updateRally(t)
	e.logFleetDiagnostics(t)

	e.defense.Update(gs, tuning)
	res.Commands = append(res.Commands, e.defense.Assign(t)...)
	res.Defending = len(res.Commands)

	ships := gs.MyShips()
	for i, s := range ships {
		if ctx.Err() != nil {
			res.Status = TurnBudgetExceeded
			for _, rest := range ships[i:] {
				if !t.Class.IsDocked(rest) && !t.Tracker.Claimed(rest.ID) {
					res.Skipped++
				}
			}
			slog.Warn("bailing turn", "turn", gs.Turn, "error", ErrDeadlineExceeded,
				"skipped", res.Skipped, "decided", len(res.Commands))
			break
		}
		if t.Class.IsDocked(s) || t.Tracker.Claimed(s.ID) {
			continue
		}
		cmd, rule, ok := e.decide(rules, t, s)
		if !ok {
			res.Idle++
			slog.Warn("no command given", "turn", gs.Turn, "ship", s.ID)
			continue
		}
		res.Commands = append(res.Commands, cmd)
		res.ByRule[rule]++
	}
	if res.Status == TurnRunning {
		res.Status = TurnComplete
	}
	e.turns++

	res.Elapsed = time.Since(start)
	slog.Info("turn decided",
		"turn", gs.Turn,
		"status", res.Status,
		"commands", len(res.Commands),
		"defending", res.Defending,
		"idle", res.Idle,
		"skipped", res.Skipped,
		"rules", res.ByRule,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// decide walks the rule chain for one ship. The whole chain runs to completion
// once started; the budget is only checked between ships.
func (e *Engine) decide(rules []*Rule, t *Turn, s model.Ship) (model.Command, string, bool) {
	env := t.unitEnv(s)
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}

		cmd, err := r.Policy(t, s)
		if err != nil {
			if !fallsThrough(err) {
				slog.Warn("rule policy error", "rule", r.Name, "ship", s.ID, "error", err)
			}
			continue
		}
		if !t.Tracker.TryClaim(s.ID) {
			slog.Error("ship already claimed", "rule", r.Name, "ship", s.ID)
			if cmd.Kind == model.CommandDock {
				t.Tracker.Unreserve(cmd.PlanetID)
			}
			return model.Command{}, "", false
		}
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "ship", s.ID, "command", cmd.String())
		return cmd, r.Name, true
	}
	return model.Command{}, "", false
}

// updateRally picks the rally planet on the engine's first turn and forgets it
// once the planet leaves the map.
func (e *Engine) updateRally(t *Turn) {
	if e.turns == 0 && !e.hasRally {
		for _, s := range t.State.MyShips() {
			if t.Class.IsDocked(s) {
				continue
			}
			if p, ok := LargestPlanet(t.NearestUnownedPlanets(s, t.Tuning.RallyCandidates)); ok {
				e.rally, e.hasRally = p.ID, true
				slog.Info("rally planet chosen", "planet", p.ID, "radius", p.Radius, "ship", s.ID)
			}
			break
		}
	}
	if e.hasRally {
		if _, ok := t.State.Planet(e.rally); !ok {
			slog.Info("rally planet gone", "planet", e.rally)
			e.hasRally = false
		}
	}
	t.Rally, t.HasRally = e.rally, e.hasRally
}

// Swap atomically replaces the tuning and its rule set between turns. Compiles
// first; if compilation fails the old rules remain active.
func (e *Engine) Swap(tuning Tuning) error {
	tuning.Validate()
	compiled, err := compileRules(CompileTuning(tuning))
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.tuning = tuning
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// Watching exposes the defense watch-list that persists across turns.
func (e *Engine) Watching() []int {
	e.memMu.Lock()
	defer e.memMu.Unlock()
	return e.defense.Watching()
}

func (e *Engine) Tuning() Tuning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tuning
}

// logFleetDiagnostics helps debug "why is the fleet doing that?". Fires every
// 50 turns regardless of rule activity.
func (e *Engine) logFleetDiagnostics(t *Turn) {
	if e.turns > 0 && t.State.Turn-e.lastDiag < 50 {
		return
	}
	e.lastDiag = t.State.Turn

	docked, planets := 0, 0
	for _, s := range t.State.MyShips() {
		if t.Class.IsDocked(s) {
			docked++
		}
	}
	for _, p := range t.State.Planets {
		if t.Class.IsMine(p) {
			planets++
		}
	}
	strengths := make(map[int]float64)
	for _, s := range Strengths(t.State, t.State.PlayerID) {
		strengths[s.Player] = s.Score()
	}
	slog.Info("fleet diagnostics",
		"turn", t.State.Turn,
		"ships", len(t.State.MyShips()),
		"docked", docked,
		"planets", planets,
		"leader", t.Leader,
		"hasLeader", t.HasLeader,
		"opponents", strengths,
		"watching", len(e.defense.threats),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(UnitEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
