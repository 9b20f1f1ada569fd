package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/armada/model"
)

// PolicyFunc picks a target for one ship and turns it into a command. Returning
// an error that satisfies fallsThrough hands the ship to the next rule.
type PolicyFunc func(t *Turn, s model.Ship) (model.Command, error)

// Rule is the atomic unit of fleet behavior: a gate condition and a policy.
// For each ship the engine tries rules by priority and stops at the first
// policy that yields a command, so a ship never receives two orders.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
	Policy       PolicyFunc
}
