package rules

import "fmt"

// CompileTuning generates the per-ship rule chain from a tuning.
// Conditions are built via fmt.Sprintf with interpolated values, so the
// compiler never generates invalid expr; operator gates from Tuning.Gates are
// ANDed on top and may fail to compile, which NewEngine and Swap report.
func CompileTuning(t Tuning) []*Rule {
	t.Validate()
	rules := []*Rule{
		{
			Name:         "raid-dockers",
			Priority:     1000,
			ConditionSrc: fmt.Sprintf(`Turn >= %d`, t.RaidMinTurn),
			Policy:       PolicyRaidDockers,
		},
		{
			Name:         "rally",
			Priority:     900,
			ConditionSrc: fmt.Sprintf(`HasRally && Turn <= %d && MyShips <= %d`, t.RallyMaxTurn, t.RallyMaxShips),
			Policy:       PolicyRally,
		},
		{
			Name:         "reinforce",
			Priority:     800,
			ConditionSrc: `MyPlanets > 0`,
			Policy:       PolicyReinforce,
		},
		{
			Name:         "expand",
			Priority:     700,
			ConditionSrc: `true`,
			Policy:       PolicyExpand,
		},
		{
			Name:         "siege",
			Priority:     600,
			ConditionSrc: fmt.Sprintf(`ShipID %% %d == 0`, t.SiegeModulo),
			Policy:       PolicySiege,
		},
		{
			Name:         "attack",
			Priority:     500,
			ConditionSrc: `true`,
			Policy:       PolicyAttack,
		},
	}

	for _, r := range rules {
		if gate, ok := t.Gates[r.Name]; ok && gate != "" {
			r.ConditionSrc = fmt.Sprintf("(%s) && (%s)", r.ConditionSrc, gate)
		}
	}
	return rules
}
