package rules

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every threshold the policies use. The bots this engine grew out
// of disagreed on most of these values, so none of them is hard-coded.
type Tuning struct {
	TurnAllowance time.Duration `yaml:"turn_allowance" json:"turn_allowance"`

	// Navigation intent handed to the Navigator.
	Speed          int `yaml:"speed" json:"speed"`
	MaxCorrections int `yaml:"max_corrections" json:"max_corrections"`
	AngularStep    int `yaml:"angular_step" json:"angular_step"`

	// Docking safety.
	SafeDocking     bool    `yaml:"safe_docking" json:"safe_docking"`
	MinSafeDistance float64 `yaml:"min_safe_distance" json:"min_safe_distance"`

	// Raiding enemy ships caught docking.
	RaidRadius  float64 `yaml:"raid_radius" json:"raid_radius"`
	RaidMinTurn int     `yaml:"raid_min_turn" json:"raid_min_turn"`

	// Early-game rally on the largest nearby planet.
	RallyCandidates int `yaml:"rally_candidates" json:"rally_candidates"`
	RallyMaxTurn    int `yaml:"rally_max_turn" json:"rally_max_turn"`
	RallyMaxShips   int `yaml:"rally_max_ships" json:"rally_max_ships"`

	// Only ships whose id is a multiple of SiegeModulo lay siege to enemy planets.
	SiegeModulo int `yaml:"siege_modulo" json:"siege_modulo"`

	// Attack the leader's nearest ship when it is within this ratio of the
	// nearest enemy ship's distance.
	LeaderDistanceRatio float64 `yaml:"leader_distance_ratio" json:"leader_distance_ratio"`

	// Defense of docked ships.
	WatchRadius           float64 `yaml:"watch_radius" json:"watch_radius"`
	ResponseRadius        float64 `yaml:"response_radius" json:"response_radius"`
	InterceptorsPerThreat int     `yaml:"interceptors_per_threat" json:"interceptors_per_threat"`
	WatchExpiryTurns      int     `yaml:"watch_expiry_turns" json:"watch_expiry_turns"`

	// Gates adds an expr condition to a rule by name, e.g. siege: "Turn > 50".
	Gates map[string]string `yaml:"gates" json:"gates,omitempty"`
}

// DefaultTuning returns the baseline parameters.
func DefaultTuning() Tuning {
	return Tuning{
		TurnAllowance:         1600 * time.Millisecond,
		Speed:                 7,
		MaxCorrections:        18,
		AngularStep:           5,
		SafeDocking:           true,
		MinSafeDistance:       15,
		RaidRadius:            10,
		RaidMinTurn:           0,
		RallyCandidates:       3,
		RallyMaxTurn:          15,
		RallyMaxShips:         10,
		SiegeModulo:           4,
		LeaderDistanceRatio:   1.0,
		WatchRadius:           30,
		ResponseRadius:        60,
		InterceptorsPerThreat: 2,
		WatchExpiryTurns:      10,
	}
}

// Validate clamps all parameters to their valid ranges.
func (t *Tuning) Validate() {
	t.TurnAllowance = clampDuration(t.TurnAllowance, 100*time.Millisecond, 2*time.Second)
	t.Speed = clampInt(t.Speed, 1, 7)
	t.MaxCorrections = clampInt(t.MaxCorrections, 0, 180)
	t.AngularStep = clampInt(t.AngularStep, 1, 90)
	t.MinSafeDistance = clamp(t.MinSafeDistance, 0, 100)
	t.RaidRadius = clamp(t.RaidRadius, 0, 100)
	t.RaidMinTurn = clampInt(t.RaidMinTurn, 0, 1000)
	t.RallyCandidates = clampInt(t.RallyCandidates, 1, 10)
	t.RallyMaxTurn = clampInt(t.RallyMaxTurn, 0, 1000)
	t.RallyMaxShips = clampInt(t.RallyMaxShips, 0, 1000)
	t.SiegeModulo = clampInt(t.SiegeModulo, 1, 100)
	t.LeaderDistanceRatio = clamp(t.LeaderDistanceRatio, 0, 10)
	t.WatchRadius = clamp(t.WatchRadius, 0, 200)
	t.ResponseRadius = clamp(t.ResponseRadius, 0, 400)
	t.InterceptorsPerThreat = clampInt(t.InterceptorsPerThreat, 0, 10)
	t.WatchExpiryTurns = clampInt(t.WatchExpiryTurns, 1, 1000)
}

// LoadTuning reads a YAML file on top of DefaultTuning, so a file only needs
// the fields it changes.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	t.Validate()
	return t, nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
