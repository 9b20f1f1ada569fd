package rules

import (
	"fmt"
	"sync"

	"github.com/nstehr/armada/model"
)

// Tracker records this turn's commitments: which ships already have a command
// and how many ships are headed to each planet. It is rebuilt every turn and is
// the only mutable state shared between decisions, hence the mutex.
type Tracker struct {
	mu       sync.Mutex
	claimed  map[int]bool
	reserved map[int]int
	capacity map[int]int // free docking spots at turn start
}

func NewTracker(gs *model.GameState) *Tracker {
	capacity := make(map[int]int, len(gs.Planets))
	for _, p := range gs.Planets {
		capacity[p.ID] = max(p.DockingSpots-p.Occupancy(), 0)
	}
	return &Tracker{
		claimed:  make(map[int]bool),
		reserved: make(map[int]int),
		capacity: capacity,
	}
}

// TryClaim gives the ship its one command for the turn. It returns false if the
// ship was already claimed.
func (t *Tracker) TryClaim(shipID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.claimed[shipID] {
		return false
	}
	t.claimed[shipID] = true
	return true
}

func (t *Tracker) Claimed(shipID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.claimed[shipID]
}

// Reserve commits one more ship to the planet.
func (t *Tracker) Reserve(planetID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reserved[planetID] >= t.capacity[planetID] {
		return fmt.Errorf("planet %d: %w", planetID, ErrCapacityExceeded)
	}
	t.reserved[planetID]++
	return nil
}

// Unreserve rolls back a reservation whose command never materialized.
func (t *Tracker) Unreserve(planetID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reserved[planetID] > 0 {
		t.reserved[planetID]--
	}
}

// Remaining is the number of ships the planet can still take this turn.
func (t *Tracker) Remaining(planetID int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.capacity[planetID] - t.reserved[planetID]
}

func (t *Tracker) Reserved(planetID int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reserved[planetID]
}
