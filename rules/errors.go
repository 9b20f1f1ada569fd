package rules

import "errors"

var (
	// ErrNoOpponents means no rival holds a ship or a planet. Leader-relative
	// policies are switched off for the turn.
	ErrNoOpponents = errors.New("no opponents left")

	// ErrEmptySelection means a policy found no target; the chain falls through.
	ErrEmptySelection = errors.New("no candidate target")

	// ErrCapacityExceeded is returned by Tracker.Reserve for a destination whose
	// remaining docking spots are already spoken for this turn.
	ErrCapacityExceeded = errors.New("destination at capacity")

	// ErrNoRoute means the navigator produced no move toward the target.
	ErrNoRoute = errors.New("navigator returned no move")

	// ErrDeadlineExceeded marks a turn that ran out of wall-clock allowance.
	// It is a signal, not a failure: the partial command list is still sent.
	ErrDeadlineExceeded = errors.New("turn budget exceeded")
)

// fallsThrough reports whether a policy error just means "try the next policy".
func fallsThrough(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrNoRoute)
}
