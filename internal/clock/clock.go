// Package clock implements the cooperative cancellation primitive shared by
// the reasoner, search players, and the player framework: a scoped Timer
// that long-running loops poll, replacing the source engine's
// signal-based alarm with an explicit handle passed down the call stack.
package clock

import (
	"time"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
)

// Timer is a deadline that callers poll with Check. A nil *Timer never
// expires, which lets callers that don't care about cancellation (tests,
// one-shot CLI tools) pass nil instead of threading an "unlimited" sentinel
// through every call.
type Timer struct {
	deadline time.Time
}

// New returns a Timer that expires after budget has elapsed, less the given
// safety margin: a player must return strictly before its play/start clock
// elapses, never exactly at it.
func New(budget, margin time.Duration) *Timer {
	d := budget - margin
	if d < 0 {
		d = 0
	}
	return &Timer{deadline: time.Now().Add(d)}
}

// Check returns a ggerrors.Error of kind KindTimeUp if the deadline has
// passed, nil otherwise. Every long loop in the reasoner, game-state search,
// and playout code must call Check at a bounded interval (each reasoner
// solution or playout step is small enough).
func (t *Timer) Check() error {
	if t == nil {
		return nil
	}
	if time.Now().After(t.deadline) {
		return ggerrors.New(ggerrors.KindTimeUp, "deadline exceeded")
	}
	return nil
}

// Remaining returns how much time is left before the deadline. It never
// returns a negative duration.
func (t *Timer) Remaining() time.Duration {
	if t == nil {
		return time.Duration(1<<63 - 1) // effectively unlimited
	}
	d := time.Until(t.deadline)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether Check would currently return an error.
func (t *Timer) Expired() bool {
	return t.Check() != nil
}
