package clock

import (
	"fmt"
	"sync"
	"time"
)

// Scope arms and disarms a single Timer at a time. Entering the scope while
// it is already armed is a programming error: nested timers are disallowed,
// since a player's start-clock computation and its play-clock computation
// never overlap, so one Scope per Player instance suffices.
type Scope struct {
	mu     sync.Mutex
	active bool
}

// Enter arms a deadline of (budget - margin) and returns the Timer along
// with a leave func that must be deferred to disarm the scope. It returns
// an error instead of panicking on reentry so a player can translate the
// mistake into a well-formed InternalReasoner-style failure instead of
// crashing the process.
func (s *Scope) Enter(budget, margin time.Duration) (*Timer, func(), error) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("clock: scope already armed; nested timers are disallowed")
	}
	s.active = true
	s.mu.Unlock()

	t := New(budget, margin)
	leave := func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
	}
	return t, leave, nil
}
