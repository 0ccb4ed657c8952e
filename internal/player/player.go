// Package player defines the common contract every search strategy
// implements: construction against a (game, role, start-clock, play-clock),
// move notification, move selection under a play-clock deadline, and
// shutdown. Concrete strategies live in internal/search.
package player

import (
	"math/rand"
	"time"

	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/term"
	"go.uber.org/zap"
)

// StartMargin and PlayMargin are the safety margins (the "- ε" of the
// player contract) subtracted from the start and play clocks before a
// scoped Timer's deadline is computed, so a player always returns before
// the referee's own deadline lands.
const (
	StartMargin = 200 * time.Millisecond
	PlayMargin  = 200 * time.Millisecond
)

// Player is the contract every search strategy implements.
type Player interface {
	// UpdateMoves advances the player's held state by applying the joint
	// move most recently played, in role order.
	UpdateMoves(joint []ggame.Move) error

	// GetMove returns this player's chosen action for the current state. It
	// must return before the play clock, less PlayMargin, elapses.
	GetMove() (term.Term, error)

	// Stop releases resources at normal match end.
	Stop()

	// Abort releases resources after an aborted match.
	Abort()
}

// Base is the shared state every concrete player embeds: the game, this
// player's role, the current State, a seeded RNG, a logger, and the
// start/play clock durations used to scope each search.
type Base struct {
	Game       *ggame.Game
	Role       term.Term
	State      *ggame.State
	RNG        *rand.Rand
	Log        *zap.Logger
	StartClock time.Duration
	PlayClock  time.Duration

	scope clock.Scope
}

// NewBase constructs the shared player state from the initial state of
// game.
func NewBase(game *ggame.Game, role term.Term, startClock, playClock time.Duration, seed int64, log *zap.Logger) (*Base, error) {
	state, err := game.InitialState()
	if err != nil {
		return nil, err
	}
	return &Base{
		Game:       game,
		Role:       role,
		State:      state,
		RNG:        rand.New(rand.NewSource(seed)),
		Log:        log,
		StartClock: startClock,
		PlayClock:  playClock,
	}, nil
}

// UpdateMoves applies joint to the held state.
func (b *Base) UpdateMoves(joint []ggame.Move) error {
	next, err := b.State.Apply(joint, nil)
	if err != nil {
		return err
	}
	b.State = next
	return nil
}

// EnterStart opens a scoped timer for the start-clock phase (used from
// New/precompute).
func (b *Base) EnterStart() (*clock.Timer, func(), error) {
	return b.scope.Enter(b.StartClock, StartMargin)
}

// EnterPlay opens a scoped timer for the play-clock phase (used from
// GetMove).
func (b *Base) EnterPlay() (*clock.Timer, func(), error) {
	return b.scope.Enter(b.PlayClock, PlayMargin)
}

// Stop logs normal shutdown. Concrete players embed Base and may override.
func (b *Base) Stop() {
	if b.Log != nil {
		b.Log.Info("player stopped", zap.String("role", b.Role.String()))
	}
}

// Abort logs an aborted match.
func (b *Base) Abort() {
	if b.Log != nil {
		b.Log.Warn("player aborted", zap.String("role", b.Role.String()))
	}
}
