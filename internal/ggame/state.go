package ggame

import (
	"fmt"

	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/reasoner"
	"github.com/dekarrin/ggpagent/internal/term"
)

// State is an immutable snapshot of a game's truth set. Every operation
// returns a new State; none mutate the receiver, so a State may be shared
// freely between search branches.
type State struct {
	game  *Game
	truth []term.Term
}

// Game returns the State's owning Game.
func (s *State) Game() *Game { return s.game }

// Truth returns the state's base propositions. The returned slice must not
// be mutated.
func (s *State) Truth() []term.Term { return s.truth }

func (s *State) ctx() reasoner.Context {
	return reasoner.Context{Truth: s.truth}
}

// IsTerminal reports whether the state satisfies terminal/0.
func (s *State) IsTerminal(tmr *clock.Timer) (bool, error) {
	q := term.NewAtom(s.game.interner, "terminal")
	return s.game.reasoner.Proves(q, s.ctx(), tmr)
}

// Utility returns role's goal value in s: the maximum of every goal/2
// solution for role, since a rule set that proves more than one goal value
// in the same state is valid GDL (it just means the intended referee would
// have stopped play before reaching an ambiguous position).
func (s *State) Utility(role term.Term, tmr *clock.Timer) (int, error) {
	q := term.NewCompound(s.game.interner, "goal", role, term.NewVariable(0, "?u"))
	sols, err := s.game.reasoner.Solutions(q, s.ctx(), tmr)
	if err != nil {
		return 0, err
	}
	if len(sols) == 0 {
		return 0, ggerrors.Newf(ggerrors.KindInternalReasoner, "no goal value for role %s", role)
	}
	best := -1
	for _, sol := range sols {
		v := sol.Arg(1)
		if v.Kind() != term.Integer {
			return 0, ggerrors.Newf(ggerrors.KindInternalReasoner, "non-integer goal value %s", v)
		}
		if int(v.Int()) > best {
			best = int(v.Int())
		}
	}
	return best, nil
}

// LegalActions returns every action currently legal for role in s.
func (s *State) LegalActions(role term.Term, tmr *clock.Timer) ([]term.Term, error) {
	q := term.NewCompound(s.game.interner, "legal", role, term.NewVariable(0, "?a"))
	sols, err := s.game.reasoner.Solutions(q, s.ctx(), tmr)
	if err != nil {
		return nil, err
	}
	actions := make([]term.Term, len(sols))
	for i, sol := range sols {
		actions[i] = sol.Arg(1)
	}
	return actions, nil
}

// Apply computes the successor state after the joint move, validating that
// every role named in moves has a role in the game and that every action is
// currently legal for its role.
func (s *State) Apply(moves []Move, tmr *clock.Timer) (*State, error) {
	if err := s.checkLegal(moves, tmr); err != nil {
		return nil, err
	}

	does := make([]reasoner.RoleAction, len(moves))
	for i, m := range moves {
		does[i] = reasoner.RoleAction{Role: m.Role, Action: m.Action}
	}
	ctx := reasoner.Context{Truth: s.truth, Does: does}

	sols, err := s.game.reasoner.AllGround("next", 1, ctx, tmr)
	if err != nil {
		return nil, err
	}
	next := make([]term.Term, len(sols))
	for i, sol := range sols {
		next[i] = sol.Arg(0)
	}
	return &State{game: s.game, truth: next}, nil
}

func (s *State) checkLegal(moves []Move, tmr *clock.Timer) error {
	if len(moves) != len(s.game.roles) {
		return ggerrors.Newf(ggerrors.KindIllegalMove, "expected %d moves, got %d", len(s.game.roles), len(moves))
	}
	for _, m := range moves {
		legal, err := s.LegalActions(m.Role, tmr)
		if err != nil {
			return err
		}
		ok := false
		for _, a := range legal {
			if a.Equal(m.Action) {
				ok = true
				break
			}
		}
		if !ok {
			return ggerrors.Newf(ggerrors.KindIllegalMove, "%s is not legal for %s", m.Action, m.Role)
		}
	}
	return nil
}

func (s *State) String() string {
	return fmt.Sprintf("State(%d facts)", len(s.truth))
}
