// Package search implements the family of GGP move-selection strategies
// described in the player framework: Legal, Random, the single-player DFS
// planners, Minimax/AlphaBeta, BoundedDepth with pluggable heuristics,
// MonteCarlo, and MCTS/UCT. Every strategy is a pure function of
// (state, timer, rng) layered on top of player.Base.
package search

import (
	"math/rand"

	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/term"
)

// jointMoves returns the Cartesian product of legal actions for every role
// in game.Roles() order, as full joint moves.
func jointMoves(game *ggame.Game, s *ggame.State, tmr *clock.Timer) ([][]ggame.Move, error) {
	roles := game.Roles()
	perRole := make([][]term.Term, len(roles))
	for i, r := range roles {
		actions, err := s.LegalActions(r, tmr)
		if err != nil {
			return nil, err
		}
		perRole[i] = actions
	}

	var out [][]ggame.Move
	var build func(i int, acc []ggame.Move)
	build = func(i int, acc []ggame.Move) {
		if i == len(roles) {
			cp := make([]ggame.Move, len(acc))
			copy(cp, acc)
			out = append(out, cp)
			return
		}
		for _, a := range perRole[i] {
			build(i+1, append(acc, ggame.Move{Role: roles[i], Action: a}))
		}
	}
	build(0, nil)
	return out, nil
}

// randomJointMove picks one uniformly-random legal action per role.
func randomJointMove(game *ggame.Game, s *ggame.State, rng *rand.Rand, tmr *clock.Timer) ([]ggame.Move, error) {
	roles := game.Roles()
	joint := make([]ggame.Move, len(roles))
	for i, r := range roles {
		actions, err := s.LegalActions(r, tmr)
		if err != nil {
			return nil, err
		}
		joint[i] = ggame.Move{Role: r, Action: actions[rng.Intn(len(actions))]}
	}
	return joint, nil
}

// randomPlayout plays uniform-random joint moves from s until terminal,
// polling tmr every step, and returns this role's utility at the terminal
// state it reaches.
func randomPlayout(game *ggame.Game, s *ggame.State, role term.Term, rng *rand.Rand, tmr *clock.Timer) (int, error) {
	for {
		if err := tmr.Check(); err != nil {
			return 0, err
		}
		terminal, err := s.IsTerminal(tmr)
		if err != nil {
			return 0, err
		}
		if terminal {
			return s.Utility(role, tmr)
		}
		joint, err := randomJointMove(game, s, rng, tmr)
		if err != nil {
			return 0, err
		}
		s, err = s.Apply(joint, tmr)
		if err != nil {
			return 0, err
		}
	}
}

// ownMove extracts the action this role plays in a joint move.
func ownMove(joint []ggame.Move, role term.Term) term.Term {
	for _, m := range joint {
		if m.Role.Equal(role) {
			return m.Action
		}
	}
	return term.Term{}
}

// oneLegalMove reports whether role has exactly one legal action in s, and
// returns it (the "trivial-turn" shortcut).
func oneLegalMove(s *ggame.State, role term.Term, tmr *clock.Timer) (term.Term, bool, error) {
	actions, err := s.LegalActions(role, tmr)
	if err != nil {
		return term.Term{}, false, err
	}
	if len(actions) == 1 {
		return actions[0], true, nil
	}
	return term.Term{}, false, nil
}

// withReasonerFallback runs getMove and, if it fails with KindInternalReasoner,
// swallows the error and returns the first legal action instead, keeping the
// match alive on a reasoner fault. Every other error (including KindTimeUp,
// which callers already handle on their own terms) passes through unchanged.
func withReasonerFallback(s *ggame.State, role term.Term, getMove func() (term.Term, error)) (term.Term, error) {
	move, err := getMove()
	if err == nil || !ggerrors.Is(err, ggerrors.KindInternalReasoner) {
		return move, err
	}
	legal, lerr := s.LegalActions(role, nil)
	if lerr != nil || len(legal) == 0 {
		return term.Term{}, err
	}
	return legal[0], nil
}
