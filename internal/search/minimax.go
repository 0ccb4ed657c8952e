package search

import (
	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// opponentJoints returns the Cartesian product of every *other* role's
// legal actions, paired with this role's fixed move, as full joint moves.
func opponentJoints(game *ggame.Game, s *ggame.State, role, ownMove term.Term, tmr *clock.Timer) ([][]ggame.Move, error) {
	roles := game.Roles()
	var others []term.Term
	perRole := make([][]term.Term, 0, len(roles))
	for _, r := range roles {
		if r.Equal(role) {
			continue
		}
		actions, err := s.LegalActions(r, tmr)
		if err != nil {
			return nil, err
		}
		others = append(others, r)
		perRole = append(perRole, actions)
	}

	var out [][]ggame.Move
	var build func(i int, acc []ggame.Move)
	build = func(i int, acc []ggame.Move) {
		if i == len(others) {
			cp := make([]ggame.Move, len(acc)+1)
			copy(cp, acc)
			cp[len(acc)] = ggame.Move{Role: role, Action: ownMove}
			out = append(out, cp)
			return
		}
		for _, a := range perRole[i] {
			build(i+1, append(acc, ggame.Move{Role: others[i], Action: a}))
		}
	}
	build(0, nil)
	if len(others) == 0 {
		out = [][]ggame.Move{{{Role: role, Action: ownMove}}}
	}
	return out, nil
}

// shuffled returns a copy of xs in a random order.
func shuffled[T any](xs []T, rng interface{ Intn(int) int }) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Minimax is the generic n-player search: a max node over this role's
// moves, each expanding into a min node over the Cartesian product of
// every other role's moves. Tie-breaking over this role's own moves is
// randomized; opponent moves are tried in their natural order.
type Minimax struct {
	*player.Base
}

// NewMinimax constructs a Minimax player.
func NewMinimax(base *player.Base) *Minimax {
	return &Minimax{Base: base}
}

func (p *Minimax) GetMove() (term.Term, error) {
	tmr, leave, err := p.EnterPlay()
	if err != nil {
		return term.Term{}, err
	}
	defer leave()
	return withReasonerFallback(p.State, p.Role, func() (term.Term, error) {
		move, _, err := minimaxRoot(p.Game, p.State, p.Role, p.RNG, tmr)
		return move, err
	})
}

var _ player.Player = (*Minimax)(nil)

func minimaxRoot(game *ggame.Game, s *ggame.State, role term.Term, rng interface{ Intn(int) int }, tmr *clock.Timer) (term.Term, int, error) {
	if only, ok, err := oneLegalMove(s, role, tmr); err != nil {
		return term.Term{}, 0, err
	} else if ok {
		return only, 0, nil
	}

	legal, err := s.LegalActions(role, tmr)
	if err != nil {
		return term.Term{}, 0, err
	}

	best := -1
	var bestMoves []term.Term
	for _, a := range shuffled(legal, rng) {
		score, err := minNode(game, s, role, a, tmr)
		if err != nil {
			return term.Term{}, 0, err
		}
		if score > best {
			best = score
			bestMoves = []term.Term{a}
		} else if score == best {
			bestMoves = append(bestMoves, a)
		}
	}
	return bestMoves[rng.Intn(len(bestMoves))], best, nil
}

func minNode(game *ggame.Game, s *ggame.State, role, ownMove term.Term, tmr *clock.Timer) (int, error) {
	joints, err := opponentJoints(game, s, role, ownMove, tmr)
	if err != nil {
		return 0, err
	}
	worst := ggame.MaxUtility + 1
	for _, joint := range joints {
		next, err := s.Apply(joint, tmr)
		if err != nil {
			return 0, err
		}
		score, err := maxValue(game, next, role, tmr)
		if err != nil {
			return 0, err
		}
		if score < worst {
			worst = score
		}
	}
	return worst, nil
}

func maxValue(game *ggame.Game, s *ggame.State, role term.Term, tmr *clock.Timer) (int, error) {
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
	legal, err := s.LegalActions(role, tmr)
	if err != nil {
		return 0, err
	}
	best := -1
	for _, a := range legal {
		score, err := minNode(game, s, role, a, tmr)
		if err != nil {
			return 0, err
		}
		if score > best {
			best = score
		}
	}
	return best, nil
}
