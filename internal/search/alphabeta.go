package search

import (
	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// AlphaBeta is Minimax with pruning: a min-step cuts once its running
// score falls to or below the best score already guaranteed by a
// previously explored sibling of the enclosing max-step (and
// symmetrically for a max-step against its enclosing min-step), plus an
// unconditional short-circuit once a score hits min/max utility. At the
// root the cut is strictly below the best score so far, so a move that ties
// it is scored exactly and only real ties are broken at random.
type AlphaBeta struct {
	*player.Base
}

// NewAlphaBeta constructs an AlphaBeta player.
func NewAlphaBeta(base *player.Base) *AlphaBeta {
	return &AlphaBeta{Base: base}
}

func (p *AlphaBeta) GetMove() (term.Term, error) {
	tmr, leave, err := p.EnterPlay()
	if err != nil {
		return term.Term{}, err
	}
	defer leave()
	return withReasonerFallback(p.State, p.Role, func() (term.Term, error) {
		move, _, err := alphaBetaRoot(p.Game, p.State, p.Role, p.RNG, tmr)
		return move, err
	})
}

var _ player.Player = (*AlphaBeta)(nil)

func alphaBetaRoot(game *ggame.Game, s *ggame.State, role term.Term, rng interface{ Intn(int) int }, tmr *clock.Timer) (term.Term, int, error) {
	if only, ok, err := oneLegalMove(s, role, tmr); err != nil {
		return term.Term{}, 0, err
	} else if ok {
		return only, 0, nil
	}

	legal, err := s.LegalActions(role, tmr)
	if err != nil {
		return term.Term{}, 0, err
	}

	alpha, beta := ggame.MinUtility, ggame.MaxUtility
	best := alpha - 1
	var bestMoves []term.Term
	for _, a := range shuffled(legal, rng) {
		score, err := abMin(game, s, role, a, alpha-1, beta, tmr)
		if err != nil {
			return term.Term{}, 0, err
		}
		if score > best {
			best = score
			bestMoves = []term.Term{a}
		} else if score == best {
			bestMoves = append(bestMoves, a)
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestMoves[rng.Intn(len(bestMoves))], best, nil
}

func abMin(game *ggame.Game, s *ggame.State, role, ownMove term.Term, alpha, beta int, tmr *clock.Timer) (int, error) {
	joints, err := opponentJoints(game, s, role, ownMove, tmr)
	if err != nil {
		return 0, err
	}
	worst := beta
	for _, joint := range joints {
		next, err := s.Apply(joint, tmr)
		if err != nil {
			return 0, err
		}
		score, err := abMax(game, next, role, alpha, worst, tmr)
		if err != nil {
			return 0, err
		}
		if score < worst {
			worst = score
		}
		if worst <= alpha {
			break
		}
	}
	return worst, nil
}

func abMax(game *ggame.Game, s *ggame.State, role term.Term, alpha, beta int, tmr *clock.Timer) (int, error) {
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
	if alpha >= ggame.MaxUtility {
		return ggame.MaxUtility, nil
	}

	legal, err := s.LegalActions(role, tmr)
	if err != nil {
		return 0, err
	}
	best := alpha
	for _, a := range legal {
		score, err := abMin(game, s, role, a, best, beta, tmr)
		if err != nil {
			return 0, err
		}
		if score > best {
			best = score
		}
		if best >= beta {
			break
		}
	}
	return best, nil
}
