package search

import (
	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// Heuristic names the frontier evaluator BoundedDepth (and MonteCarlo) use
// once max_depth is reached.
type Heuristic int

const (
	// HeuristicZero always returns the constant 0.
	HeuristicZero Heuristic = iota
	// HeuristicUtility returns state.Utility(role) as a partial indicator.
	HeuristicUtility
	// HeuristicMobility returns |legal_actions(role)| / |all_actions(role)|.
	HeuristicMobility
	// HeuristicMonteCarlo averages NumProbes random playouts from the
	// frontier state; only meaningful via MonteCarlo, not BoundedDepth.
	HeuristicMonteCarlo
)

// rescale maps a raw evaluator value in [0,1] to the 10..90 band, so that
// proven wins (100) and losses (0) strictly dominate every heuristic
// estimate in the minimax comparison.
func rescale(frac float64) int {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 10 + int(frac*80)
}

// BoundedDepth is AlphaBeta with a depth limit and a frontier evaluator.
// With MaxDepth == -1 it runs iterative deepening inside the play-clock
// timer instead of a single fixed-depth search.
type BoundedDepth struct {
	*player.Base
	MaxDepth  int
	Eval      Heuristic
	NumProbes int // only consulted when Eval == HeuristicMonteCarlo
}

// NewBoundedDepth constructs a BoundedDepth player with the given depth
// limit (-1 for iterative deepening) and frontier evaluator.
func NewBoundedDepth(base *player.Base, maxDepth int, eval Heuristic) *BoundedDepth {
	return &BoundedDepth{Base: base, MaxDepth: maxDepth, Eval: eval}
}

func (p *BoundedDepth) GetMove() (term.Term, error) {
	tmr, leave, err := p.EnterPlay()
	if err != nil {
		return term.Term{}, err
	}
	defer leave()

	return withReasonerFallback(p.State, p.Role, func() (term.Term, error) {
		if p.MaxDepth != -1 {
			move, _, err := p.searchToDepth(tmr, p.MaxDepth)
			return move, err
		}
		return p.iterativeDeepen(tmr)
	})
}

var _ player.Player = (*BoundedDepth)(nil)

func (p *BoundedDepth) iterativeDeepen(tmr *clock.Timer) (term.Term, error) {
	legal, err := p.State.LegalActions(p.Role, tmr)
	if err != nil {
		return term.Term{}, err
	}
	best := legal[0]

	for depth := 1; ; depth++ {
		move, trivial, err := p.searchToDepth(tmr, depth)
		if err != nil {
			if ggerrors.Is(err, ggerrors.KindTimeUp) {
				return best, nil
			}
			return term.Term{}, err
		}
		best = move
		if trivial {
			return best, nil
		}
	}
}

// searchToDepth runs one bounded-depth alpha-beta search and reports
// whether it hit the trivial-turn shortcut at the root.
func (p *BoundedDepth) searchToDepth(tmr *clock.Timer, depth int) (term.Term, bool, error) {
	if only, ok, err := oneLegalMove(p.State, p.Role, tmr); err != nil {
		return term.Term{}, false, err
	} else if ok {
		return only, true, nil
	}

	legal, err := p.State.LegalActions(p.Role, tmr)
	if err != nil {
		return term.Term{}, false, err
	}

	alpha, beta := ggame.MinUtility, ggame.MaxUtility
	best := alpha - 1
	var bestMoves []term.Term
	for _, a := range shuffled(legal, p.RNG) {
		score, err := p.bdMin(p.State, a, depth-1, alpha, beta, tmr)
		if err != nil {
			return term.Term{}, false, err
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
	return bestMoves[p.RNG.Intn(len(bestMoves))], false, nil
}

func (p *BoundedDepth) bdMin(s *ggame.State, ownMove term.Term, depth, alpha, beta int, tmr *clock.Timer) (int, error) {
	joints, err := opponentJoints(p.Game, s, p.Role, ownMove, tmr)
	if err != nil {
		return 0, err
	}
	worst := beta
	for _, joint := range joints {
		next, err := s.Apply(joint, tmr)
		if err != nil {
			return 0, err
		}
		score, err := p.bdMax(next, depth, alpha, worst, tmr)
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

func (p *BoundedDepth) bdMax(s *ggame.State, depth, alpha, beta int, tmr *clock.Timer) (int, error) {
	if err := tmr.Check(); err != nil {
		return 0, err
	}
	terminal, err := s.IsTerminal(tmr)
	if err != nil {
		return 0, err
	}
	if terminal {
		return s.Utility(p.Role, tmr)
	}
	if depth <= 0 {
		return p.evaluate(s, tmr)
	}
	if alpha >= ggame.MaxUtility {
		return ggame.MaxUtility, nil
	}

	legal, err := s.LegalActions(p.Role, tmr)
	if err != nil {
		return 0, err
	}
	best := alpha
	for _, a := range legal {
		score, err := p.bdMin(s, a, depth-1, best, beta, tmr)
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

func (p *BoundedDepth) evaluate(s *ggame.State, tmr *clock.Timer) (int, error) {
	switch p.Eval {
	case HeuristicZero:
		return 0, nil
	case HeuristicUtility:
		u, err := s.Utility(p.Role, tmr)
		if err != nil {
			return 0, err
		}
		return rescale(float64(u) / float64(ggame.MaxUtility)), nil
	case HeuristicMobility:
		legal, err := s.LegalActions(p.Role, tmr)
		if err != nil {
			return 0, err
		}
		all := p.Game.AllActions(p.Role)
		if len(all) == 0 {
			return rescale(0), nil
		}
		return rescale(float64(len(legal)) / float64(len(all))), nil
	case HeuristicMonteCarlo:
		n := p.NumProbes
		if n <= 0 {
			n = 1
		}
		total := 0
		for i := 0; i < n; i++ {
			u, err := randomPlayout(p.Game, s, p.Role, p.RNG, tmr)
			if err != nil {
				return 0, err
			}
			total += u
		}
		return rescale(float64(total) / float64(n) / float64(ggame.MaxUtility)), nil
	default:
		return 0, nil
	}
}
