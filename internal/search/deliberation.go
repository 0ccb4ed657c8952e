package search

import (
	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// assertSinglePlayer returns an error if game has more than one role;
// CompulsiveDeliberation and SequentialPlanner only make sense when there
// is no opponent to account for.
func assertSinglePlayer(game *ggame.Game) error {
	if len(game.Roles()) != 1 {
		return ggerrors.Newf(ggerrors.KindInternalReasoner, "single-player search requires exactly one role, got %d", len(game.Roles()))
	}
	return nil
}

// dfsBest runs plain depth-first search from s for the single role in
// game, returning the first move of a sequence that reaches max_utility,
// or, failing that, the first move of whichever explored sequence reached
// the best terminal utility found before tmr expired.
func dfsBest(game *ggame.Game, s *ggame.State, role term.Term, tmr *clock.Timer) (term.Term, error) {
	legal, err := s.LegalActions(role, tmr)
	if err != nil {
		return term.Term{}, err
	}

	bestUtility := -1
	var bestMove term.Term
	haveMove := false

	var dfs func(s *ggame.State) (int, error)
	dfs = func(s *ggame.State) (int, error) {
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
		actions, err := s.LegalActions(role, tmr)
		if err != nil {
			return 0, err
		}
		best := -1
		for _, a := range actions {
			next, err := s.Apply([]ggame.Move{{Role: role, Action: a}}, tmr)
			if err != nil {
				return 0, err
			}
			u, err := dfs(next)
			if err != nil {
				return 0, err
			}
			if u > best {
				best = u
			}
			if best >= ggame.MaxUtility {
				break
			}
		}
		return best, nil
	}

	for _, a := range legal {
		next, err := s.Apply([]ggame.Move{{Role: role, Action: a}}, tmr)
		if err != nil {
			if ggerrors.Is(err, ggerrors.KindTimeUp) {
				break
			}
			return term.Term{}, err
		}
		u, err := dfs(next)
		if err != nil {
			if ggerrors.Is(err, ggerrors.KindTimeUp) {
				break
			}
			return term.Term{}, err
		}
		if u > bestUtility {
			bestUtility = u
			bestMove = a
			haveMove = true
		}
		if bestUtility >= ggame.MaxUtility {
			break
		}
	}

	if !haveMove {
		return legal[0], nil
	}
	return bestMove, nil
}

// CompulsiveDeliberation re-runs a full DFS on every get_move call. It
// only supports single-player games.
type CompulsiveDeliberation struct {
	*player.Base
}

// NewCompulsiveDeliberation constructs a CompulsiveDeliberation player.
func NewCompulsiveDeliberation(base *player.Base) (*CompulsiveDeliberation, error) {
	if err := assertSinglePlayer(base.Game); err != nil {
		return nil, err
	}
	return &CompulsiveDeliberation{Base: base}, nil
}

func (p *CompulsiveDeliberation) GetMove() (term.Term, error) {
	tmr, leave, err := p.EnterPlay()
	if err != nil {
		return term.Term{}, err
	}
	defer leave()
	return withReasonerFallback(p.State, p.Role, func() (term.Term, error) {
		return dfsBest(p.Game, p.State, p.Role, tmr)
	})
}

var _ player.Player = (*CompulsiveDeliberation)(nil)

// SequentialPlanner runs the DFS once, during New, and replays the
// resulting move sequence from GetMove. It only supports single-player
// games.
type SequentialPlanner struct {
	*player.Base
	plan []term.Term
	step int
}

// NewSequentialPlanner constructs a SequentialPlanner, running the
// precompute DFS within the start-clock scope.
func NewSequentialPlanner(base *player.Base) (*SequentialPlanner, error) {
	if err := assertSinglePlayer(base.Game); err != nil {
		return nil, err
	}
	p := &SequentialPlanner{Base: base}

	tmr, leave, err := base.EnterStart()
	if err != nil {
		return nil, err
	}
	defer leave()

	s := base.State
	for {
		terminal, err := s.IsTerminal(tmr)
		if err != nil {
			if ggerrors.Is(err, ggerrors.KindTimeUp) {
				break
			}
			return nil, err
		}
		if terminal {
			break
		}
		move, err := dfsBest(base.Game, s, base.Role, tmr)
		if err != nil {
			if ggerrors.Is(err, ggerrors.KindTimeUp) {
				break
			}
			return nil, err
		}
		p.plan = append(p.plan, move)
		s, err = s.Apply([]ggame.Move{{Role: base.Role, Action: move}}, tmr)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *SequentialPlanner) GetMove() (term.Term, error) {
	if p.step < len(p.plan) {
		move := p.plan[p.step]
		p.step++
		return move, nil
	}
	legal, err := p.State.LegalActions(p.Role, nil)
	if err != nil {
		return term.Term{}, err
	}
	return legal[0], nil
}

var _ player.Player = (*SequentialPlanner)(nil)
