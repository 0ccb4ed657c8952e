package match

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/term"
)

// PlayerFactory builds the concrete search strategy the server plays as,
// bound to one match's Base. cmd/ggpserver supplies one implementation per
// subcommand (Legal, Minimax, MCTS, ...).
type PlayerFactory func(base *player.Base) (player.Player, error)

// Service sequences the five wire messages against a Registry, decoupling
// the HTTP layer from match state the way an application service layer
// decouples handlers from a backing store.
type Service struct {
	Registry  *Registry
	NewPlayer PlayerFactory
	Seed      int64
	Log       *zap.Logger
}

// NewService constructs a Service bound to reg and newPlayer.
func NewService(reg *Registry, newPlayer PlayerFactory, seed int64, log *zap.Logger) *Service {
	return &Service{Registry: reg, NewPlayer: newPlayer, Seed: seed, Log: log}
}

// Busy reports whether any match is currently registered. Start rejects a
// (start) while Busy is true, and Busy drives the (info) message's status
// field.
func (s *Service) Busy() bool {
	return s.Registry.Len() > 0
}

// Start parses rulesSrc, builds a Game, binds a fresh player to roleName for
// the given clocks, and registers it under gameID.
func (s *Service) Start(gameID, roleName, rulesSrc string, startClock, playClock time.Duration) error {
	if s.Busy() {
		return ggerrors.Newf(ggerrors.KindDuplicateGameID, "a match is already in progress; (start) for game id %q rejected", gameID)
	}

	game, err := ggame.Create(rulesSrc)
	if err != nil {
		return err
	}

	role, err := findRole(game, roleName)
	if err != nil {
		return err
	}

	base, err := player.NewBase(game, role, startClock, playClock, s.Seed, s.Log)
	if err != nil {
		return err
	}

	p, err := s.NewPlayer(base)
	if err != nil {
		return err
	}

	return s.Registry.Create(&Match{ID: gameID, Game: game, Role: role, Player: p})
}

// Play applies joint (if non-nil) to the match's player, then asks it for a
// move. joint is given in the game's role order, as the wire protocol
// carries it.
func (s *Service) Play(gameID string, joint []term.Term) (term.Term, error) {
	m, err := s.Registry.Get(gameID)
	if err != nil {
		return term.Term{}, err
	}
	m.Lock()
	defer m.Unlock()

	if joint != nil {
		moves, err := zipJoint(m.Game, joint)
		if err != nil {
			return term.Term{}, err
		}
		if err := m.Player.UpdateMoves(moves); err != nil {
			return term.Term{}, err
		}
	}
	return m.Player.GetMove()
}

// Stop applies joint (if non-nil), calls Stop on the match's player, and
// discards it.
func (s *Service) Stop(gameID string, joint []term.Term) error {
	m, err := s.Registry.Get(gameID)
	if err != nil {
		return err
	}
	m.Lock()
	if joint != nil {
		moves, zerr := zipJoint(m.Game, joint)
		if zerr != nil {
			m.Unlock()
			return zerr
		}
		if err := m.Player.UpdateMoves(moves); err != nil {
			m.Unlock()
			return err
		}
	}
	m.Player.Stop()
	m.Unlock()

	s.Registry.Remove(gameID)
	return nil
}

// Abort calls Abort on the match's player and discards it.
func (s *Service) Abort(gameID string) error {
	m, err := s.Registry.Get(gameID)
	if err != nil {
		return err
	}
	m.Lock()
	m.Player.Abort()
	m.Unlock()

	s.Registry.Remove(gameID)
	return nil
}

func findRole(game *ggame.Game, roleName string) (term.Term, error) {
	in := game.Interner()
	want, err := gdl.ParseTerm(in, roleName)
	if err != nil {
		return term.Term{}, ggerrors.Wrap(ggerrors.KindMalformedGDL, err, fmt.Sprintf("malformed ROLE %q", roleName))
	}
	for _, r := range game.Roles() {
		if r.Equal(want) {
			return r, nil
		}
	}
	return term.Term{}, ggerrors.Newf(ggerrors.KindMalformedGDL, "role %q is not one of this game's roles", roleName)
}

func zipJoint(game *ggame.Game, joint []term.Term) ([]ggame.Move, error) {
	roles := game.Roles()
	if len(joint) != len(roles) {
		return nil, ggerrors.Newf(ggerrors.KindIllegalMove, "expected %d moves in joint, got %d", len(roles), len(joint))
	}
	moves := make([]ggame.Move, len(roles))
	for i, r := range roles {
		moves[i] = ggame.Move{Role: r, Action: joint[i]}
	}
	return moves, nil
}
