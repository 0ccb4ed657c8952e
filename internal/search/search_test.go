package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dekarrin/ggpagent/internal/fixtures"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/search"
	"github.com/dekarrin/ggpagent/internal/term"
)

func newBase(t *testing.T, g *ggame.Game, role int, seed int64) *player.Base {
	t.Helper()
	b, err := player.NewBase(g, g.Roles()[role], 2*time.Second, 2*time.Second, seed, zap.NewNop())
	require.NoError(t, err)
	return b
}

func Test_Legal_and_Random_never_fail_on_buttons_and_lights(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)

	legalPlayer := search.NewLegal(newBase(t, g, 0, 1))
	move, err := legalPlayer.GetMove()
	require.NoError(t, err)
	assert.NotEqual(t, "", move.String())

	randPlayer := search.NewRandom(newBase(t, g, 0, 2))
	move, err = randPlayer.GetMove()
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b", "c"}, move.String())
}

func Test_CompulsiveDeliberation_finds_max_utility(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)
	base := newBase(t, g, 0, 3)
	p, err := search.NewCompulsiveDeliberation(base)
	require.NoError(t, err)

	move, err := p.GetMove()
	require.NoError(t, err)
	assert.Equal(t, "a", move.String(), "only a sequence ending in a reaches max utility")
}

func Test_CompulsiveDeliberation_rejects_multiplayer_game(t *testing.T) {
	g, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)
	_, err = search.NewCompulsiveDeliberation(newBase(t, g, 0, 4))
	assert.Error(t, err)
}

func Test_SequentialPlanner_replays_winning_sequence(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)
	base := newBase(t, g, 0, 5)
	p, err := search.NewSequentialPlanner(base)
	require.NoError(t, err)

	s, err := g.InitialState()
	require.NoError(t, err)
	robot := g.Roles()[0]
	for {
		terminal, err := s.IsTerminal(nil)
		require.NoError(t, err)
		if terminal {
			break
		}
		move, err := p.GetMove()
		require.NoError(t, err)
		s, err = s.Apply([]ggame.Move{{Role: robot, Action: move}}, nil)
		require.NoError(t, err)
	}
	u, err := s.Utility(robot, nil)
	require.NoError(t, err)
	assert.Equal(t, ggame.MaxUtility, u)
}

func Test_Minimax_and_AlphaBeta_agree_on_ttt_win(t *testing.T) {
	g, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)

	s, err := g.InitialState()
	require.NoError(t, err)
	white, black := g.Roles()[0], g.Roles()[1]

	rounds := [][2][2]int{
		{{2, 2}, {2, 3}},
		{{1, 2}, {1, 3}},
		{{2, 1}, {3, 1}},
	}
	for _, r := range rounds {
		blackMove := markAction(g, r[0][0], r[0][1])
		whiteMove := markAction(g, r[1][0], r[1][1])
		s, err = s.Apply([]ggame.Move{{Role: black, Action: blackMove}, {Role: white, Action: whiteMove}}, nil)
		require.NoError(t, err)
	}

	mmBase := newBase(t, g, 1, 6)
	mmBase.State = s
	mm := search.NewMinimax(mmBase)
	mmMove, err := mm.GetMove()
	require.NoError(t, err)

	abBase := newBase(t, g, 1, 6)
	abBase.State = s
	ab := search.NewAlphaBeta(abBase)
	abMove, err := ab.GetMove()
	require.NoError(t, err)

	assert.Equal(t, mmMove.String(), abMove.String(), "alpha-beta must find the same value-optimal move as full minimax")
}

func Test_BoundedDepth_zero_heuristic_returns_legal_move(t *testing.T) {
	g, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)
	base := newBase(t, g, 0, 7)
	p := search.NewBoundedDepth(base, 2, search.HeuristicZero)
	move, err := p.GetMove()
	require.NoError(t, err)
	assert.NotEqual(t, "", move.String())
}

func Test_MonteCarlo_returns_legal_move(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)
	base := newBase(t, g, 0, 8)
	p := search.NewMonteCarlo(base, 2, 3)
	move, err := p.GetMove()
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b", "c"}, move.String())
}

func Test_MCTS_prefers_winning_move_on_single_player_game(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)

	// Advance to the last step before termination, where only playing a
	// reaches goal 100; any other move leaves q false.
	s, err := g.InitialState()
	require.NoError(t, err)
	robot := g.Roles()[0]
	for i := 0; i < 5; i++ {
		s, err = s.Apply([]ggame.Move{{Role: robot, Action: term.NewAtom(g.Interner(), "b")}}, nil)
		require.NoError(t, err)
	}

	base := newBase(t, g, 0, 9)
	base.State = s
	base.StartClock = 500 * time.Millisecond
	base.PlayClock = 500 * time.Millisecond
	p, err := search.NewMCTS(base)
	require.NoError(t, err)

	move, err := p.GetMove()
	require.NoError(t, err)
	assert.Equal(t, "a", move.String(), "a is the only move reaching max utility from the last step")
}

func Test_MCTS_selects_own_role_winning_move_when_not_role_zero(t *testing.T) {
	g, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)

	s, err := g.InitialState()
	require.NoError(t, err)
	white, black := g.Roles()[0], g.Roles()[1]

	// white marks down column 1, never threatening a line; black marks
	// across row 1, leaving (1,3) as its one move from a win.
	rounds := [][2][2]int{
		{{2, 1}, {1, 1}},
		{{3, 1}, {1, 2}},
	}
	for _, r := range rounds {
		whiteMove := markAction(g, r[0][0], r[0][1])
		blackMove := markAction(g, r[1][0], r[1][1])
		s, err = s.Apply([]ggame.Move{{Role: white, Action: whiteMove}, {Role: black, Action: blackMove}}, nil)
		require.NoError(t, err)
	}

	base := newBase(t, g, 1, 10)
	base.State = s
	base.StartClock = 500 * time.Millisecond
	base.PlayClock = 500 * time.Millisecond
	p, err := search.NewMCTS(base)
	require.NoError(t, err)

	move, err := p.GetMove()
	require.NoError(t, err)
	assert.Equal(t, markAction(g, 1, 3).String(), move.String(), "black must complete its own line, not defer to white's role-0 choices")
}

func markAction(g *ggame.Game, i, j int) term.Term {
	return term.NewCompound(g.Interner(), "mark", term.NewInteger(int64(i)), term.NewInteger(int64(j)))
}
