package ggame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ggpagent/internal/fixtures"
	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/term"
)

func findByName(t *testing.T, actions []term.Term, name string) term.Term {
	t.Helper()
	for _, a := range actions {
		if a.String() == name {
			return a
		}
	}
	t.Fatalf("no action named %q in %v", name, actions)
	return term.Term{}
}

func Test_ButtonsAndLights_initial_state_and_forced_win(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)

	require.Len(t, g.Roles(), 1)
	robot := g.Roles()[0]
	assert.Equal(t, "robot", robot.String())
	assert.Len(t, g.AllActions(robot), 3)
	assert.Len(t, g.BasePropositions(), 10)

	s, err := g.InitialState()
	require.NoError(t, err)

	terminal, err := s.IsTerminal(nil)
	require.NoError(t, err)
	assert.False(t, terminal)

	u, err := s.Utility(robot, nil)
	require.NoError(t, err)
	assert.Equal(t, ggame.MinUtility, u)

	legal, err := s.LegalActions(robot, nil)
	require.NoError(t, err)
	require.Len(t, legal, 3)

	for _, name := range []string{"a", "b", "c", "a", "b", "a"} {
		chosen := findByName(t, legal, name)
		s, err = s.Apply([]ggame.Move{{Role: robot, Action: chosen}}, nil)
		require.NoError(t, err)
		legal, err = s.LegalActions(robot, nil)
		require.NoError(t, err)
	}

	terminal, err = s.IsTerminal(nil)
	require.NoError(t, err)
	assert.True(t, terminal)

	u, err = s.Utility(robot, nil)
	require.NoError(t, err)
	assert.Equal(t, ggame.MaxUtility, u)
}

func Test_Apply_rejects_illegal_move(t *testing.T) {
	g, err := ggame.Create(fixtures.ButtonsAndLights())
	require.NoError(t, err)
	robot := g.Roles()[0]
	s, err := g.InitialState()
	require.NoError(t, err)

	other, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)
	foreignAction := other.AllActions(other.Roles()[0])[0]

	_, err = s.Apply([]ggame.Move{{Role: robot, Action: foreignAction}}, nil)
	assert.Error(t, err)
}

func Test_Apply_rejects_wrong_move_count(t *testing.T) {
	g, err := ggame.Create(fixtures.TicTacToe())
	require.NoError(t, err)
	s, err := g.InitialState()
	require.NoError(t, err)

	white := g.Roles()[0]
	legal, err := s.LegalActions(white, nil)
	require.NoError(t, err)
	require.NotEmpty(t, legal)

	_, err = s.Apply([]ggame.Move{{Role: white, Action: legal[0]}}, nil)
	assert.Error(t, err)
}
