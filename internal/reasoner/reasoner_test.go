package reasoner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ggpagent/internal/fixtures"
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/reasoner"
	"github.com/dekarrin/ggpagent/internal/term"
)

func compile(t *testing.T, src string) (*term.Interner, *reasoner.Program) {
	t.Helper()
	in := term.NewInterner()
	rs, err := gdl.Parse(in, src)
	require.NoError(t, err)
	prog, err := reasoner.Compile(rs)
	require.NoError(t, err)
	return in, prog
}

func atom(in *term.Interner, name string) term.Term { return term.NewAtom(in, name) }

func compound(in *term.Interner, functor string, args ...term.Term) term.Term {
	return term.NewCompound(in, functor, args...)
}

func Test_ButtonsAndLights_initial_state(t *testing.T) {
	in, prog := compile(t, fixtures.ButtonsAndLights())
	r := reasoner.New(prog)

	step1 := compound(in, "step", term.NewInteger(1))
	ctx := reasoner.Context{Truth: []term.Term{step1}}

	terminal, err := r.Proves(atom(in, "terminal"), ctx, nil)
	require.NoError(t, err)
	assert.False(t, terminal)

	goals, err := r.AllGround("goal", 2, ctx, nil)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "0", goals[0].Arg(1).String())

	legal, err := r.AllGround("legal", 2, ctx, nil)
	require.NoError(t, err)
	assert.Len(t, legal, 3)
}

func Test_ButtonsAndLights_forced_sequence_reaches_win(t *testing.T) {
	in, prog := compile(t, fixtures.ButtonsAndLights())
	r := reasoner.New(prog)
	robot := atom(in, "robot")

	truth := []term.Term{compound(in, "step", term.NewInteger(1))}
	moves := []string{"a", "b", "c", "a", "b", "a"}

	for _, mv := range moves {
		ctx := reasoner.Context{
			Truth: truth,
			Does:  []reasoner.RoleAction{{Role: robot, Action: atom(in, mv)}},
		}
		next, err := r.AllGround("next", 1, ctx, nil)
		require.NoError(t, err)
		truth = next
	}

	terminal, err := r.Proves(atom(in, "terminal"), reasoner.Context{Truth: truth}, nil)
	require.NoError(t, err)
	assert.True(t, terminal)

	goals, err := r.AllGround("goal", 2, reasoner.Context{Truth: truth}, nil)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "100", goals[0].Arg(1).String())

	assert.Contains(t, names(truth), "p")
	assert.Contains(t, names(truth), "q")
	assert.Contains(t, names(truth), "r")
}

func Test_ButtonsAndLights_forced_sequence_ending_in_b_loses(t *testing.T) {
	in, prog := compile(t, fixtures.ButtonsAndLights())
	r := reasoner.New(prog)
	robot := atom(in, "robot")

	truth := []term.Term{compound(in, "step", term.NewInteger(1))}
	moves := []string{"a", "b", "c", "a", "b", "b"}

	for _, mv := range moves {
		ctx := reasoner.Context{
			Truth: truth,
			Does:  []reasoner.RoleAction{{Role: robot, Action: atom(in, mv)}},
		}
		next, err := r.AllGround("next", 1, ctx, nil)
		require.NoError(t, err)
		truth = next
	}

	goals, err := r.AllGround("goal", 2, reasoner.Context{Truth: truth}, nil)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "0", goals[0].Arg(1).String())

	assert.Contains(t, names(truth), "p")
	assert.NotContains(t, names(truth), "q")
	assert.Contains(t, names(truth), "r")
}

func names(truth []term.Term) []string {
	var out []string
	for _, t := range truth {
		out = append(out, t.String())
	}
	return out
}

func Test_TicTacToe_initial_state_has_no_line(t *testing.T) {
	in, prog := compile(t, fixtures.TicTacToe())
	r := reasoner.New(prog)

	var truth []term.Term
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			truth = append(truth, compound(in, "cell", term.NewInteger(int64(i)), term.NewInteger(int64(j)), atom(in, "b")))
		}
	}
	truth = append(truth, compound(in, "step", term.NewInteger(1)))
	ctx := reasoner.Context{Truth: truth}

	terminal, err := r.Proves(atom(in, "terminal"), ctx, nil)
	require.NoError(t, err)
	assert.False(t, terminal)

	goals, err := r.AllGround("goal", 2, ctx, nil)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	for _, g := range goals {
		assert.Equal(t, "50", g.Arg(1).String())
	}

	legal, err := r.AllGround("legal", 2, ctx, nil)
	require.NoError(t, err)
	assert.Len(t, legal, 18) // 9 cells * 2 roles
}

func Test_TicTacToe_forced_win_on_column_two(t *testing.T) {
	in, prog := compile(t, fixtures.TicTacToe())
	r := reasoner.New(prog)
	white, black := atom(in, "white"), atom(in, "black")

	var truth []term.Term
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			truth = append(truth, compound(in, "cell", term.NewInteger(int64(i)), term.NewInteger(int64(j)), atom(in, "b")))
		}
	}
	truth = append(truth, compound(in, "step", term.NewInteger(1)))

	mark := func(i, j int) term.Term {
		return compound(in, "mark", term.NewInteger(int64(i)), term.NewInteger(int64(j)))
	}

	rounds := [][2]term.Term{
		{mark(2, 2), mark(2, 3)},
		{mark(1, 2), mark(1, 3)},
		{mark(2, 1), mark(3, 1)},
		{mark(3, 2), mark(1, 1)},
	}

	var terminal bool
	for _, round := range rounds {
		ctx := reasoner.Context{
			Truth: truth,
			Does: []reasoner.RoleAction{
				{Role: black, Action: round[0]},
				{Role: white, Action: round[1]},
			},
		}
		next, err := r.AllGround("next", 1, ctx, nil)
		require.NoError(t, err)
		truth = next

		terminal, err = r.Proves(atom(in, "terminal"), reasoner.Context{Truth: truth}, nil)
		require.NoError(t, err)
		if terminal {
			break
		}
	}

	require.True(t, terminal, "expected black's column-2 line to end the game")

	goals, err := r.AllGround("goal", 2, reasoner.Context{Truth: truth}, nil)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	for _, g := range goals {
		switch g.Arg(0).String() {
		case "black":
			assert.Equal(t, "100", g.Arg(1).String())
		case "white":
			assert.Equal(t, "0", g.Arg(1).String())
		}
	}
}

func Test_Program_bounds_cyclic_positive_recursion(t *testing.T) {
	in, prog := compile(t, `
(adjacent a b)
(adjacent b a)
(<= (reachable ?x ?y) (adjacent ?x ?y))
(<= (reachable ?x ?y) (adjacent ?x ?z) (reachable ?z ?y))
`)
	r := reasoner.New(prog)
	// Solutions exhausts every clause (Proves would stop at the first
	// match, which the non-recursive clause supplies immediately), so it's
	// the one that actually drives the adjacent(a,b)/adjacent(b,a) cycle.
	_, err := r.Solutions(compound(in, "reachable", atom(in, "a"), term.NewVariable(0, "?y")), reasoner.Context{}, nil)
	require.Error(t, err)
	assert.True(t, ggerrors.Is(err, ggerrors.KindRecursionLimit))
}

func Test_Program_rejects_unstratified_negation(t *testing.T) {
	in := term.NewInterner()
	rs, err := gdl.Parse(in, `
(<= (p) (not (q)))
(<= (q) (not (p)))
`)
	require.NoError(t, err)
	_, err = reasoner.Compile(rs)
	require.Error(t, err)
}

func Test_Program_allows_positive_recursion(t *testing.T) {
	in := term.NewInterner()
	rs, err := gdl.Parse(in, `
(edge a b)
(edge b c)
(<= (path ?x ?y) (edge ?x ?y))
(<= (path ?x ?z) (edge ?x ?y) (path ?y ?z))
`)
	require.NoError(t, err)
	prog, err := reasoner.Compile(rs)
	require.NoError(t, err)

	r := reasoner.New(prog)
	sols, err := r.Solutions(compound(in, "path", atom(in, "a"), term.NewVariable(0, "?z")), reasoner.Context{}, nil)
	require.NoError(t, err)
	assert.Len(t, sols, 2)
}
