package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/term"
	"github.com/dekarrin/ggpagent/server/wire"
)

func Test_Parse_info(t *testing.T) {
	env, err := wire.Parse("(info)")
	require.NoError(t, err)
	assert.Equal(t, wire.Info, env.Kind)
}

func Test_Parse_start(t *testing.T) {
	env, err := wire.Parse("(start g1 white ((role white) (role black)) 30 15)")
	require.NoError(t, err)

	assert.Equal(t, wire.Start, env.Kind)
	assert.Equal(t, "g1", env.GameID)
	assert.Equal(t, "white", env.Role)
	assert.Equal(t, "(role white) (role black)", env.Rules)
	assert.Equal(t, 30, env.StartClock)
	assert.Equal(t, 15, env.PlayClock)
}

func Test_Parse_start_bad_clock(t *testing.T) {
	_, err := wire.Parse("(start g1 white ((role white)) thirty 15)")
	require.Error(t, err)
	assert.True(t, ggerrors.Is(err, ggerrors.KindMalformedGDL))
}

func Test_Parse_play_nil_joint(t *testing.T) {
	env, err := wire.Parse("(play g1 nil)")
	require.NoError(t, err)

	assert.Equal(t, wire.Play, env.Kind)
	assert.Equal(t, "g1", env.GameID)
	assert.Nil(t, env.JointRaw)
}

func Test_Parse_play_joint(t *testing.T) {
	env, err := wire.Parse("(play g1 ((mark 1 1) noop))")
	require.NoError(t, err)

	require.Len(t, env.JointRaw, 2)
	assert.Equal(t, "(mark 1 1)", env.JointRaw[0])
	assert.Equal(t, "noop", env.JointRaw[1])
}

func Test_Parse_stop(t *testing.T) {
	env, err := wire.Parse("(stop g1 ((mark 1 1) noop))")
	require.NoError(t, err)
	assert.Equal(t, wire.Stop, env.Kind)
	require.Len(t, env.JointRaw, 2)
}

func Test_Parse_abort(t *testing.T) {
	env, err := wire.Parse("(abort g1)")
	require.NoError(t, err)
	assert.Equal(t, wire.Abort, env.Kind)
	assert.Equal(t, "g1", env.GameID)
}

func Test_Parse_malformed_shapes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"no outer parens", "info"},
		{"unknown message", "(frobnicate g1)"},
		{"empty body", "()"},
		{"start wrong arity", "(start g1 white ((role white)) 30)"},
		{"abort wrong arity", "(abort)"},
		{"play bad joint shape", "(play g1 notalist)"},
		{"unterminated paren", "(play g1 ((mark 1 1)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wire.Parse(tc.body)
			require.Error(t, err)
			assert.True(t, ggerrors.Is(err, ggerrors.KindMalformedGDL))
		})
	}
}

func Test_ParseActions(t *testing.T) {
	in := term.NewInterner()
	actions, err := wire.ParseActions(in, []string{"(mark 1 1)", "noop"})
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "(mark 1 1)", actions[0].String())
	assert.Equal(t, "noop", actions[1].String())
}

func Test_ParseActions_malformed(t *testing.T) {
	in := term.NewInterner()
	_, err := wire.ParseActions(in, []string{"(mark 1"})
	require.Error(t, err)
}

func Test_InfoResponse(t *testing.T) {
	assert.Equal(t, "((name foo) (status available))", wire.InfoResponse("foo", false))
	assert.Equal(t, "((name foo) (status busy))", wire.InfoResponse("foo", true))
}
