package gdl

import (
	"testing"

	"github.com/dekarrin/ggpagent/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_facts_and_rules(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		expectFacts int
		expectRules int
	}{
		{name: "single role fact", src: "(role robot)", expectFacts: 1},
		{name: "two facts", src: "(role white) (role black)", expectFacts: 2},
		{
			name:        "one rule with two body literals",
			src:         "(<= (legal ?r noop) (role ?r) (true (step 1)))",
			expectRules: 1,
		},
		{
			name:        "rule with negation",
			src:         "(<= (legal ?r noop) (not (role ?r)))",
			expectRules: 1,
		},
		{name: "zero-arity body literal", src: "(<= win (terminal))", expectRules: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := term.NewInterner()
			rs, err := Parse(in, tc.src)
			require.NoError(t, err)

			var facts, rules int
			for _, c := range rs.Clauses {
				if c.IsFact() {
					facts++
				} else {
					rules++
				}
			}
			assert.Equal(t, tc.expectFacts, facts)
			assert.Equal(t, tc.expectRules, rules)
		})
	}
}

func Test_Parse_variable_scope_is_per_statement(t *testing.T) {
	in := term.NewInterner()
	rs, err := Parse(in, "(<= (legal ?r noop) (role ?r)) (<= (legal ?r noop2) (role ?r))")
	require.NoError(t, err)
	require.Len(t, rs.Clauses, 2)

	v1 := rs.Clauses[0].Body[0].Atom.Arg(0)
	v2 := rs.Clauses[1].Body[0].Atom.Arg(0)

	// Both print as "?r" but must not be considered the same variable
	// across clauses -- each statement gets a fresh id space starting at 0,
	// so they happen to share an id here, which is fine: identity is never
	// compared across clauses.
	assert.Equal(t, "?r", v1.String())
	assert.Equal(t, "?r", v2.String())
}

func Test_Parse_malformed_input_reports_offset(t *testing.T) {
	in := term.NewInterner()
	_, err := Parse(in, "(role robot")

	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	// the error points at the unterminated '(' itself
	assert.Equal(t, 0, perr.Offset)
}

func Test_Parse_unexpected_close_paren(t *testing.T) {
	in := term.NewInterner()
	_, err := Parse(in, "(role robot))")

	require.Error(t, err)
}

func Test_Print_roundtrip(t *testing.T) {
	src := "(<= (legal ?r noop) (role ?r) (not (true (step 1))))"

	in := term.NewInterner()
	rs1, err := Parse(in, src)
	require.NoError(t, err)

	printed := Print(rs1)

	in2 := term.NewInterner()
	rs2, err := Parse(in2, printed)
	require.NoError(t, err)

	require.Len(t, rs2.Clauses, 1)
	assert.False(t, rs2.Clauses[0].IsFact())
	assert.Equal(t, "legal", rs2.Clauses[0].Head.Functor())
	assert.Len(t, rs2.Clauses[0].Body, 2)
	assert.True(t, rs2.Clauses[0].Body[1].Negated)
}

func Test_Parse_integers_and_atoms(t *testing.T) {
	in := term.NewInterner()
	rs, err := Parse(in, "(cell 1 1 x)")
	require.NoError(t, err)

	head := rs.Clauses[0].Head
	require.Equal(t, term.Compound, head.Kind())
	assert.Equal(t, int64(1), head.Arg(0).Int())
	assert.Equal(t, "x", head.Arg(2).Functor())
}
