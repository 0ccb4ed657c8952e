// Package ggame wraps a compiled GDL reasoner.Program into the immutable
// Game/State value objects used by players and search algorithms: role and
// action enumeration, initial state construction, and joint-move
// application.
package ggame

import (
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/reasoner"
	"github.com/dekarrin/ggpagent/internal/term"
)

// MaxUtility and MinUtility bound every goal/2 value a rule set may define;
// a rule set that asserts a goal outside this range is malformed.
const (
	MaxUtility = 100
	MinUtility = 0
)

// Game is one compiled rule set: the reasoner plus the role and base/input
// enumerations computed once at construction, since GDL requires those to
// be evaluable without true/does (spec invariant (c)).
type Game struct {
	interner *term.Interner
	reasoner *reasoner.Reasoner
	roles    []term.Term
	bases    []term.Term
	inputs   map[string][]term.Term // role.String() -> all_actions(role)
}

// Create parses and compiles src, then precomputes roles, base
// propositions, and each role's full action space.
func Create(src string) (*Game, error) {
	in := term.NewInterner()
	rs, err := gdl.Parse(in, src)
	if err != nil {
		return nil, err
	}
	prog, err := reasoner.Compile(rs)
	if err != nil {
		return nil, err
	}
	r := reasoner.New(prog)

	roles, err := r.AllGround("role", 1, reasoner.Context{}, nil)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, ggerrors.New(ggerrors.KindMalformedGDL, "rule set declares no roles")
	}

	bases, err := r.AllGround("base", 1, reasoner.Context{}, nil)
	if err != nil {
		return nil, err
	}

	inputs := make(map[string][]term.Term, len(roles))
	for _, role := range roles {
		q := term.NewCompound(in, "input", role, term.NewVariable(0, "?a"))
		sols, err := r.Solutions(q, reasoner.Context{}, nil)
		if err != nil {
			return nil, err
		}
		actions := make([]term.Term, len(sols))
		for i, s := range sols {
			actions[i] = s.Arg(1)
		}
		inputs[role.String()] = actions
	}

	return &Game{interner: in, reasoner: r, roles: roles, bases: bases, inputs: inputs}, nil
}

// Roles returns the game's roles in the order the rule set's role/1 facts
// are solved, which is the order they appear in the rules.
func (g *Game) Roles() []term.Term { return g.roles }

// BasePropositions returns every base/1 proposition, the game's full state
// vocabulary.
func (g *Game) BasePropositions() []term.Term { return g.bases }

// AllActions returns the complete action space declared for role via
// input/2, independent of whether any particular action is currently
// legal.
func (g *Game) AllActions(role term.Term) []term.Term {
	return g.inputs[role.String()]
}

// Interner returns the term interner this game's terms are scoped to.
// Terms from one Game are never comparable to another's.
func (g *Game) Interner() *term.Interner { return g.interner }

// InitialState returns the state defined by the rule set's init/1 facts.
func (g *Game) InitialState() (*State, error) {
	truth, err := g.reasoner.AllGround("init", 1, reasoner.Context{}, nil)
	if err != nil {
		return nil, err
	}
	args := make([]term.Term, len(truth))
	for i, t := range truth {
		args[i] = t.Arg(0)
	}
	return &State{game: g, truth: args}, nil
}

// Move is one role's chosen action.
type Move struct {
	Role   term.Term
	Action term.Term
}
