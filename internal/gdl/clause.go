// Package gdl parses and prints the Game Description Language: prefix
// s-expressions of the form "(<= head body...)" for rules and bare
// s-expressions for facts, with "?x"-style variables and integer/atom
// constants. See Parse and Print.
package gdl

import "github.com/dekarrin/ggpagent/internal/term"

// Literal is one conjunct of a clause body: a positive atom, or a negated
// one ("(not atom)" in the surface syntax).
type Literal struct {
	Atom    term.Term
	Negated bool
}

// Clause is a single GDL rule: Head :- Body (a fact if Body is empty).
type Clause struct {
	Head term.Term
	Body []Literal
}

// IsFact reports whether c has no body literals.
func (c Clause) IsFact() bool {
	return len(c.Body) == 0
}

// HeadPredicate returns the interned functor name of the clause head and
// its arity, the key used for indexing clauses by head predicate.
func (c Clause) HeadPredicate() (name string, arity int) {
	switch c.Head.Kind() {
	case term.Atom:
		return c.Head.Functor(), 0
	case term.Compound:
		return c.Head.Functor(), c.Head.Arity()
	default:
		panic("gdl: clause head must be an Atom or Compound")
	}
}

// RuleSet is a parsed, but not yet stratification-checked, collection of
// GDL clauses sharing one Interner.
type RuleSet struct {
	Clauses  []Clause
	Interner *term.Interner
}
