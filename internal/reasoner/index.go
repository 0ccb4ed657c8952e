package reasoner

import (
	"strconv"

	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/term"
)

type predKey struct {
	name  string
	arity int
}

// clauseEntry pairs a clause with the number of distinct variable ids it
// uses, precomputed at compile time so clause instantiation (renaming
// variables apart from the caller's environment) is an O(1) offset bump
// instead of a fresh scan per use.
type clauseEntry struct {
	clause  gdl.Clause
	varSpan int32
}

// predIndex holds all clauses for one (name, arity) head, bucketed by the
// functor/value of their first argument when it is ground, so a query with
// a ground first argument only has to try the matching bucket plus the
// "variable-headed" bucket instead of every clause for the predicate.
type predIndex struct {
	all        []clauseEntry
	byFirstArg map[string][]clauseEntry
	varHeaded  []clauseEntry // first arg is a variable, or predicate is 0-ary
}

func newPredIndex() *predIndex {
	return &predIndex{byFirstArg: make(map[string][]clauseEntry)}
}

func (pi *predIndex) add(c gdl.Clause) {
	entry := clauseEntry{clause: c, varSpan: clauseVarSpan(c)}
	pi.all = append(pi.all, entry)

	if c.Head.Arity() == 0 {
		pi.varHeaded = append(pi.varHeaded, entry)
		return
	}

	key, ok := firstArgKey(c.Head.Arg(0))
	if !ok {
		pi.varHeaded = append(pi.varHeaded, entry)
		return
	}
	pi.byFirstArg[key] = append(pi.byFirstArg[key], entry)
}

// firstArgKey returns a bucket key for t if t is ground enough to index on
// (an Atom or Integer); ok is false for Variable or Compound first
// arguments, which must fall back to the variable-headed bucket.
func firstArgKey(t term.Term) (string, bool) {
	switch t.Kind() {
	case term.Atom:
		return "a:" + t.Functor(), true
	case term.Integer:
		return "i:" + strconv.FormatInt(t.Int(), 10), true
	default:
		return "", false
	}
}

// candidates returns the clauses worth trying to resolve query against.
func (pi *predIndex) candidates(query term.Term) []clauseEntry {
	if query.Arity() == 0 {
		return pi.all
	}
	key, ok := firstArgKey(query.Arg(0))
	if !ok {
		return pi.all
	}
	bucket := pi.byFirstArg[key]
	if len(pi.varHeaded) == 0 {
		return bucket
	}
	out := make([]clauseEntry, 0, len(bucket)+len(pi.varHeaded))
	out = append(out, bucket...)
	out = append(out, pi.varHeaded...)
	return out
}

func clauseVarSpan(c gdl.Clause) int32 {
	var max int32 = -1
	var walk func(t term.Term)
	walk = func(t term.Term) {
		if t.Kind() == term.Variable {
			if t.VarID() > max {
				max = t.VarID()
			}
			return
		}
		for _, a := range t.Args() {
			walk(a)
		}
	}
	walk(c.Head)
	for _, lit := range c.Body {
		walk(lit.Atom)
	}
	return max + 1
}
