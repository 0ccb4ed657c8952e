package reasoner

import (
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/term"
)

// env is the substitution/trail buffer used while resolving one query. It
// is owned exclusively by one evaluation call and reused across
// backtracking via mark/undo instead of being reallocated.
type env struct {
	subst map[int32]term.Term
	trail []int32

	// freshCounter hands out the next renaming offset used to make one
	// clause instantiation's variables disjoint from every other's. Clause
	// variable ids are only unique within their own clause (the parser
	// resets its counter per statement), so every clause use needs its own
	// offset block.
	freshCounter int32

	// depth counts nested clause-body resolutions, guarding against a
	// cyclic or left-recursive rule set looping forever instead of failing.
	depth int
}

func newEnv() *env {
	return &env{subst: make(map[int32]term.Term, 32)}
}

func (e *env) mark() int {
	return len(e.trail)
}

func (e *env) undo(mark int) {
	for i := len(e.trail) - 1; i >= mark; i-- {
		delete(e.subst, e.trail[i])
	}
	e.trail = e.trail[:mark]
}

func (e *env) bind(id int32, t term.Term) {
	e.subst[id] = t
	e.trail = append(e.trail, id)
}

// resolve follows variable bindings (and rebuilds compounds with resolved
// arguments) until it reaches a term that is either non-Variable or an
// unbound Variable.
func (e *env) resolve(t term.Term) term.Term {
	for t.Kind() == term.Variable {
		bound, ok := e.subst[t.VarID()]
		if !ok {
			return t
		}
		t = bound
	}
	if t.Kind() == term.Compound {
		args := t.Args()
		var newArgs []term.Term
		for i, a := range args {
			r := e.resolve(a)
			if newArgs == nil && !r.Equal(a) {
				newArgs = make([]term.Term, len(args))
				copy(newArgs, args[:i])
			}
			if newArgs != nil {
				newArgs[i] = r
			}
		}
		if newArgs != nil {
			return term.NewCompound(t.Interner(), t.Functor(), newArgs...)
		}
	}
	return t
}

// rename shifts every Variable id in t by offset, used to make a freshly
// selected clause's variables disjoint from the caller's environment.
func rename(t term.Term, offset int32) term.Term {
	switch t.Kind() {
	case term.Variable:
		return term.NewVariable(t.VarID()+offset, t.VarName())
	case term.Compound:
		args := t.Args()
		newArgs := make([]term.Term, len(args))
		for i, a := range args {
			newArgs[i] = rename(a, offset)
		}
		return term.NewCompound(t.Interner(), t.Functor(), newArgs...)
	default:
		return t
	}
}

func renameLiteral(l gdl.Literal, offset int32) gdl.Literal {
	return gdl.Literal{Atom: rename(l.Atom, offset), Negated: l.Negated}
}

// termVarSpan returns one more than the largest Variable id appearing in t,
// or 0 if t is ground.
func termVarSpan(t term.Term) int32 {
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
	walk(t)
	return max + 1
}

func (e *env) freshOffset(span int32) int32 {
	off := e.freshCounter
	e.freshCounter += span + 1
	return off
}

// claim reserves a variable-id block disjoint from every clause instantiation
// this env will ever perform and renames t into it. It must be called once,
// on any externally-supplied query term, before the env renames its first
// clause — otherwise a caller-supplied variable id (e.g. 0) could alias a
// freshly instantiated clause variable that happens to land on the same id.
func (e *env) claim(t term.Term) term.Term {
	offset := e.freshOffset(termVarSpan(t))
	return rename(t, offset)
}

// unify attempts to unify a and b under e, recording bindings on the trail.
// On failure the caller is responsible for calling e.undo back to a mark
// taken before the attempt; unify does not roll back its own partial work.
func unify(a, b term.Term, e *env) bool {
	a = e.resolve(a)
	b = e.resolve(b)

	if a.Kind() == term.Variable {
		if b.Kind() == term.Variable && a.VarID() == b.VarID() {
			return true
		}
		e.bind(a.VarID(), b)
		return true
	}
	if b.Kind() == term.Variable {
		e.bind(b.VarID(), a)
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case term.Atom:
		return a.Equal(b)
	case term.Integer:
		return a.Int() == b.Int()
	case term.Compound:
		if a.Functor() != b.Functor() || a.Arity() != b.Arity() {
			return false
		}
		for i := 0; i < a.Arity(); i++ {
			if !unify(a.Arg(i), b.Arg(i), e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
