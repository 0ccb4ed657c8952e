// Package reasoner implements a stratified-negation Datalog evaluator over
// GDL rule sets: given a compiled Program and a per-query Context of
// extensional true/does facts, it answers proves/solutions/all-ground
// queries via goal-directed (SLD-style) backward resolution with a
// trail-based substitution environment.
package reasoner

import (
	"github.com/dekarrin/ggpagent/internal/clock"
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/term"
)

const (
	predTrue     = "true"
	predDoes     = "does"
	predDistinct = "distinct"
	predSucc     = "succ"
)

// maxRecursionDepth bounds nested clause-body resolution. Stratification
// checking rejects negation cycles at compile time, but a purely positive
// cycle (e.g. symmetric adjacency feeding a transitive-closure rule) is
// legal GDL and must still be stopped from recursing forever.
const maxRecursionDepth = 100000

// RoleAction is one role's move, the extensional content of does/2.
type RoleAction struct {
	Role   term.Term
	Action term.Term
}

// Context is the extensional facts a query is evaluated against: the
// current set of true base propositions and, if evaluating next/legal/goal
// mid-move, the joint move under consideration. true/1 and does/2 are never
// resolved against the rule set's own clauses; they are injected from here.
type Context struct {
	Truth []term.Term
	Does  []RoleAction
}

// Program is a rule set after stratification checking and clause indexing,
// ready to be queried many times. The reasoner is stateless across calls;
// all per-query state lives in Context and the transient env.
type Program struct {
	interner *term.Interner
	preds    map[predKey]*predIndex
}

// Compile checks rs for stratification violations and builds the clause
// index. It is called once per Game, at rule-set construction.
func Compile(rs *gdl.RuleSet) (*Program, error) {
	if err := checkStratification(rs.Clauses); err != nil {
		return nil, err
	}

	p := &Program{interner: rs.Interner, preds: make(map[predKey]*predIndex)}
	for _, c := range rs.Clauses {
		name, arity := c.HeadPredicate()
		key := predKey{name, arity}
		idx, ok := p.preds[key]
		if !ok {
			idx = newPredIndex()
			p.preds[key] = idx
		}
		idx.add(c)
	}
	return p, nil
}

// Reasoner answers queries against a compiled Program. It carries no
// mutable state of its own and may be used concurrently by multiple
// goroutines evaluating different Contexts (each call allocates its own
// env).
type Reasoner struct {
	prog *Program
}

// New returns a Reasoner for the given compiled Program.
func New(prog *Program) *Reasoner {
	return &Reasoner{prog: prog}
}

// Proves reports whether the ground query q holds under ctx.
func (r *Reasoner) Proves(q term.Term, ctx Context, tmr *clock.Timer) (bool, error) {
	e := newEnv()
	q = e.claim(q)
	found := false
	_, err := r.solveAtom(q, e, ctx, tmr, func() (bool, error) {
		found = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Solutions returns every ground instantiation of q that holds under ctx.
// Solution order is deterministic for a given Program and Context (context
// facts are tried in the order given; clauses in index order, which for a
// query with an atom or integer first argument is the matching bucket before
// the variable-headed clauses) but is not otherwise specified.
func (r *Reasoner) Solutions(q term.Term, ctx Context, tmr *clock.Timer) ([]term.Term, error) {
	e := newEnv()
	q = e.claim(q)
	var out []term.Term
	_, err := r.solveAtom(q, e, ctx, tmr, func() (bool, error) {
		out = append(out, e.resolve(q))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllGround is equivalent to Solutions(pred(X1,...,Xarity), ctx, tmr) for
// fresh variables X1..Xarity.
func (r *Reasoner) AllGround(pred string, arity int, ctx Context, tmr *clock.Timer) ([]term.Term, error) {
	q := queryTemplate(r.prog.interner, pred, arity)
	return r.Solutions(q, ctx, tmr)
}

func queryTemplate(in *term.Interner, pred string, arity int) term.Term {
	if arity == 0 {
		return term.NewAtom(in, pred)
	}
	args := make([]term.Term, arity)
	for i := range args {
		args[i] = term.NewVariable(int32(i), "")
	}
	return term.NewCompound(in, pred, args...)
}

// solve resolves goals[idx:] in order, invoking cont for every full
// solution of the conjunction. It returns (stop, err) where stop mirrors
// whatever the innermost cont() returned, letting callers like Proves abort
// the search after the first answer.
func (r *Reasoner) solve(goals []gdl.Literal, idx int, e *env, ctx Context, tmr *clock.Timer, cont func() (bool, error)) (bool, error) {
	if err := tmr.Check(); err != nil {
		return false, err
	}
	if idx == len(goals) {
		return cont()
	}

	lit := goals[idx]
	if lit.Negated {
		mark := e.mark()
		found := false
		_, err := r.solveAtom(lit.Atom, e, ctx, tmr, func() (bool, error) {
			found = true
			return true, nil
		})
		e.undo(mark)
		if err != nil {
			return false, err
		}
		if found {
			return false, nil
		}
		return r.solve(goals, idx+1, e, ctx, tmr, cont)
	}

	return r.solveAtom(lit.Atom, e, ctx, tmr, func() (bool, error) {
		return r.solve(goals, idx+1, e, ctx, tmr, cont)
	})
}

// solveAtom resolves one positive literal against extensional facts,
// builtins, or indexed clauses, invoking cont once per solution found.
func (r *Reasoner) solveAtom(atom term.Term, e *env, ctx Context, tmr *clock.Timer, cont func() (bool, error)) (bool, error) {
	if err := tmr.Check(); err != nil {
		return false, err
	}

	resolved := e.resolve(atom)
	name := resolved.Functor()
	arity := resolved.Arity()

	switch {
	case name == predTrue && arity == 1:
		return r.solveTrue(resolved, e, ctx, cont)
	case name == predDoes && arity == 2:
		return r.solveDoes(resolved, e, ctx, cont)
	case name == predDistinct && arity == 2:
		return solveDistinct(resolved, e, cont)
	case name == predSucc && arity == 2:
		return solveSucc(resolved, e, cont)
	case isComparison(name) && arity == 2:
		return solveComparison(name, resolved, e, cont)
	}

	idx, ok := r.prog.preds[predKey{name, arity}]
	if !ok {
		return false, nil // predicate has no clauses: closed-world false
	}

	e.depth++
	if e.depth > maxRecursionDepth {
		e.depth--
		return false, ggerrors.Newf(ggerrors.KindRecursionLimit, "recursion depth exceeded %d while resolving %s/%d", maxRecursionDepth, name, arity)
	}
	defer func() { e.depth-- }()

	for _, entry := range idx.candidates(resolved) {
		mark := e.mark()
		offset := e.freshOffset(entry.varSpan)

		head := rename(entry.clause.Head, offset)
		if !unify(resolved, head, e) {
			e.undo(mark)
			continue
		}

		body := make([]gdl.Literal, len(entry.clause.Body))
		for i, l := range entry.clause.Body {
			body[i] = renameLiteral(l, offset)
		}

		stop, err := r.solve(body, 0, e, ctx, tmr, cont)
		e.undo(mark)
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}

func (r *Reasoner) solveTrue(resolved term.Term, e *env, ctx Context, cont func() (bool, error)) (bool, error) {
	arg := resolved.Arg(0)
	for _, fact := range ctx.Truth {
		mark := e.mark()
		if unify(arg, fact, e) {
			stop, err := cont()
			if stop || err != nil {
				e.undo(mark)
				return stop, err
			}
		}
		e.undo(mark)
	}
	return false, nil
}

func (r *Reasoner) solveDoes(resolved term.Term, e *env, ctx Context, cont func() (bool, error)) (bool, error) {
	roleArg, actionArg := resolved.Arg(0), resolved.Arg(1)
	for _, ra := range ctx.Does {
		mark := e.mark()
		if unify(roleArg, ra.Role, e) && unify(actionArg, ra.Action, e) {
			stop, err := cont()
			if stop || err != nil {
				e.undo(mark)
				return stop, err
			}
		}
		e.undo(mark)
	}
	return false, nil
}
