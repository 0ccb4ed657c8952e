package reasoner

import "github.com/dekarrin/ggpagent/internal/term"

// solveDistinct implements distinct/2: succeeds, without binding anything,
// when its two arguments are not structurally equal after substitution.
func solveDistinct(resolved term.Term, e *env, cont func() (bool, error)) (bool, error) {
	a := e.resolve(resolved.Arg(0))
	b := e.resolve(resolved.Arg(1))
	if a.Equal(b) {
		return false, nil
	}
	return cont()
}

// solveSucc implements succ/2: succ(X, Y) holds when Y = X + 1. Either
// argument may be the one supplied as ground; if both are unbound the
// predicate has infinitely many solutions and is treated as failing, since
// no GDL rule set can safely rely on enumerating them.
func solveSucc(resolved term.Term, e *env, cont func() (bool, error)) (bool, error) {
	x := e.resolve(resolved.Arg(0))
	y := e.resolve(resolved.Arg(1))

	mark := e.mark()
	defer e.undo(mark)

	switch {
	case x.Kind() == term.Integer:
		if !unify(y, term.NewInteger(x.Int()+1), e) {
			return false, nil
		}
	case y.Kind() == term.Integer:
		if !unify(x, term.NewInteger(y.Int()-1), e) {
			return false, nil
		}
	default:
		return false, nil
	}

	return cont()
}

var comparisonPredicates = map[string]func(a, b int64) bool{
	"<":  func(a, b int64) bool { return a < b },
	">":  func(a, b int64) bool { return a > b },
	"<=": func(a, b int64) bool { return a <= b },
	">=": func(a, b int64) bool { return a >= b },
}

func isComparison(name string) bool {
	_, ok := comparisonPredicates[name]
	return ok
}

// solveComparison implements the integer comparison builtins. Both
// arguments must already be ground integers; if not, the comparison simply
// fails rather than erroring, since GDL rule authors are expected to order
// body literals so arithmetic builtins see ground arguments.
func solveComparison(name string, resolved term.Term, e *env, cont func() (bool, error)) (bool, error) {
	a := e.resolve(resolved.Arg(0))
	b := e.resolve(resolved.Arg(1))
	if a.Kind() != term.Integer || b.Kind() != term.Integer {
		return false, nil
	}
	if !comparisonPredicates[name](a.Int(), b.Int()) {
		return false, nil
	}
	return cont()
}
