package reasoner

import (
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
)

// dependency is one edge head -> body-literal-predicate in the predicate
// dependency graph.
type dependency struct {
	to     predKey
	negated bool
}

// checkStratification verifies that `not` never forms a cycle through the
// predicate dependency graph, and that role/1, base/1, input/2, and init/1
// are evaluable without true/does. Positive recursion (e.g. transitive
// closure rules) is allowed even within a cycle; only a cycle that passes
// through at least one negated edge is a violation.
func checkStratification(clauses []gdl.Clause) error {
	graph := make(map[predKey][]dependency)
	allPreds := make(map[predKey]bool)

	for _, c := range clauses {
		name, arity := c.HeadPredicate()
		head := predKey{name, arity}
		allPreds[head] = true

		for _, lit := range c.Body {
			depName, depArity := literalPredicate(lit)
			dep := predKey{depName, depArity}
			allPreds[dep] = true
			graph[head] = append(graph[head], dependency{to: dep, negated: lit.Negated})
		}
	}

	sccs := tarjanSCCs(graph, allPreds)
	for _, scc := range sccs {
		if len(scc) == 0 {
			continue
		}
		inSCC := make(map[predKey]bool, len(scc))
		for _, p := range scc {
			inSCC[p] = true
		}
		for _, p := range scc {
			for _, d := range graph[p] {
				if d.negated && inSCC[d.to] {
					return ggerrors.Newf(ggerrors.KindStratificationViolated,
						"negation forms a cycle through predicate %s/%d", p.name, p.arity)
				}
			}
		}
	}

	for _, pred := range []string{"role", "base", "input", "init"} {
		for key := range allPreds {
			if key.name != pred {
				continue
			}
			if reaches(graph, key, predKey{"true", 1}) || reaches(graph, key, predKey{"does", 2}) {
				return ggerrors.Newf(ggerrors.KindStratificationViolated,
					"%s/%d must be evaluable without true/does", key.name, key.arity)
			}
		}
	}

	return nil
}

func literalPredicate(lit gdl.Literal) (string, int) {
	return lit.Atom.Functor(), lit.Atom.Arity()
}

func reaches(graph map[predKey][]dependency, from, to predKey) bool {
	visited := map[predKey]bool{}
	var dfs func(p predKey) bool
	dfs = func(p predKey) bool {
		if p == to {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		for _, d := range graph[p] {
			if dfs(d.to) {
				return true
			}
		}
		return false
	}
	return dfs(from)
}

// tarjanSCCs computes the strongly connected components of graph restricted
// to the predicates in allPreds, including trivial (single-node,
// non-self-looping) components so every predicate is classified.
func tarjanSCCs(graph map[predKey][]dependency, allPreds map[predKey]bool) [][]predKey {
	index := 0
	indices := map[predKey]int{}
	lowlink := map[predKey]int{}
	onStack := map[predKey]bool{}
	var stack []predKey
	var result [][]predKey

	var strongconnect func(v predKey)
	strongconnect = func(v predKey) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, d := range graph[v] {
			w := d.to
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []predKey
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			result = append(result, scc)
		}
	}

	for p := range allPreds {
		if _, seen := indices[p]; !seen {
			strongconnect(p)
		}
	}

	return result
}
