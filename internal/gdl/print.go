package gdl

import (
	"strings"

	"github.com/dekarrin/ggpagent/internal/term"
)

// Print renders rs back to prefix GDL surface syntax, one statement per
// line. Printing a parsed RuleSet and re-parsing it yields an equivalent
// RuleSet (same clauses up to variable renaming and body-conjunction
// associativity), since both directions go through the same flattened
// Clause{Head, Body} shape.
func Print(rs *RuleSet) string {
	var sb strings.Builder
	for i, c := range rs.Clauses {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(PrintClause(c))
	}
	return sb.String()
}

// PrintClause renders a single Clause. A fact prints as its head term; a
// rule prints as "(<= head body1 body2 ...)", with negated literals
// rendered as "(not atom)".
func PrintClause(c Clause) string {
	if c.IsFact() {
		return printTerm(c.Head)
	}

	var sb strings.Builder
	sb.WriteString("(<= ")
	sb.WriteString(printTerm(c.Head))
	for _, lit := range c.Body {
		sb.WriteByte(' ')
		sb.WriteString(printLiteral(lit))
	}
	sb.WriteByte(')')
	return sb.String()
}

func printLiteral(lit Literal) string {
	if lit.Negated {
		return "(not " + printTerm(lit.Atom) + ")"
	}
	return printTerm(lit.Atom)
}

// printTerm is the inverse of parseTerm: it must agree with the parser on
// how zero-arity compounds collapse to bare atoms.
func printTerm(t term.Term) string {
	return t.String()
}
