package gdl

import (
	"strconv"

	"github.com/dekarrin/ggpagent/internal/term"
)

const (
	functorImplies = "<="
	functorNot     = "not"
)

// Parse parses src as a sequence of top-level GDL statements (facts and
// "(<= head body...)" rules) and returns the resulting RuleSet. in is used
// to intern all atom/functor names encountered; it should be the same
// Interner the caller intends to use for extensional terms (true/does) and
// queries, since Terms from different Interners never compare equal.
//
// Parse is total on well-formed input and returns a *ParseError carrying a
// byte offset on malformed input.
func Parse(in *term.Interner, src string) (*RuleSet, error) {
	p := &parser{in: in, toks: lex(src)}

	rs := &RuleSet{Interner: in}
	for p.peek().class != tokEOF {
		clause, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		rs.Clauses = append(rs.Clauses, clause)
	}
	return rs, nil
}

// ParseTerm parses src as exactly one top-level term -- an atom, integer,
// variable, or parenthesized compound -- without the clause desugaring
// Parse applies. It is for contexts that carry GDL's term syntax but are
// not themselves GDL rule sets, such as the wire protocol's envelope
// messages ("(info)", "(start ...)").
func ParseTerm(in *term.Interner, src string) (term.Term, error) {
	p := &parser{in: in, toks: lex(src)}
	vars := make(map[string]int32)
	var nextVar int32

	t, err := p.parseTerm(vars, &nextVar)
	if err != nil {
		return term.Term{}, err
	}
	if p.peek().class != tokEOF {
		tok := p.peek()
		return term.Term{}, parseErrorf(tok.pos, "unexpected trailing input after term, found %s %q", tok.class, tok.text)
	}
	return t, nil
}

type parser struct {
	in   *term.Interner
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.class != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(class tokenClass) (token, error) {
	t := p.peek()
	if t.class != class {
		return token{}, parseErrorf(t.pos, "expected %s, found %s %q", class, t.class, t.text)
	}
	return p.next(), nil
}

// parseStatement parses exactly one top-level "(...)" form into a Clause,
// using a variable-name scope that is fresh for this statement only.
func (p *parser) parseStatement() (Clause, error) {
	if p.peek().class != tokLParen {
		t := p.peek()
		return Clause{}, parseErrorf(t.pos, "expected top-level statement to start with '(', found %s %q", t.class, t.text)
	}

	vars := make(map[string]int32)
	var nextVar int32

	stmt, err := p.parseTerm(vars, &nextVar)
	if err != nil {
		return Clause{}, err
	}

	return termToClause(stmt)
}

func termToClause(t term.Term) (Clause, error) {
	if t.Kind() == term.Compound && t.Functor() == functorImplies {
		args := t.Args()
		if len(args) < 1 {
			return Clause{}, parseErrorf(0, "'<=' requires a head")
		}
		head := args[0]
		body := make([]Literal, 0, len(args)-1)
		for _, b := range args[1:] {
			body = append(body, toLiteral(b))
		}
		return Clause{Head: head, Body: body}, nil
	}

	// a bare fact: the whole statement is the head, with an empty body.
	return Clause{Head: t}, nil
}

func toLiteral(t term.Term) Literal {
	if t.Kind() == term.Compound && t.Functor() == functorNot && t.Arity() == 1 {
		return Literal{Atom: t.Arg(0), Negated: true}
	}
	return Literal{Atom: t}
}

// parseTerm parses one term: an atom, integer, variable, or a fully
// parenthesized compound. vars/nextVar track the statement-local variable
// scope so that repeated occurrences of "?x" within one statement share a
// Variable id.
func (p *parser) parseTerm(vars map[string]int32, nextVar *int32) (term.Term, error) {
	t := p.peek()

	switch t.class {
	case tokInteger:
		p.next()
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return term.Term{}, parseErrorf(t.pos, "malformed integer literal %q: %s", t.text, err)
		}
		return term.NewInteger(n), nil

	case tokVariable:
		p.next()
		id, ok := vars[t.text]
		if !ok {
			id = *nextVar
			*nextVar++
			vars[t.text] = id
		}
		return term.NewVariable(id, t.text), nil

	case tokSymbol:
		p.next()
		return term.NewAtom(p.in, t.text), nil

	case tokLParen:
		return p.parseCompound(vars, nextVar)

	case tokRParen:
		return term.Term{}, parseErrorf(t.pos, "unexpected ')'")

	default: // tokEOF
		return term.Term{}, parseErrorf(t.pos, "unexpected end of input, expected a term")
	}
}

func (p *parser) parseCompound(vars map[string]int32, nextVar *int32) (term.Term, error) {
	open, err := p.expect(tokLParen)
	if err != nil {
		return term.Term{}, err
	}

	functorTok := p.peek()
	if functorTok.class != tokSymbol {
		return term.Term{}, parseErrorf(functorTok.pos, "expected functor name after '(', found %s %q", functorTok.class, functorTok.text)
	}
	p.next()

	var args []term.Term
	for p.peek().class != tokRParen {
		if p.peek().class == tokEOF {
			return term.Term{}, parseErrorf(open.pos, "unterminated '(' opened here")
		}
		arg, err := p.parseTerm(vars, nextVar)
		if err != nil {
			return term.Term{}, err
		}
		args = append(args, arg)
	}
	p.next() // consume ')'

	if len(args) == 0 {
		// zero-arity forms like "(terminal)" are written as parenthesized
		// atoms in GDL rule bodies; treat them as the bare atom so they
		// unify uniformly with "terminal" used elsewhere.
		return term.NewAtom(p.in, functorTok.text), nil
	}
	return term.NewCompound(p.in, functorTok.text, args...), nil
}
