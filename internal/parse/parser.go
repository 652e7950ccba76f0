package parse

import (
	"fmt"

	"github.com/gitrdm/goprolog/internal/term"
)

// Fact is a parsed plain clause (a fact if Body is nil, else a rule).
type Fact struct {
	Head term.Term
	Body []term.Term
}

// DCGRule is a parsed "Head --> Body." grammar rule, kept separate from
// Fact so the caller can route it through engine.AddDCGRule instead of
// engine.AddClause.
type DCGRule struct {
	Head      term.Term
	BodyElems []term.Term
}

// opInfo describes one infix/prefix operator's precedence and
// associativity, loosely modeled on ISO Prolog's operator table but
// trimmed to the operators this engine's solver actually recognizes.
type opInfo struct {
	prec  int
	rassoc bool // right-associative (xfy); false means left (yfx) or non-assoc (xfx)
}

var infixOps = map[string]opInfo{
	":-":  {1200, false},
	"-->": {1200, false},
	";":   {1100, true},
	"->":  {1050, true},
	",":   {1000, true},
	"=":   {700, false},
	"\\=": {700, false},
	"==":  {700, false},
	"is":  {700, false},
	">":   {700, false},
	"<":   {700, false},
	">=":  {700, false},
	"=<":  {700, false},
	"=:=": {700, false},
	"=\\=": {700, false},
	"+":   {500, false},
	"-":   {500, false},
	"*":   {400, false},
	"/":   {400, false},
	"//":  {400, false},
	"div": {400, false},
	"mod": {400, false},
	"rem": {400, false},
}

var prefixOps = map[string]int{
	"-":  200,
	"\\+": 900,
	"not": 900,
}

// Parser reads a sequence of clauses from source text.
type Parser struct {
	lex *lexer
	tok token
}

// NewParser returns a parser positioned at the start of src.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// AtEOF reports whether the parser has consumed all input.
func (p *Parser) AtEOF() bool {
	return p.tok.kind == tokEOF
}

// Next reads and classifies the next top-level clause, returning either a
// *Fact or a *DCGRule as result. Returns (nil, nil, io.EOF)-shaped
// behavior via AtEOF rather than a sentinel error; callers should check
// AtEOF before calling Next.
func (p *Parser) Next() (*Fact, *DCGRule, error) {
	t, err := p.parseExpr(1200)
	if err != nil {
		return nil, nil, err
	}
	if err := p.expectPunct("."); err != nil {
		return nil, nil, err
	}

	if c, ok := t.(*term.Compound); ok && c.Functor == ":-" && len(c.Args) == 2 {
		return &Fact{Head: c.Args[0], Body: flattenConjunction(c.Args[1])}, nil, nil
	}
	if c, ok := t.(*term.Compound); ok && c.Functor == "-->" && len(c.Args) == 2 {
		return nil, &DCGRule{Head: c.Args[0], BodyElems: flattenConjunction(c.Args[1])}, nil
	}
	return &Fact{Head: t}, nil, nil
}

// flattenConjunction splits a right-associative chain of ","-compounds
// into its individual elements, in left-to-right order.
func flattenConjunction(t term.Term) []term.Term {
	c, ok := t.(*term.Compound)
	if !ok || c.Functor != "," || len(c.Args) != 2 {
		return []term.Term{t}
	}
	return append([]term.Term{c.Args[0]}, flattenConjunction(c.Args[1])...)
}

func (p *Parser) expectPunct(text string) error {
	if p.tok.kind != tokPunct || p.tok.text != text {
		return fmt.Errorf("parse: expected %q at line %d, got %q", text, p.tok.line, p.tok.text)
	}
	return p.advance()
}

// parseExpr implements operator-precedence parsing up to maxPrec.
func (p *Parser) parseExpr(maxPrec int) (term.Term, error) {
	left, err := p.parsePrefix(maxPrec)
	if err != nil {
		return nil, err
	}
	for {
		opName, ok := p.peekInfixOp()
		if !ok {
			return left, nil
		}
		info := infixOps[opName]
		if info.prec > maxPrec {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		nextMax := info.prec - 1
		if info.rassoc {
			nextMax = info.prec
		}
		right, err := p.parseExpr(nextMax)
		if err != nil {
			return nil, err
		}
		left = term.Comp(opName, left, right)
	}
}

func (p *Parser) peekInfixOp() (string, bool) {
	switch p.tok.kind {
	case tokSymbol, tokAtom:
		if p.tok.text == ";" {
			return ";", true
		}
		if _, ok := infixOps[p.tok.text]; ok {
			return p.tok.text, true
		}
	case tokPunct:
		if p.tok.text == "," {
			return ",", true
		}
	}
	return "", false
}

func (p *Parser) parsePrefix(maxPrec int) (term.Term, error) {
	if (p.tok.kind == tokSymbol || p.tok.kind == tokAtom) && p.tok.text != "-" {
		if prec, ok := prefixOps[p.tok.text]; ok && prec <= maxPrec {
			name := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr(prec)
			if err != nil {
				return nil, err
			}
			return term.Comp(name, arg), nil
		}
	}
	// "-" is ambiguous between prefix negation and the infix operator; it
	// is only a prefix when immediately followed by a primary term rather
	// than sitting where an infix operator is expected (callers only
	// invoke parsePrefix where a primary is expected, so treat it as
	// prefix here).
	if p.tok.kind == tokSymbol && p.tok.text == "-" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokInt {
			n, err := parseIntText(p.tok.text)
			if err != nil {
				return nil, err
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return term.Int(-n), nil
		}
		if p.tok.kind == tokFloat {
			f, err := parseFloatText(p.tok.text)
			if err != nil {
				return nil, err
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return term.Comp("-", term.Float(f)), nil
		}
		arg, err := p.parseExpr(200)
		if err != nil {
			return nil, err
		}
		return term.Comp("-", arg), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (term.Term, error) {
	switch p.tok.kind {
	case tokInt:
		n, err := parseIntText(p.tok.text)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.Int(n), nil

	case tokFloat:
		f, err := parseFloatText(p.tok.text)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.Float(f), nil

	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.Str(s), nil

	case tokVar:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "_" {
			return term.Var(fmt.Sprintf("_Anon%d", p.lex.pos)), nil
		}
		return term.Var(name), nil

	case tokAtom, tokQuotedAtom:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokPunct && p.tok.text == "(" {
			return p.parseArgsAndBuild(name)
		}
		return term.Atom(name), nil

	case tokPunct:
		switch p.tok.text {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpr(1200)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "[":
			return p.parseList()
		case "{":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind == tokPunct && p.tok.text == "}" {
				if err := p.advance(); err != nil {
					return nil, err
				}
				return term.Atom("{}"), nil
			}
			inner, err := p.parseExpr(1200)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("}"); err != nil {
				return nil, err
			}
			return term.Comp("{}", inner), nil
		}
	}
	return nil, fmt.Errorf("parse: unexpected token %q at line %d", p.tok.text, p.tok.line)
}

func (p *Parser) parseArgsAndBuild(name string) (term.Term, error) {
	if err := p.advance(); err != nil { // consume "("
		return nil, err
	}
	var args []term.Term
	for {
		arg, err := p.parseExpr(999)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok.kind == tokPunct && p.tok.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &term.Compound{Functor: name, Args: args}, nil
}

func (p *Parser) parseList() (term.Term, error) {
	if err := p.advance(); err != nil { // consume "["
		return nil, err
	}
	if p.tok.kind == tokPunct && p.tok.text == "]" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.EmptyList, nil
	}
	var elems []term.Term
	for {
		e, err := p.parseExpr(999)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.tok.kind == tokPunct && p.tok.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	tail := term.Term(term.EmptyList)
	if p.tok.kind == tokPunct && p.tok.text == "|" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseExpr(999)
		if err != nil {
			return nil, err
		}
		tail = t
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return term.List(tail, elems...), nil
}
