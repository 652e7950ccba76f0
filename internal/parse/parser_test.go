package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/term"
)

func parseOneFact(t *testing.T, src string) *Fact {
	t.Helper()
	p, err := NewParser(src)
	require.NoError(t, err)
	fact, dcgRule, err := p.Next()
	require.NoError(t, err)
	require.Nil(t, dcgRule)
	return fact
}

func TestParseFact(t *testing.T) {
	fact := parseOneFact(t, "parent(tom, bob).")
	c := fact.Head.(*term.Compound)
	require.Equal(t, "parent", c.Functor)
	require.Equal(t, []term.Term{term.Atom("tom"), term.Atom("bob")}, c.Args)
	require.Nil(t, fact.Body)
}

func TestParseRuleSplitsConjunctionBody(t *testing.T) {
	fact := parseOneFact(t, "grandparent(X, Z) :- parent(X, Y), parent(Y, Z).")
	require.Len(t, fact.Body, 2)
	require.Equal(t, "parent", fact.Body[0].(*term.Compound).Functor)
	require.Equal(t, "parent", fact.Body[1].(*term.Compound).Functor)
}

func TestParseList(t *testing.T) {
	fact := parseOneFact(t, "p([1, 2, 3]).")
	c := fact.Head.(*term.Compound)
	elems, tail := term.Slice(c.Args[0])
	require.Equal(t, term.EmptyList, tail)
	require.Equal(t, []term.Term{term.Int(1), term.Int(2), term.Int(3)}, elems)
}

func TestParseOperatorPrecedence(t *testing.T) {
	fact := parseOneFact(t, "p(X) :- X is 1 + 2 * 3.")
	is := fact.Body[0].(*term.Compound)
	require.Equal(t, "is", is.Functor)
	rhs := is.Args[1].(*term.Compound)
	require.Equal(t, "+", rhs.Functor)
	mul := rhs.Args[1].(*term.Compound)
	require.Equal(t, "*", mul.Functor)
}

func TestParseDCGRule(t *testing.T) {
	p, err := NewParser("greeting --> [hello], [world].")
	require.NoError(t, err)
	fact, rule, err := p.Next()
	require.NoError(t, err)
	require.Nil(t, fact)
	require.Equal(t, term.Atom("greeting"), rule.Head)
	require.Len(t, rule.BodyElems, 2)
}

func TestParseNegativeNumber(t *testing.T) {
	fact := parseOneFact(t, "p(-5).")
	c := fact.Head.(*term.Compound)
	require.Equal(t, term.Int(-5), c.Args[0])
}

func TestParseQuotedAtomAndComment(t *testing.T) {
	fact := parseOneFact(t, "'has space'(a). % trailing comment\n")
	c := fact.Head.(*term.Compound)
	require.Equal(t, "has space", c.Functor)
}
