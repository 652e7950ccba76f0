package dcg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/dcg"
	"github.com/gitrdm/goprolog/internal/term"
)

func TestExpandThreadsNonTerminals(t *testing.T) {
	// greeting --> hello, name.
	clause := dcg.Expand(term.Atom("greeting"), []term.Term{
		term.Atom("hello"),
		term.Atom("name"),
	})

	head, ok := clause.Head.(*term.Compound)
	require.True(t, ok)
	require.Equal(t, "greeting", head.Functor)
	require.Len(t, head.Args, 2)

	require.Len(t, clause.Body, 2)
	g0 := clause.Body[0].(*term.Compound)
	require.Equal(t, "hello", g0.Functor)
	g1 := clause.Body[1].(*term.Compound)
	require.Equal(t, "name", g1.Functor)

	// The output variable of hello feeds the input variable of name.
	require.Equal(t, g0.Args[1], g1.Args[0])
	// The rule's own threading variables match head args.
	require.Equal(t, head.Args[0], g0.Args[0])
	require.Equal(t, head.Args[1], g1.Args[1])
}

func TestExpandTerminalList(t *testing.T) {
	// greeting --> [hello, world].
	clause := dcg.Expand(term.Atom("greeting"), []term.Term{
		term.List(term.EmptyList, term.Atom("hello"), term.Atom("world")),
	})
	require.Len(t, clause.Body, 1)
	eq := clause.Body[0].(*term.Compound)
	require.Equal(t, "=", eq.Functor)
}

func TestExpandBraceGoalPassesThroughUnchanged(t *testing.T) {
	// p --> { foo(X) }.
	inner := term.Comp("foo", term.Var("X"))
	clause := dcg.Expand(term.Atom("p"), []term.Term{
		term.Comp("{}", inner),
	})
	require.Len(t, clause.Body, 1)
	require.Equal(t, inner, clause.Body[0])
}

func TestExpandCallAppendsArgsToCompound(t *testing.T) {
	call := dcg.ExpandCall(term.Comp("np", term.Var("X")), term.Var("S0"), term.Var("S1"))
	c := call.(*term.Compound)
	require.Equal(t, "np", c.Functor)
	require.Equal(t, []term.Term{term.Var("X"), term.Var("S0"), term.Var("S1")}, c.Args)
}

func TestExpandCallAppendsArgsToAtom(t *testing.T) {
	call := dcg.ExpandCall(term.Atom("digit"), term.Var("S0"), term.Var("S1"))
	c := call.(*term.Compound)
	require.Equal(t, "digit", c.Functor)
	require.Equal(t, []term.Term{term.Var("S0"), term.Var("S1")}, c.Args)
}
