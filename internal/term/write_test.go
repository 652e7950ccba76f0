package term_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/term"
)

func TestWriteAtomQuoting(t *testing.T) {
	env := term.NewEnv()
	require.Equal(t, "foo", term.Write(term.Atom("foo"), env))
	require.Equal(t, "'Foo'", term.Write(term.Atom("Foo"), env))
	require.Equal(t, "'hello world'", term.Write(term.Atom("hello world"), env))
	require.Equal(t, "!", term.Write(term.Atom("!"), env))
	require.Equal(t, "[]", term.Write(term.EmptyList, env))
}

func TestWriteList(t *testing.T) {
	env := term.NewEnv()
	l := term.List(term.EmptyList, term.Int(1), term.Int(2), term.Int(3))
	require.Equal(t, "[1, 2, 3]", term.Write(l, env))
}

func TestWritePartialList(t *testing.T) {
	env := term.NewEnv()
	l := term.List(term.Var("T"), term.Int(1))
	require.Equal(t, "[1 | _T]", term.Write(l, env))
}

func TestWriteFloats(t *testing.T) {
	env := term.NewEnv()
	require.Equal(t, "1.0", term.Write(term.Float(1), env))
	require.Equal(t, "1.0Inf", term.Write(term.Float(math.Inf(1)), env))
	require.Equal(t, "-1.0Inf", term.Write(term.Float(math.Inf(-1)), env))
	require.Equal(t, "1.5NaN", term.Write(term.Float(math.NaN()), env))
}

func TestWriteResolvesVars(t *testing.T) {
	env := term.NewEnv()
	env.Bind(term.Var("X"), term.Atom("bound"))
	require.Equal(t, "bound", term.Write(term.Var("X"), env))
}

func TestWriteInfixCompound(t *testing.T) {
	env := term.NewEnv()
	c := term.Comp("+", term.Int(1), term.Int(2))
	require.Equal(t, "1 + 2", term.Write(c, env))
}
