package term_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/term"
)

func TestUnifyAtomsAndInts(t *testing.T) {
	env := term.NewEnv()
	require.True(t, term.Unify(term.Atom("foo"), term.Atom("foo"), env))
	require.False(t, term.Unify(term.Atom("foo"), term.Atom("bar"), env))
	require.True(t, term.Unify(term.Int(3), term.Int(3), env))
	require.False(t, term.Unify(term.Int(3), term.Float(3), env))
}

func TestUnifyVarBinds(t *testing.T) {
	env := term.NewEnv()
	require.True(t, term.Unify(term.Var("X"), term.Atom("a"), env))
	require.Equal(t, term.Atom("a"), env.Resolve(term.Var("X")))
}

func TestUnifyCompoundRecurses(t *testing.T) {
	env := term.NewEnv()
	a := term.Comp("f", term.Var("X"), term.Atom("b"))
	b := term.Comp("f", term.Atom("a"), term.Var("Y"))
	require.True(t, term.Unify(a, b, env))
	require.Equal(t, term.Atom("a"), env.Resolve(term.Var("X")))
	require.Equal(t, term.Atom("b"), env.Resolve(term.Var("Y")))
}

func TestUnifyCompoundArityMismatchFails(t *testing.T) {
	env := term.NewEnv()
	a := term.Comp("f", term.Atom("a"))
	b := term.Comp("f", term.Atom("a"), term.Atom("b"))
	require.False(t, term.Unify(a, b, env))
}

func TestUnifyNaNNeverEqual(t *testing.T) {
	env := term.NewEnv()
	nan := term.Float(nan())
	require.False(t, term.Unify(nan, nan, env))
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestUnifyFailureOnCloneLeavesOriginalUntouched(t *testing.T) {
	env := term.NewEnv()
	require.True(t, term.Unify(term.Var("X"), term.Atom("a"), env))

	clone := env.Clone()
	require.False(t, term.Unify(term.Atom("a"), term.Atom("b"), clone))
	require.Equal(t, term.Atom("a"), env.Resolve(term.Var("X")))
}
