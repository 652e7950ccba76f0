package term_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/term"
)

func TestValueHashExcludesCompound(t *testing.T) {
	_, ok := term.ValueHash(term.Comp("f", term.Int(1)))
	require.False(t, ok)
}

func TestValueHashGroundLeaves(t *testing.T) {
	h1, ok := term.ValueHash(term.Atom("a"))
	require.True(t, ok)
	h2, ok := term.ValueHash(term.Atom("a"))
	require.True(t, ok)
	require.Equal(t, h1, h2)

	h3, _ := term.ValueHash(term.Atom("b"))
	require.NotEqual(t, h1, h3)
}

func TestValueHashNormalizesSignedZero(t *testing.T) {
	h1, _ := term.ValueHash(term.Float(0.0))
	h2, _ := term.ValueHash(term.Float(math.Copysign(0, -1)))
	require.Equal(t, h1, h2)
}

func TestStructuralEqualNaN(t *testing.T) {
	nan := term.Float(math.NaN())
	require.False(t, term.StructuralEqual(nan, nan))
}

func TestStructuralEqualCompound(t *testing.T) {
	a := term.Comp("f", term.Atom("x"), term.Int(1))
	b := term.Comp("f", term.Atom("x"), term.Int(1))
	c := term.Comp("f", term.Atom("x"), term.Int(2))
	require.True(t, term.StructuralEqual(a, b))
	require.False(t, term.StructuralEqual(a, c))
}
