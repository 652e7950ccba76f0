package arith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/arith"
	"github.com/gitrdm/goprolog/internal/term"
)

func eval(t *testing.T, expr term.Term) term.Term {
	t.Helper()
	env := term.NewEnv()
	v, err := arith.Eval(expr, env)
	require.NoError(t, err)
	return v
}

func TestEvalIntArithmetic(t *testing.T) {
	require.Equal(t, term.Int(7), eval(t, term.Comp("+", term.Int(3), term.Int(4))))
	require.Equal(t, term.Int(-1), eval(t, term.Comp("-", term.Int(3), term.Int(4))))
	require.Equal(t, term.Int(12), eval(t, term.Comp("*", term.Int(3), term.Int(4))))
}

func TestEvalDivisionPromotesToFloat(t *testing.T) {
	require.Equal(t, term.Float(2.5), eval(t, term.Comp("/", term.Int(5), term.Int(2))))
}

func TestEvalTruncVsFloorDiv(t *testing.T) {
	require.Equal(t, term.Int(-1), eval(t, term.Comp("//", term.Int(-3), term.Int(2))))
	require.Equal(t, term.Int(-2), eval(t, term.Comp("div", term.Int(-3), term.Int(2))))
}

func TestEvalModVsRem(t *testing.T) {
	require.Equal(t, term.Int(1), eval(t, term.Comp("mod", term.Int(-3), term.Int(2))))
	require.Equal(t, term.Int(-1), eval(t, term.Comp("rem", term.Int(-3), term.Int(2))))
}

func TestEvalMixedIntFloatPromotes(t *testing.T) {
	require.Equal(t, term.Float(3.5), eval(t, term.Comp("+", term.Int(1), term.Float(2.5))))
}

func TestEvalUninstantiatedVariable(t *testing.T) {
	env := term.NewEnv()
	_, err := arith.Eval(term.Var("X"), env)
	require.Error(t, err)
}

func TestEvalUnaryMinusAndAbsAndSign(t *testing.T) {
	require.Equal(t, term.Int(-5), eval(t, term.Comp("-", term.Int(5))))
	require.Equal(t, term.Int(5), eval(t, term.Comp("abs", term.Int(-5))))
	require.Equal(t, term.Int(-1), eval(t, term.Comp("sign", term.Int(-9))))
}

func TestCompareNaNAlwaysFails(t *testing.T) {
	env := term.NewEnv()
	nan := term.Float(math.NaN())
	for _, op := range []string{">", "<", ">=", "=<", "=:=", "=\\="} {
		ok, err := arith.Compare(op, nan, term.Int(1), env)
		require.NoError(t, err)
		require.False(t, ok, "op %s should fail with NaN", op)
	}
}

func TestCompareOrdering(t *testing.T) {
	env := term.NewEnv()
	ok, err := arith.Compare(">", term.Int(5), term.Int(3), env)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = arith.Compare("=:=", term.Int(3), term.Float(3), env)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalDivisionByZeroErrors(t *testing.T) {
	env := term.NewEnv()
	_, err := arith.Eval(term.Comp("//", term.Int(1), term.Int(0)), env)
	require.Error(t, err)
}
