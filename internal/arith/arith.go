// Package arith implements the recursive arithmetic expression evaluator:
// a mixed Int/Float numeric tower with well-defined promotion rules,
// backing the is/2 and comparison built-ins.
package arith

import (
	"math"

	"github.com/gitrdm/goprolog/internal/errs"
	"github.com/gitrdm/goprolog/internal/term"
)

// Eval evaluates expr against env and returns an Int or Float term.
// Errors are typed via package errs and abort the current query rather
// than just the branch.
func Eval(expr term.Term, env *term.Env) (term.Term, error) {
	r := env.Resolve(expr)
	switch v := r.(type) {
	case term.Int:
		return v, nil
	case term.Float:
		return v, nil
	case term.Var:
		return nil, errs.Uninstantiated.New(r)
	case term.Atom:
		switch string(v) {
		case "nan":
			return term.Float(math.NaN()), nil
		case "inf":
			return term.Float(math.Inf(1)), nil
		default:
			return nil, errs.UnknownOperator.New(string(v), 0)
		}
	case term.Str:
		return nil, errs.TypeError.New("arithmetic expression cannot be a string: " + string(v))
	case *term.Compound:
		return evalCompound(v, env)
	default:
		return nil, errs.TypeError.New("not a numeric expression")
	}
}

func evalCompound(c *term.Compound, env *term.Env) (term.Term, error) {
	args := make([]term.Term, len(c.Args))
	for i, a := range c.Args {
		v, err := Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch {
	case len(args) == 1:
		return evalUnary(c.Functor, args[0])
	case len(args) == 2:
		return evalBinary(c.Functor, args[0], args[1])
	default:
		return nil, errs.UnknownOperator.New(c.Functor, len(args))
	}
}

func evalUnary(op string, x term.Term) (term.Term, error) {
	switch op {
	case "-":
		if i, ok := x.(term.Int); ok {
			return term.Int(-int64(i)), nil
		}
		return term.Float(-toFloat(x)), nil
	case "abs":
		if i, ok := x.(term.Int); ok {
			if i < 0 {
				return term.Int(-int64(i)), nil
			}
			return i, nil
		}
		return term.Float(math.Abs(toFloat(x))), nil
	case "sign":
		if i, ok := x.(term.Int); ok {
			switch {
			case i > 0:
				return term.Int(1), nil
			case i < 0:
				return term.Int(-1), nil
			default:
				return term.Int(0), nil
			}
		}
		f := toFloat(x)
		switch {
		case f > 0:
			return term.Float(1), nil
		case f < 0:
			return term.Float(-1), nil
		default:
			return term.Float(0), nil
		}
	default:
		return nil, errs.UnknownOperator.New(op, 1)
	}
}

func evalBinary(op string, x, y term.Term) (term.Term, error) {
	switch op {
	case "+":
		return arithPromote(x, y, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
	case "-":
		return arithPromote(x, y, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
	case "*":
		return arithPromote(x, y, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
	case "/":
		return term.Float(toFloat(x) / toFloat(y)), nil
	case "//":
		xi, yi, ok := bothInt(x, y)
		if !ok {
			return nil, errs.TypeError.New("// requires integer operands")
		}
		if yi == 0 {
			return nil, errs.TypeError.New("division by zero")
		}
		return term.Int(truncDiv(int64(xi), int64(yi))), nil
	case "div":
		xi, yi, ok := bothInt(x, y)
		if !ok {
			return nil, errs.TypeError.New("div requires integer operands")
		}
		if yi == 0 {
			return nil, errs.TypeError.New("division by zero")
		}
		return term.Int(floorDiv(int64(xi), int64(yi))), nil
	case "mod":
		xi, yi, ok := bothInt(x, y)
		if !ok {
			return nil, errs.TypeError.New("mod requires integer operands")
		}
		if yi == 0 {
			return nil, errs.TypeError.New("division by zero")
		}
		a, b := int64(xi), int64(yi)
		return term.Int(a - floorDiv(a, b)*b), nil
	case "rem":
		xi, yi, ok := bothInt(x, y)
		if !ok {
			return nil, errs.TypeError.New("rem requires integer operands")
		}
		if yi == 0 {
			return nil, errs.TypeError.New("division by zero")
		}
		a, b := int64(xi), int64(yi)
		return term.Int(a - truncDiv(a, b)*b), nil
	case "min":
		return minMax(x, y, true), nil
	case "max":
		return minMax(x, y, false), nil
	default:
		return nil, errs.UnknownOperator.New(op, 2)
	}
}

func bothInt(x, y term.Term) (term.Int, term.Int, bool) {
	xi, ok1 := x.(term.Int)
	yi, ok2 := y.(term.Int)
	return xi, yi, ok1 && ok2
}

// truncDiv truncates toward zero, matching Go's native integer division.
func truncDiv(a, b int64) int64 { return a / b }

// floorDiv floors toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func toFloat(t term.Term) float64 {
	switch v := t.(type) {
	case term.Int:
		return float64(v)
	case term.Float:
		return float64(v)
	default:
		return math.NaN()
	}
}

// arithPromote applies intOp when both operands are Int (wrapping per
// two's-complement, matching Go's native int64 arithmetic), else
// promotes both to Float and applies floatOp.
func arithPromote(x, y term.Term, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) term.Term {
	xi, xok := x.(term.Int)
	yi, yok := y.(term.Int)
	if xok && yok {
		return term.Int(intOp(int64(xi), int64(yi)))
	}
	return term.Float(floatOp(toFloat(x), toFloat(y)))
}

func minMax(x, y term.Term, wantMin bool) term.Term {
	xi, xok := x.(term.Int)
	yi, yok := y.(term.Int)
	if xok && yok {
		if (xi < yi) == wantMin {
			return xi
		}
		return yi
	}
	xf, yf := toFloat(x), toFloat(y)
	if (xf < yf) == wantMin {
		return term.Float(xf)
	}
	return term.Float(yf)
}

// Compare evaluates both sides as numerics and compares them: two Ints
// compare exactly as int64, any other pair is promoted to float.
// Supported ops: >, <, >=, =<, =:=, =\=. Comparisons involving NaN always
// fail (IEEE-754 semantics).
func Compare(op string, lhs, rhs term.Term, env *term.Env) (bool, error) {
	l, err := Eval(lhs, env)
	if err != nil {
		return false, err
	}
	r, err := Eval(rhs, env)
	if err != nil {
		return false, err
	}

	// Two Ints compare exactly, as int64: routing them through float64
	// first would lose precision once a value exceeds 2^53 and could
	// misjudge distinct int64s as equal.
	li, lok := l.(term.Int)
	ri, rok := r.(term.Int)
	if lok && rok {
		return compareOrdered(op, int64(li), int64(ri))
	}

	lf, rf := toFloat(l), toFloat(r)
	if math.IsNaN(lf) || math.IsNaN(rf) {
		return false, nil
	}
	return compareOrdered(op, lf, rf)
}

func compareOrdered[T int64 | float64](op string, l, r T) (bool, error) {
	switch op {
	case ">":
		return l > r, nil
	case "<":
		return l < r, nil
	case ">=":
		return l >= r, nil
	case "=<":
		return l <= r, nil
	case "=:=":
		return l == r, nil
	case "=\\=":
		return l != r, nil
	default:
		return false, errs.UnknownOperator.New(op, 2)
	}
}
