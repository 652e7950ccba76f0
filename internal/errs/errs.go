// Package errs holds the engine's structural error taxonomy. Logic
// failure (a branch has no solution) is never an error — it is the
// absence of a handler invocation. Only the kinds below propagate out of
// Solve, aborting the current query while leaving the clause database
// intact.
//
// Each kind is a package-level *errors.Kind, constructed once with
// errors.NewKind("message %s") and instantiated per occurrence with
// Kind.New(args...).
package errs

import "gopkg.in/src-d/go-errors.v1"

var (
	// Uninstantiated fires when an arithmetic operand resolves to an
	// unbound variable.
	Uninstantiated = errors.NewKind("arithmetic: uninstantiated variable in expression: %v")

	// TypeError fires when an operator is applied to an operand of the
	// wrong kind (e.g. // on a Float, a format directive fed a Str).
	TypeError = errors.NewKind("type error: %s")

	// UnknownOperator fires when an arithmetic functor is not recognized.
	UnknownOperator = errors.NewKind("unknown arithmetic operator: %s/%d")

	// DepthExceeded fires when the solver's depth guard trips.
	DepthExceeded = errors.NewKind("solver depth exceeded (max %d)")

	// IOError fires when the write/format sink fails to emit.
	IOError = errors.NewKind("io error: %s")
)
