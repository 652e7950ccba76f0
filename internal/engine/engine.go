// Package engine implements the SLD-resolution solver: the goal-stack
// driven search with cut, disjunction, if-then(-else), negation-as-
// failure, and built-ins, plus the embedder-facing surface (New,
// AddClause, Solve, Resolve, CopyResolved).
//
// Resolution is single-threaded and recursive: each branch point returns
// a Result describing whether a cut was consumed and, if so, which
// activation scope it targets, rather than fanning out across goroutines
// or channels.
package engine

import (
	"io"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/goprolog/internal/db"
	"github.com/gitrdm/goprolog/internal/dcg"
	"github.com/gitrdm/goprolog/internal/errs"
	"github.com/gitrdm/goprolog/internal/term"
)

// DefaultMaxDepth is the solver depth guard: a crude ceiling against
// non-terminating programs.
const DefaultMaxDepth = 600

// Config configures an Engine. A zero Config is valid: MaxDepth defaults
// to DefaultMaxDepth and Logger to a no-op logger. A plain config struct,
// not functional options.
type Config struct {
	MaxDepth int
	Logger   hclog.Logger
	// Output receives write/1, nl, and format/1,2 output. Defaults to
	// io.Discard if nil.
	Output io.Writer
}

// Engine is a session bound to a clause database. All per-query term and
// environment allocation is ordinary Go heap allocation collected by the
// Go garbage collector — terms and environments live as long as anything
// still references them, with no manual free path.
type Engine struct {
	DB     *db.Database
	maxDepth int
	log    hclog.Logger
	out    io.Writer

	activationCounter uint64 // fresh scope ids / variable-freshening suffixes
}

// New creates a session bound to a fresh, empty clause database.
func New(cfg Config) *Engine {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	return &Engine{
		DB:       db.New(),
		maxDepth: maxDepth,
		log:      logger.Named("engine"),
		out:      out,
	}
}

// AddClause appends a rule (or fact, with an empty body) to the database
// and index.
func (e *Engine) AddClause(head term.Term, body ...term.Term) {
	e.DB.Add(db.Clause{Head: head, Body: body})
	e.log.Trace("clause added", "head", term.Indicator(head), "total", e.DB.Len())
}

// AddDCGRule expands a DCG rule "head --> bodyElems." and appends the
// resulting clause to the database, exactly as if the surface parser had
// produced an ordinary clause. Expansion happens once, at ingestion
// time, before the clause reaches the index.
func (e *Engine) AddDCGRule(head term.Term, bodyElems []term.Term) {
	clause := dcg.Expand(head, bodyElems)
	e.DB.Add(clause)
	e.log.Trace("dcg rule expanded", "head", term.Indicator(clause.Head))
}

// Resolve walks t through env, following variable bindings.
func (e *Engine) Resolve(t term.Term, env *term.Env) term.Term {
	return env.Resolve(t)
}

// CopyResolved deep-copies t with every variable replaced by its fully
// resolved value, letting a handler extract a solution value
// independent of the environment's lifetime without leaking variable
// identity into later queries that might reuse the same names.
func (e *Engine) CopyResolved(t term.Term, env *term.Env) term.Term {
	return env.CopyResolved(t)
}

// Handler is invoked once per successful refutation with a read-only view
// of the environment. Returning a non-nil error aborts enumeration: the
// error propagates out of Solve to the caller. This is the mechanism
// probes (->, \+, not) and an embedder's early termination use to stop
// enumeration with a sentinel error.
type Handler func(env *term.Env) error

// Result conveys whether the search that just returned consumed a cut
// and, if so, which activation scope it targets. The zero Result is
// Normal.
type Result struct {
	Cut   bool
	Scope uint64
}

// Normal is the non-cut result: the current branch is exhausted.
var Normal = Result{}

// Solve drives SLD resolution over goals starting from env. It is the
// sole entry point an embedder calls per query; scope 0 is reserved as
// "no enclosing activation" for the top-level call.
func (e *Engine) Solve(goals []term.Term, env *term.Env, handler Handler) (Result, error) {
	qs := newQueryState()
	return e.solve(goals, env, 0, 0, handler, qs)
}

// nextActivation returns a fresh, globally unique activation id, used
// both as a cut scope and as the variable-freshening suffix for one
// clause activation. A single monotonic counter is simpler than deriving
// an id from depth and clause index and is equally collision-free.
func (e *Engine) nextActivation() uint64 {
	return atomic.AddUint64(&e.activationCounter, 1)
}

// writeOut emits s through the configured output sink, wrapping any
// failure as a typed IOError — a write failure is a structural error, not
// ordinary logic failure.
func (e *Engine) writeOut(s string) error {
	if _, err := io.WriteString(e.out, s); err != nil {
		e.log.Warn("write sink failed", "error", err)
		return errs.IOError.New(err.Error())
	}
	return nil
}
