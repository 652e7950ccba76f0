package engine

import (
	"errors"

	"github.com/gitrdm/goprolog/internal/arith"
	"github.com/gitrdm/goprolog/internal/dcg"
	"github.com/gitrdm/goprolog/internal/errs"
	"github.com/gitrdm/goprolog/internal/term"
)

// errProbeSucceeded is the internal sentinel a probe's handler raises on
// its first success. It must never surface to an embedder — every frame
// that launches a probe catches it before returning.
var errProbeSucceeded = errors.New("engine: probe succeeded")

// solve is the goal-stack driven SLD resolution loop. It is written as a
// loop over an explicit goals slice; four goal shapes — "$end_scope",
// phrase/2, phrase/3, and pure rewrites like true/nl/"," — update the
// loop's parameters and continue rather than recurse. Other dispatches,
// including ordinary clause resolution, recurse.
func (e *Engine) solve(goals []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	for {
		if depth > e.maxDepth {
			return Result{}, errs.DepthExceeded.New(e.maxDepth)
		}

		if len(goals) == 0 {
			if err := handler(env); err != nil {
				return Result{}, err
			}
			return Normal, nil
		}

		g := env.Resolve(goals[0])
		rest := goals[1:]

		if c, ok := g.(*term.Compound); ok {
			switch {
			case c.Functor == "," && len(c.Args) == 2:
				goals = prepend(rest, c.Args[0], c.Args[1])
				continue
			case c.Functor == "$end_scope" && len(c.Args) == 2:
				scope = uint64(c.Args[1].(term.Int))
				goals = rest
				continue
			case c.Functor == "phrase" && len(c.Args) == 2:
				goals = prepend(rest, dcg.ExpandCall(env.Resolve(c.Args[0]), c.Args[1], term.EmptyList))
				continue
			case c.Functor == "phrase" && len(c.Args) == 3:
				goals = prepend(rest, dcg.ExpandCall(env.Resolve(c.Args[0]), c.Args[1], c.Args[2]))
				continue
			}
		}

		switch v := g.(type) {
		case term.Atom:
			switch string(v) {
			case "!":
				res, err := e.solve(rest, env, depth, scope, handler, qs)
				if err != nil {
					return Result{}, err
				}
				if res.Cut {
					return res, nil
				}
				return Result{Cut: true, Scope: scope}, nil
			case "true":
				goals = rest
				continue
			case "fail", "false":
				return Normal, nil
			case "nl":
				if err := e.writeOut("\n"); err != nil {
					return Result{}, err
				}
				goals = rest
				continue
			case "repeat":
				for {
					res, err := e.solve(rest, env.Clone(), depth, scope, handler, qs)
					if err != nil {
						return Result{}, err
					}
					if res.Cut {
						return res, nil
					}
				}
			default:
				return e.resolveClause(g, rest, env, depth, scope, handler, qs)
			}

		case *term.Compound:
			return e.dispatchCompound(v, rest, env, depth, scope, handler, qs)

		default:
			// Var, Int, Float, Str used as a goal: the clause index
			// already defines candidate selection for a variable goal
			// (every clause), so fall through to ordinary clause
			// resolution rather than treating it as malformed.
			return e.resolveClause(g, rest, env, depth, scope, handler, qs)
		}
	}
}

func prepend(rest []term.Term, first ...term.Term) []term.Term {
	out := make([]term.Term, 0, len(first)+len(rest))
	out = append(out, first...)
	out = append(out, rest...)
	return out
}

// dispatchCompound handles every compound-shaped built-in that isn't one
// of the four tail-call forms handled inline in solve. Anything not
// recognized here falls through to clause resolution.
func (e *Engine) dispatchCompound(c *term.Compound, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	switch {
	case c.Functor == "is" && len(c.Args) == 2:
		return e.doIs(c.Args[0], c.Args[1], rest, env, depth, scope, handler, qs)

	case isComparison(c.Functor) && len(c.Args) == 2:
		return e.doCompare(c.Functor, c.Args[0], c.Args[1], rest, env, depth, scope, handler, qs)

	case c.Functor == "=" && len(c.Args) == 2:
		if term.Unify(c.Args[0], c.Args[1], env) {
			return e.solve(rest, env, depth, scope, handler, qs)
		}
		return Normal, nil

	case c.Functor == "\\=" && len(c.Args) == 2:
		clone := env.Clone()
		if term.Unify(c.Args[0], c.Args[1], clone) {
			return Normal, nil
		}
		return e.solve(rest, env, depth, scope, handler, qs)

	case c.Functor == "->" && len(c.Args) == 2:
		return e.doIfThen(c.Args[0], c.Args[1], rest, env, depth, scope, handler, qs)

	case c.Functor == ";" && len(c.Args) == 2:
		return e.doDisjunction(c.Args[0], c.Args[1], rest, env, depth, scope, handler, qs)

	case (c.Functor == "\\+" || c.Functor == "not") && len(c.Args) == 1:
		return e.doNegation(c.Args[0], rest, env, depth, scope, handler, qs)

	case c.Functor == "distinct" && len(c.Args) == 2:
		return e.doDistinct(c.Args[0], c.Args[1], rest, env, depth, scope, handler, qs)

	case c.Functor == "format" && len(c.Args) == 1:
		if err := e.doFormat(c.Args[0], term.EmptyList, env); err != nil {
			return Result{}, err
		}
		return e.solve(rest, env, depth, scope, handler, qs)

	case c.Functor == "format" && len(c.Args) == 2:
		if err := e.doFormat(c.Args[0], c.Args[1], env); err != nil {
			return Result{}, err
		}
		return e.solve(rest, env, depth, scope, handler, qs)

	case c.Functor == "write" && len(c.Args) == 1:
		if err := e.writeOut(term.Write(c.Args[0], env)); err != nil {
			return Result{}, err
		}
		return e.solve(rest, env, depth, scope, handler, qs)

	case c.Functor == "$distinct_check" && len(c.Args) == 1:
		return e.doDistinctCheck(c.Args[0], rest, env, depth, scope, handler, qs)

	default:
		return e.resolveClause(c, rest, env, depth, scope, handler, qs)
	}
}

func isComparison(functor string) bool {
	switch functor {
	case ">", "<", ">=", "=<", "=:=", "=\\=":
		return true
	default:
		return false
	}
}

func (e *Engine) doIs(x, expr term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	val, err := arith.Eval(expr, env)
	if err != nil {
		return Result{}, err
	}
	if !term.Unify(x, val, env) {
		return Normal, nil
	}
	return e.solve(rest, env, depth, scope, handler, qs)
}

func (e *Engine) doCompare(op string, lhs, rhs term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	ok, err := arith.Compare(op, lhs, rhs, env)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Normal, nil
	}
	return e.solve(rest, env, depth, scope, handler, qs)
}

// doIfThen implements ->(Cond, Then) as plain if-then: probe Cond, and
// on success commit its bindings and continue with Then; the
// general disjunction handler (doDisjunction) detects ;(->(Cond,Then),
// Else) and calls this same probe/commit logic before falling back to
// Else, so the two share probeAndCommit below.
func (e *Engine) doIfThen(cond, then term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	succeeded, err := e.probeAndCommit(cond, env, depth, scope, qs)
	if err != nil {
		return Result{}, err
	}
	if !succeeded {
		return Normal, nil
	}
	return e.solve(prepend(rest, then), env, depth, scope, handler, qs)
}

// doDisjunction implements ;(A,B). If A is itself ->(Cond, Then), this is
// the if-then-else special form: probe Cond and either commit+Then or
// fall through to Else, with no cloning of the Else branch (the probe's
// clone is discarded on failure, leaving env untouched). Otherwise it is
// general disjunction: clone per alternative, try A first, then B; a cut
// returned from A propagates immediately without trying B.
func (e *Engine) doDisjunction(a, b term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	if ite, ok := a.(*term.Compound); ok && ite.Functor == "->" && len(ite.Args) == 2 {
		succeeded, err := e.probeAndCommit(ite.Args[0], env, depth, scope, qs)
		if err != nil {
			return Result{}, err
		}
		if succeeded {
			return e.solve(prepend(rest, ite.Args[1]), env, depth, scope, handler, qs)
		}
		return e.solve(prepend(rest, b), env, depth, scope, handler, qs)
	}

	res, err := e.solve(prepend(rest, a), env.Clone(), depth, scope, handler, qs)
	if err != nil {
		return Result{}, err
	}
	if res.Cut {
		return res, nil
	}
	return e.solve(prepend(rest, b), env.Clone(), depth, scope, handler, qs)
}

// doNegation implements \+(G) and not(G): clone env, probe G, succeed
// (continue with the ORIGINAL env, discarding the clone) iff G had no
// solutions.
func (e *Engine) doNegation(goal term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	succeeded, _, err := e.probe(goal, env, depth, scope, qs)
	if err != nil {
		return Result{}, err
	}
	if succeeded {
		return Normal, nil
	}
	return e.solve(rest, env, depth, scope, handler, qs)
}

// probeAndCommit probes goal and, on success, copies the probe's
// bindings back into env (the if-then/-else success path, which must
// leak bindings, unlike \+/not which must not).
func (e *Engine) probeAndCommit(goal term.Term, env *term.Env, depth int, scope uint64, qs *queryState) (bool, error) {
	succeeded, probeEnv, err := e.probe(goal, env, depth, scope, qs)
	if err != nil || !succeeded {
		return false, err
	}
	adopt(env, probeEnv)
	return true, nil
}

// probe runs goal as a one-shot sub-search: it never yields more than
// one solution even if more exist, reporting whether
// goal succeeded at all and, if so, the environment clone holding its
// bindings.
func (e *Engine) probe(goal term.Term, env *term.Env, depth int, scope uint64, qs *queryState) (succeeded bool, probeEnv *term.Env, err error) {
	clone := env.Clone()
	h := Handler(func(*term.Env) error { return errProbeSucceeded })
	_, err = e.solve([]term.Term{goal}, clone, depth, scope, h, qs)
	if err == errProbeSucceeded {
		return true, clone, nil
	}
	if err != nil {
		return false, nil, err
	}
	return false, nil, nil
}

// adopt merges every binding in src into dst, used to commit a probe's
// bindings back into the caller's live environment.
func adopt(dst, src *term.Env) {
	for v, t := range src.Bindings() {
		if _, already := dst.Lookup(v); !already {
			dst.Bind(v, t)
		}
	}
}

// doDistinct implements distinct(Template, Goal): it rewrites the goal
// list to insert an internal $distinct_check marker between
// Goal and the remaining goals, so that every solution of Goal that
// reaches the marker is deduplicated by its resolved Template value
// before the search is allowed to continue into rest. This mirrors the
// $end_scope marker clause resolution already uses to thread state
// through the flat goal stack, rather than nesting a second handler.
func (e *Engine) doDistinct(template, goal term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	id := qs.nextID
	qs.nextID++
	qs.distinct[id] = &distinctState{template: template, seen: make(map[uint64][]term.Term)}
	marker := term.Comp("$distinct_check", term.Int(int64(id)))
	return e.solve(prepend(rest, goal, marker), env, depth, scope, handler, qs)
}

func (e *Engine) doDistinctCheck(idTerm term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	id := uint64(idTerm.(term.Int))
	state := qs.distinct[id]
	key := env.CopyResolved(state.template)
	if state.seenBefore(key) {
		return Normal, nil
	}
	return e.solve(rest, env, depth, scope, handler, qs)
}
