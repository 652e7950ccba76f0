package engine

import "github.com/gitrdm/goprolog/internal/term"

// resolveClause is the default dispatch for any goal that isn't one of
// the built-ins handled in solve/dispatchCompound: look up candidate
// clauses via the index, freshen and unify each in turn, and recurse into
// its body followed by a $end_scope marker that restores the caller's
// cut scope once the clause's own activation is exhausted.
//
// The single-candidate case skips cloning env, since there is no
// alternative to backtrack into.
func (e *Engine) resolveClause(goal term.Term, rest []term.Term, env *term.Env, depth int, scope uint64, handler Handler, qs *queryState) (Result, error) {
	candidates := e.DB.Candidates(goal, env)
	deterministic := len(candidates) == 1

	for _, idx := range candidates {
		clause := e.DB.Clause(idx)
		activation := e.nextActivation()
		freshHead, freshBody := freshenClause(clause, activation)

		candidateEnv := env
		if !deterministic {
			candidateEnv = env.Clone()
		}

		if !term.Unify(goal, freshHead, candidateEnv) {
			continue
		}

		endScope := term.Comp("$end_scope", term.Int(int64(activation)), term.Int(int64(scope)))
		newGoals := make([]term.Term, 0, len(freshBody)+1+len(rest))
		newGoals = append(newGoals, freshBody...)
		newGoals = append(newGoals, endScope)
		newGoals = append(newGoals, rest...)

		res, err := e.solve(newGoals, candidateEnv, depth+1, activation, handler, qs)
		if err != nil {
			return Result{}, err
		}
		if res.Cut {
			if res.Scope == activation {
				return Normal, nil
			}
			return res, nil
		}
	}

	return Normal, nil
}
