package db

import "github.com/gitrdm/goprolog/internal/term"

// bucket holds the three parallel candidate lists for one "functor/arity"
// key:
//  1. all — every clause with this key, in insertion order (fallback).
//  2. byHash — first-argument value-hash -> clause indices, populated
//     only when a clause's first argument is ground.
//  3. varFirst — clauses whose first argument is a variable; tried for
//     every query under this functor/arity.
type bucket struct {
	all      []int
	byHash   map[uint64][]int
	varFirst []int
}

func newBucket() *bucket {
	return &bucket{byHash: make(map[uint64][]int)}
}

// indicatorKey is the functor/arity bucket key, kept as a struct rather
// than a formatted "functor/arity" string so that candidates (the
// innermost loop of SLD resolution) never pays an fmt.Sprintf per call.
type indicatorKey struct {
	functor string
	arity   int
}

// Index is the functor/arity + first-argument index over a Database's
// clauses.
type Index struct {
	buckets    map[indicatorKey]*bucket
	unindexed  []int // clauses whose head itself is a variable
	allClauses []int // every clause index, for variable-goal queries
}

func newIndex() *Index {
	return &Index{buckets: make(map[indicatorKey]*bucket)}
}

// add classifies rule's head and appends clauseIdx to the relevant
// buckets.
func (ix *Index) add(clauseIdx int, rule Clause) {
	ix.allClauses = append(ix.allClauses, clauseIdx)

	if _, ok := rule.Head.(term.Var); ok {
		ix.unindexed = append(ix.unindexed, clauseIdx)
		return
	}

	functor, arity, ok := term.FunctorArity(rule.Head)
	if !ok {
		return
	}
	key := indicatorKey{functor: functor, arity: arity}
	b, found := ix.buckets[key]
	if !found {
		b = newBucket()
		ix.buckets[key] = b
	}
	b.all = append(b.all, clauseIdx)

	if arity == 0 {
		return
	}
	c := rule.Head.(*term.Compound)
	first := c.Args[0]
	if _, isVar := first.(term.Var); isVar {
		b.varFirst = append(b.varFirst, clauseIdx)
		return
	}
	// A clause head's first argument is stored exactly as written, so
	// groundness reduces to "is it one of the four hashable leaf kinds" —
	// a clause head never carries bindings from an environment.
	if h, ok := term.ValueHash(first); ok {
		b.byHash[h] = append(b.byHash[h], clauseIdx)
	}
}

// candidates implements the index's candidate selection rules: a
// variable goal matches every clause; a goal with a ground first
// argument narrows to that argument's value-hash bucket plus any clause
// whose first argument is itself a variable; anything else falls back to
// every clause sharing the goal's functor/arity.
func (ix *Index) candidates(goal term.Term, env *term.Env) []int {
	goal = env.Resolve(goal)

	if _, ok := goal.(term.Var); ok {
		// allClauses already contains every clause index, including the
		// unindexed (variable-head) ones added below, so it alone is the
		// union this rule asks for.
		return append([]int{}, ix.allClauses...)
	}

	functor, arity, ok := term.FunctorArity(goal)
	if !ok {
		return append([]int{}, ix.unindexed...)
	}

	key := indicatorKey{functor: functor, arity: arity}
	b, found := ix.buckets[key]
	if !found {
		return append([]int{}, ix.unindexed...)
	}

	if arity >= 1 {
		c := goal.(*term.Compound)
		first := env.Resolve(c.Args[0])
		if isGroundLeaf(first) {
			h, ok := term.ValueHash(first)
			if ok {
				result := make([]int, 0, len(b.byHash[h])+len(b.varFirst)+len(ix.unindexed))
				result = append(result, b.byHash[h]...)
				result = append(result, b.varFirst...)
				result = append(result, ix.unindexed...)
				return result
			}
		}
	}

	result := make([]int, 0, len(b.all)+len(ix.unindexed))
	result = append(result, b.all...)
	result = append(result, ix.unindexed...)
	return result
}

// isGroundLeaf reports whether t is one of the four leaf types eligible
// for value-hash bucketing (Atom, Int, Float, Str) — Compound and Var do
// not qualify.
func isGroundLeaf(t term.Term) bool {
	switch t.(type) {
	case term.Atom, term.Int, term.Float, term.Str:
		return true
	default:
		return false
	}
}

