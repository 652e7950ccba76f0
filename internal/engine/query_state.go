package engine

import "github.com/gitrdm/goprolog/internal/term"

// queryState carries per-query mutable bookkeeping through the
// recursive solve calls that make up a single Engine.Solve invocation,
// kept off the Engine itself so that distinct/2 state never leaks
// between independent queries (or grows unboundedly across a long-lived
// session).
type queryState struct {
	distinct map[uint64]*distinctState
	nextID   uint64
}

func newQueryState() *queryState {
	return &queryState{distinct: make(map[uint64]*distinctState)}
}

// distinctState is the per-invocation dedup set for one distinct/2 call:
// a hash-bucketed, structural-equality-checked set of resolved Template
// copies already forwarded to the continuation.
type distinctState struct {
	template term.Term
	seen     map[uint64][]term.Term
}

// seenBefore reports whether key (the resolved, copied Template value at
// this solution) has already been forwarded, recording it if not. Hash
// collisions are disambiguated with term.StructuralEqual, which treats
// NaN as unequal to everything including itself, so a NaN-containing key
// is never considered seen and every NaN-bearing solution is forwarded.
func (d *distinctState) seenBefore(key term.Term) bool {
	h := term.StructuralHash(key)
	for _, prior := range d.seen[h] {
		if term.StructuralEqual(prior, key) {
			return true
		}
	}
	d.seen[h] = append(d.seen[h], key)
	return false
}
