// Package db holds the clause database and its functor/arity plus
// first-argument index: an append-only store of Clauses consulted by the
// solver to enumerate candidates for a goal. Clause heads may be
// non-ground (ordinary rules, not just ground facts), and bodies carry
// arbitrary goal sequences.
package db

import "github.com/gitrdm/goprolog/internal/term"

// Clause is a rule or fact: a head term plus an ordered, possibly empty,
// list of body goals. A fact has an empty Body.
type Clause struct {
	Head term.Term
	Body []term.Term
}

// Database holds clauses in insertion order (the tie-break order for
// backtracking) together with the index that narrows candidate search.
// Append-only during a session; the index is kept consistent on every
// Add.
type Database struct {
	clauses []Clause
	index   *Index
}

// New returns an empty clause database.
func New() *Database {
	return &Database{index: newIndex()}
}

// Add appends rule to the database and updates the index, returning the
// clause's index (its position in insertion order, used as a stable
// identifier by the solver for variable freshening and candidate
// bookkeeping).
func (d *Database) Add(rule Clause) int {
	idx := len(d.clauses)
	d.clauses = append(d.clauses, rule)
	d.index.add(idx, rule)
	return idx
}

// Clause returns the clause at the given index.
func (d *Database) Clause(idx int) Clause {
	return d.clauses[idx]
}

// Len returns the number of clauses in the database.
func (d *Database) Len() int {
	return len(d.clauses)
}

// Candidates returns the ordered list of clause indices that might unify
// with goal, resolved against env.
func (d *Database) Candidates(goal term.Term, env *term.Env) []int {
	return d.index.candidates(goal, env)
}
