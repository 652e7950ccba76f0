package engine

import (
	"fmt"

	"github.com/gitrdm/goprolog/internal/db"
	"github.com/gitrdm/goprolog/internal/term"
)

// freshenClause renames every variable in clause's head and body with a
// suffix unique to activation, so that two candidate clauses — or two
// recursive activations of the same clause — never collide. Constants
// are returned as-is; this is standard term copying with variable
// freshening.
func freshenClause(clause db.Clause, activation uint64) (head term.Term, body []term.Term) {
	mapping := make(map[term.Var]term.Var)
	head = freshenTerm(clause.Head, activation, mapping)
	body = make([]term.Term, len(clause.Body))
	for i, g := range clause.Body {
		body[i] = freshenTerm(g, activation, mapping)
	}
	return head, body
}

func freshenTerm(t term.Term, activation uint64, mapping map[term.Var]term.Var) term.Term {
	switch v := t.(type) {
	case term.Var:
		if fresh, ok := mapping[v]; ok {
			return fresh
		}
		fresh := term.Var(fmt.Sprintf("%s#%d", string(v), activation))
		mapping[v] = fresh
		return fresh
	case *term.Compound:
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = freshenTerm(a, activation, mapping)
		}
		return &term.Compound{Functor: v.Functor, Args: args}
	default:
		return t
	}
}
