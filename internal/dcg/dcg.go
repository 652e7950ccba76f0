// Package dcg expands Definite Clause Grammar rules (Head --> Body.) into
// ordinary clauses threading a pair of difference-list variables.
// Expansion runs once per DCG rule at ingestion time, before the result
// reaches the clause index. It rewrites a DCG body directly into a plain
// clause body during expansion, the way a conventional (non-tabled) DCG
// translator works, rather than building intermediate pattern objects
// evaluated later.
package dcg

import (
	"fmt"

	"github.com/gitrdm/goprolog/internal/db"
	"github.com/gitrdm/goprolog/internal/term"
)

// counter generates fresh difference-list variable names unique to one
// expansion call. It is a simple monotonic counter scoped to a single
// Expand invocation, not shared across rules — clause variable
// freshening at solve time (a separate, later step) is what guarantees
// global uniqueness across activations.
type counter struct{ n int }

func (c *counter) next() term.Var {
	c.n++
	return term.Var(fmt.Sprintf("_Dcg%d", c.n))
}

// Expand rewrites a DCG rule "head --> body" into an ordinary clause.
// head and bodyElems are the DCG surface forms as produced by the
// surface parser: head is an Atom or Compound naming the non-terminal
// being defined; bodyElems is the comma-sequence of DCG elements making
// up its right-hand side:
//
//   - a bare Atom or Compound names a non-terminal call, threaded with
//     two extra difference-list arguments;
//   - a list term ("[]" or "." compounds) is a terminal sequence: its
//     elements are unified against the input list with the output list
//     attached as their tail (a partial list's own tail is not used);
//   - Compound("{}", [G]) is a brace goal: G is emitted as an ordinary
//     goal, and the difference-list threads through unchanged.
func Expand(head term.Term, bodyElems []term.Term) db.Clause {
	c := &counter{}
	s0 := c.next()
	sn := s0

	var goals []term.Term
	for _, elem := range bodyElems {
		var g term.Term
		g, sn = expandElement(elem, sn, c)
		if g != nil {
			goals = append(goals, g)
		}
	}

	return db.Clause{
		Head: appendArgs(head, s0, sn),
		Body: goals,
	}
}

// expandElement expands one DCG body element threaded from sIn, and
// returns the goal it expands to along with the output difference-list
// variable for the next element. [] expands to the goal sIn = sOut; {G}
// expands to G alone, with sIn passed on unchanged as the output.
func expandElement(elem term.Term, sIn term.Var, c *counter) (term.Term, term.Var) {
	if isBraceGoal(elem) {
		inner := elem.(*term.Compound).Args[0]
		// {G} threads S unchanged: the goal runs with no list consumption.
		return inner, sIn
	}

	if elems, tail, ok := literalList(elem); ok {
		sOut := c.next()
		listTerm := term.List(term.Term(sOut), elems...)
		_ = tail // only the elements are used; a non-[] tail is dropped
		return term.Comp("=", sIn, listTerm), sOut
	}

	// Non-terminal atom or compound: append the two difference-list args.
	sOut := c.next()
	return appendArgs(elem, sIn, sOut), sOut
}

// isBraceGoal reports whether elem is the brace-wrapper {}(G).
func isBraceGoal(elem term.Term) bool {
	c, ok := elem.(*term.Compound)
	return ok && c.Functor == "{}" && len(c.Args) == 1
}

// literalList reports whether elem is a (possibly empty) terminal list
// literal, returning its elements and tail (always term.EmptyList for a
// well-formed terminal sequence).
func literalList(elem term.Term) (elems []term.Term, tail term.Term, ok bool) {
	if elem == term.EmptyList {
		return nil, term.EmptyList, true
	}
	if _, _, isCons := term.IsCons(elem); !isCons {
		return nil, nil, false
	}
	elems, tail = term.Slice(elem)
	return elems, tail, true
}

// appendArgs appends s0, sn to a non-terminal reference's argument list,
// turning a DCG head or non-terminal call into the ordinary-clause term
// it expands to: "p" -> p(S0,S1), "p(A1,...)" -> p(A1,...,S0,S1).
func appendArgs(t term.Term, s0, sn term.Var) term.Term {
	return ExpandCall(t, s0, sn)
}

// ExpandCall appends l, r to a callable term's argument list, the same
// way a DCG head or non-terminal reference is threaded. Exported for
// phrase/2,3, which the solver translates into a call this way at run
// time rather than at clause-ingestion time.
func ExpandCall(t term.Term, l, r term.Term) term.Term {
	switch v := t.(type) {
	case term.Atom:
		return term.Comp(string(v), l, r)
	case *term.Compound:
		args := make([]term.Term, len(v.Args)+2)
		copy(args, v.Args)
		args[len(v.Args)] = l
		args[len(v.Args)+1] = r
		return &term.Compound{Functor: v.Functor, Args: args}
	default:
		return t
	}
}
