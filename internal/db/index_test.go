package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/goprolog/internal/db"
	"github.com/gitrdm/goprolog/internal/term"
)

func TestCandidatesFiltersByFunctorArity(t *testing.T) {
	d := db.New()
	f1 := d.Add(db.Clause{Head: term.Comp("foo", term.Atom("a"))})
	d.Add(db.Clause{Head: term.Comp("bar", term.Atom("a"))})

	env := term.NewEnv()
	cands := d.Candidates(term.Comp("foo", term.Var("X")), env)
	require.Equal(t, []int{f1}, cands)
}

func TestCandidatesValueHashNarrowing(t *testing.T) {
	d := db.New()
	match := d.Add(db.Clause{Head: term.Comp("p", term.Atom("a"))})
	d.Add(db.Clause{Head: term.Comp("p", term.Atom("b"))})
	varHead := d.Add(db.Clause{Head: term.Comp("p", term.Var("Z"))})

	env := term.NewEnv()
	cands := d.Candidates(term.Comp("p", term.Atom("a")), env)
	require.Contains(t, cands, match)
	require.Contains(t, cands, varHead)
	require.NotContains(t, cands, match+1) // the /b clause must be excluded
}

func TestCandidatesUnboundFirstArgTriesAll(t *testing.T) {
	d := db.New()
	c1 := d.Add(db.Clause{Head: term.Comp("q", term.Atom("a"))})
	c2 := d.Add(db.Clause{Head: term.Comp("q", term.Atom("b"))})

	env := term.NewEnv()
	cands := d.Candidates(term.Comp("q", term.Var("X")), env)
	require.ElementsMatch(t, []int{c1, c2}, cands)
}

func TestCandidatesVariableGoalReturnsEveryClauseOnce(t *testing.T) {
	d := db.New()
	c1 := d.Add(db.Clause{Head: term.Comp("p", term.Atom("a"))})
	c2 := d.Add(db.Clause{Head: term.Atom("q")})

	env := term.NewEnv()
	cands := d.Candidates(term.Var("Goal"), env)
	require.ElementsMatch(t, []int{c1, c2}, cands)
	require.Len(t, cands, 2)
}

func TestCandidatesRespectGroundFirstArgUsingEnvBindings(t *testing.T) {
	d := db.New()
	match := d.Add(db.Clause{Head: term.Comp("r", term.Int(1))})
	d.Add(db.Clause{Head: term.Comp("r", term.Int(2))})

	env := term.NewEnv()
	env.Bind(term.Var("X"), term.Int(1))
	cands := d.Candidates(term.Comp("r", term.Var("X")), env)
	require.Contains(t, cands, match)
}
