package term

// Unify attempts to make t1 and t2 identical by extending env with
// variable bindings, mutating env in place. It returns whether
// unification succeeded. Partial bindings made before a failure remain in
// env — callers that need atomic failure (\=, if-then probes, negation-
// as-failure) must pre-clone env first.
//
// There is no occurs-check: binding a variable to a term that mentions
// that variable is permitted and produces a cyclic structure. This
// matches standard Prolog practice.
func Unify(t1, t2 Term, env *Env) bool {
	t1 = env.Resolve(t1)
	t2 = env.Resolve(t2)

	if sameRef(t1, t2) {
		return true
	}

	if v, ok := t1.(Var); ok {
		env.Bind(v, t2)
		return true
	}
	if v, ok := t2.(Var); ok {
		env.Bind(v, t1)
		return true
	}

	switch a := t1.(type) {
	case Atom:
		b, ok := t2.(Atom)
		return ok && a == b
	case Int:
		b, ok := t2.(Int)
		return ok && a == b
	case Float:
		b, ok := t2.(Float)
		// Go's == already returns false for any NaN operand, so a
		// NaN never unifies with anything, including itself.
		return ok && float64(a) == float64(b)
	case Str:
		b, ok := t2.(Str)
		return ok && a == b
	case *Compound:
		b, ok := t2.(*Compound)
		if !ok || a.Functor != b.Functor || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Unify(a.Args[i], b.Args[i], env) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// sameRef reports whether t1 and t2 are the identical term reference
// (same variable name, or the same pointer for compounds), letting Unify
// short-circuit without doing any binding work.
func sameRef(t1, t2 Term) bool {
	switch a := t1.(type) {
	case Var:
		b, ok := t2.(Var)
		return ok && a == b
	case *Compound:
		b, ok := t2.(*Compound)
		return ok && a == b
	default:
		return false
	}
}
