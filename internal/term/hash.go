package term

import (
	"hash/fnv"
	"math"
	"strconv"
)

// ValueHash computes the clause-index value-hash for a ground leaf term:
// Atom, Int, Float, or Str. Compounds are deliberately excluded — a
// ground Compound first argument falls back to the unindexed/linear-scan
// path rather than the hash bucket, so ok is false for *Compound and for
// Var.
//
// -0.0 and 0.0 hash identically (matching IEEE equality); every NaN
// hashes to the same value, but ValueHash alone is only ever used to
// narrow a candidate set — the unifier is always consulted afterward and
// treats NaN as unequal to everything, including another NaN.
func ValueHash(t Term) (uint64, bool) {
	h := fnv.New64a()
	switch v := t.(type) {
	case Atom:
		h.Write([]byte{'a'})
		h.Write([]byte(v))
	case Int:
		h.Write([]byte{'i'})
		h.Write([]byte(strconv.FormatInt(int64(v), 10)))
	case Float:
		h.Write([]byte{'f'})
		f := float64(v)
		if f == 0 {
			f = 0 // normalize -0.0 to 0.0
		}
		h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64)))
	case Str:
		h.Write([]byte{'s'})
		h.Write([]byte(v))
	default:
		return 0, false
	}
	return h.Sum64(), true
}

// StructuralHash computes a hash over the full shape of a term, including
// compounds and variables, for use by distinct/2 where the template may
// be an arbitrary resolved term, not just a ground leaf.
// Hash collisions are tolerated by callers that also use StructuralEqual
// to confirm a match.
func StructuralHash(t Term) uint64 {
	h := fnv.New64a()
	writeStructuralHash(h, t)
	return h.Sum64()
}

func writeStructuralHash(h interface{ Write([]byte) (int, error) }, t Term) {
	switch v := t.(type) {
	case Atom:
		h.Write([]byte{'a'})
		h.Write([]byte(v))
	case Var:
		h.Write([]byte{'v'})
		h.Write([]byte(v))
	case Int:
		h.Write([]byte{'i'})
		h.Write([]byte(strconv.FormatInt(int64(v), 10)))
	case Float:
		h.Write([]byte{'f'})
		f := float64(v)
		if f == 0 {
			f = 0
		}
		h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64)))
	case Str:
		h.Write([]byte{'s'})
		h.Write([]byte(v))
	case *Compound:
		h.Write([]byte{'c'})
		h.Write([]byte(v.Functor))
		h.Write([]byte(strconv.Itoa(len(v.Args))))
		for _, a := range v.Args {
			writeStructuralHash(h, a)
		}
	}
}

// StructuralEqual reports whether a and b are the same term shape,
// recursively. NaN is never equal to anything, including another NaN —
// matching arithmetic =:= — so a NaN-containing distinct/2 template is
// always treated as fresh. -0.0 and 0.0 compare equal, matching IEEE ==.
func StructuralEqual(a, b Term) bool {
	switch av := a.(type) {
	case Atom:
		bv, ok := b.(Atom)
		return ok && av == bv
	case Var:
		bv, ok := b.(Var)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		if !ok || math.IsNaN(float64(av)) || math.IsNaN(float64(bv)) {
			return false
		}
		return float64(av) == float64(bv)
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *Compound:
		bv, ok := b.(*Compound)
		if !ok || av.Functor != bv.Functor || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !StructuralEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

