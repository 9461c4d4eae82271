package stepkernel

// BindingList is a singly-linked, append-only chain of (variable, term)
// associations. Extension prepends a node and shares the tail; lookup
// walks the chain head-first so the most recent binding for a variable
// wins. An empty (nil) BindingList is the root environment.
//
// This is a trail-free design: no entry is ever mutated, so a branch
// that fails simply stops referencing its own extensions
// and the caller's BindingList pointer is exactly what it was before —
// there is nothing to undo.
type BindingList struct {
	v     *Var
	value Term
	tail  *BindingList
}

// Extend returns a new binding list with v bound to value, sharing b as
// its tail. Lookup on the result for v returns value; lookup for any
// other variable is unchanged from b.
func Extend(b *BindingList, v *Var, value Term) *BindingList {
	return &BindingList{v: v, value: value, tail: b}
}

// Lookup returns the term most recently bound to v in b, or ok=false if
// v is unbound in b. Cost is proportional to chain length to the
// nearest binding.
func Lookup(v *Var, b *BindingList) (Term, bool) {
	for n := b; n != nil; n = n.tail {
		if n.v == v {
			return n.value, true
		}
	}
	return nil, false
}

// Resolve derefs the top of t: if t is a bound variable, follow the
// chain of variable-to-variable aliases until a non-variable or an
// unbound variable is reached. It does not recurse into tuple leaves.
// Resolve is idempotent: Resolve(Resolve(t, b), b) == Resolve(t, b).
func Resolve(t Term, b *BindingList) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		val, bound := Lookup(v, b)
		if !bound {
			return t
		}
		t = val
	}
}

// ResolveRecursive fully walks t, resolving every variable at every
// depth. It is used when emitting a term as text or when copying a
// term into a call's argument list — anywhere a caller needs the
// term's complete current shape rather than just its top.
func ResolveRecursive(t Term, b *BindingList) Term {
	r := Resolve(t, b)
	tup, ok := r.(Tuple)
	if !ok {
		return r
	}
	out := make(Tuple, len(tup))
	for i, e := range tup {
		out[i] = ResolveRecursive(e, b)
	}
	return out
}
