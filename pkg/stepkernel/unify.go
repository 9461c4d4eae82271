package stepkernel

// Unify attempts structural unification of x and y against bindings b,
// returning the extended binding list on success:
//
//  1. Deref both operands.
//  2. If both are the same unbound variable, succeed with b unchanged.
//  3. If one is an unbound variable, extend b binding it to the other.
//  4. If both are tuples of equal length, unify element-wise,
//     threading bindings; fail on the first mismatch.
//  5. If both are ground atoms, succeed iff host-equal.
//  6. Otherwise fail.
//
// No occurs check is performed — this is intentional: a
// variable may be unified with a tuple that (transitively) contains it,
// and later recursive resolution of that binding will not terminate.
// Callers must not construct cyclic terms.
//
// Unify never mutates b; on failure it returns (nil, false) and b is
// exactly as the caller passed it.
func Unify(x, y Term, b *BindingList) (*BindingList, bool) {
	x = Resolve(x, b)
	y = Resolve(y, b)

	xv, xIsVar := x.(*Var)
	yv, yIsVar := y.(*Var)

	switch {
	case xIsVar && yIsVar && xv == yv:
		return b, true
	case xIsVar:
		return Extend(b, xv, y), true
	case yIsVar:
		return Extend(b, yv, x), true
	}

	xt, xIsTuple := x.(Tuple)
	yt, yIsTuple := y.(Tuple)
	if xIsTuple && yIsTuple {
		if len(xt) != len(yt) {
			return nil, false
		}
		cur := b
		for i := range xt {
			var ok bool
			cur, ok = Unify(xt[i], yt[i], cur)
			if !ok {
				return nil, false
			}
		}
		return cur, true
	}
	if xIsTuple || yIsTuple {
		return nil, false
	}

	if x.StructuralEqual(y) {
		return b, true
	}
	return nil, false
}

// UnifyAll unifies corresponding elements of two equal-length term
// slices left to right, threading bindings. It fails immediately if the
// slices differ in length, mirroring the ArgumentCount error boundary
// at call sites that build these slices from an argument list.
func UnifyAll(xs, ys []Term, b *BindingList) (*BindingList, bool) {
	if len(xs) != len(ys) {
		return nil, false
	}
	cur := b
	for i := range xs {
		var ok bool
		cur, ok = Unify(xs[i], ys[i], cur)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
