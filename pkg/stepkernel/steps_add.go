package stepkernel

// Add is the `[add elt var]` step. It appends elt to whichever
// persistent collection the state variable var currently holds: a
// cons-list prepends, a set inserts, a stack pushes, a queue enqueues,
// a priority heap inserts a (value, priority) pair (elt must be a
// 2-tuple whose second element is numeric). If var's current value is
// none of these, Add raises an ArgumentType error rather than failing:
// this is a contract violation, not a predictable backtrack outcome.
// On success it continues with the extended collection bound in state.
type Add struct {
	Elt    ValueExpr
	Target StateElement
}

func (s Add) Try(out *Buffer, env Environment, k Continuation) bool {
	cur, ok := env.State.Lookup(s.Target)
	if !ok {
		raise(ArgumentType, "add: state variable %s has no collection value", s.Target.Name)
	}

	eltVal, err := s.Elt.Eval(env)
	if err != nil {
		panic(err)
	}
	elt := ResolveRecursive(eltVal, env.Bindings)

	var next Term
	switch c := cur.(type) {
	case *List:
		next = c.Cons(elt)
	case *Stack:
		next = c.Push(elt)
	case *Queue:
		next = c.Enqueue(elt)
	case *Set:
		next = c.Insert(elt)
	case *Heap:
		tup, ok := elt.(Tuple)
		if !ok || len(tup) != 2 {
			raise(ArgumentType, "add: heap element must be a 2-tuple (value, priority), got %v", elt)
		}
		priority, err := numericValue(tup[1])
		if err != nil {
			panic(err)
		}
		next = c.Insert(tup[0], priority)
	default:
		raise(ArgumentType, "add: state variable %s does not hold a collection (got %v)", s.Target.Name, cur)
	}

	if env.Log != nil {
		env.Log.Trace("add", "var", s.Target.Name, "elt", elt.String())
	}
	return k(out, env.WithState(env.State.Bind(s.Target, next)))
}

// numericValue extracts a float64 from a ground numeric atom.
func numericValue(t Term) (float64, error) {
	a, ok := t.(Atom)
	if !ok {
		return 0, NewEngineError(ArgumentType, "expected a numeric atom, got %v", t)
	}
	switch v := a.Value.(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, NewEngineError(ArgumentType, "expected a numeric atom, got %v", t)
	}
}
