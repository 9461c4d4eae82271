package stepkernel

// RemoveNext is the `[removeNext pattern var]` step, the inverse of
// Add: from a list it takes the head, from a stack the top, from a
// queue the front, from a priority heap the maximum-priority element.
// It unifies the removed element with pattern; if unification fails or
// the collection is empty, RemoveNext fails (an ordinary backtrack, not
// an error). On success it continues with the shortened collection
// bound in state.
type RemoveNext struct {
	Pattern ValueExpr
	Source  StateElement
}

func (s RemoveNext) Try(out *Buffer, env Environment, k Continuation) bool {
	cur, ok := env.State.Lookup(s.Source)
	if !ok {
		raise(ArgumentType, "removeNext: state variable %s has no collection value", s.Source.Name)
	}

	var elt Term
	var rest Term
	switch c := cur.(type) {
	case *List:
		e, r, found := c.Uncons()
		if !found {
			return false
		}
		elt, rest = e, r
	case *Stack:
		e, r, found := c.Pop()
		if !found {
			return false
		}
		elt, rest = e, r
	case *Queue:
		e, r, found := c.Dequeue()
		if !found {
			return false
		}
		elt, rest = e, r
	case *Heap:
		e, r, found := c.RemoveMax()
		if !found {
			return false
		}
		elt, rest = e, r
	case *Set:
		e, r, found := c.RemoveAny()
		if !found {
			return false
		}
		elt, rest = e, r
	default:
		raise(ArgumentType, "removeNext: state variable %s does not hold a collection (got %v)", s.Source.Name, cur)
	}

	patternVal, err := s.Pattern.Eval(env)
	if err != nil {
		panic(err)
	}

	next, ok := Unify(patternVal, elt, env.Bindings)
	if !ok {
		return false
	}

	if env.Log != nil {
		env.Log.Trace("removeNext", "var", s.Source.Name, "elt", elt.String())
	}
	return k(out, env.WithBindings(next).WithState(env.State.Bind(s.Source, rest)))
}
