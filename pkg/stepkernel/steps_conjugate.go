package stepkernel

// ConjugateVerb reads a boolean state variable (conventionally the
// "third-person-singular" mode flag). When true, it appends "s" to the
// last token of the current output view before continuing; if the
// continuation fails, it restores the prior token in place.
//
// This is the one step that mutates an already-emitted buffer
// position. It is safe under the buffer's length-partition invariant
// because no committed reader ever observes the intermediate,
// not-yet-restored token: either the continuation commits, in which
// case the mutated token is exactly what the committed run produced,
// or it fails, in which case ConjugateVerb restores the original
// before returning false, so the view looks to the caller exactly as
// it did on entry.
type ConjugateVerb struct {
	ThirdPersonSingular StateElement
}

func (s ConjugateVerb) Try(out *Buffer, env Environment, k Continuation) bool {
	flag, ok := env.State.Lookup(s.ThirdPersonSingular)
	if !ok {
		flag = NewAtom(false)
	}
	flagAtom, ok := flag.(Atom)
	if !ok {
		raise(ArgumentType, "conjugate-verb: state element %s holds a non-atom value %v", s.ThirdPersonSingular.Name, flag)
	}
	on, ok := flagAtom.Value.(bool)
	if !ok {
		raise(ArgumentType, "conjugate-verb: state element %s holds a non-boolean value %v", s.ThirdPersonSingular.Name, flag)
	}
	if !on || out.Len() == 0 {
		return k(out, env)
	}

	last := out.Tokens()[out.Len()-1]
	atom, isAtom := last.(Atom)
	str, isString := atom.Value.(string)
	if !isAtom || !isString {
		return k(out, env)
	}

	prev, ok := out.SetLastToken(NewAtom(str + "s"))
	if !ok {
		return k(out, env)
	}
	if k(out, env) {
		return true
	}
	out.SetLastToken(prev)
	return false
}
