package stepkernel

// Sequence holds an ordered array of branch chains plus a state-element
// key for its position counter (default 0). On Try it looks up
// position; if it already equals the branch count it fails; otherwise
// it runs branches[position] with state advanced to bind the counter
// to position+1, and returns whatever that branch's Try returns.
//
// Because StateMap is persistent, that advance only becomes visible to
// a later top-level call if this Try call's result is the one that
// ultimately commits the whole top-level Module.Call — Module.Call
// adopts the committed run's final state as the baseline for the next
// call (task.go). That module-level threading, not anything special in
// Sequence itself, is what gives the counter its documented permanence:
// once a call through this Sequence step commits, the advance is baked
// into the state the next call starts from, even if that next call
// later fails for an unrelated reason.
type Sequence struct {
	Branches []*Chain
	Position StateElement
}

// NewSequence builds a Sequence whose position counter defaults to 0.
func NewSequence(name string, branches ...*Chain) Sequence {
	return Sequence{Branches: branches, Position: NewStateElementWithDefault(name, NewAtom(int64(0)))}
}

func (s Sequence) Try(out *Buffer, env Environment, k Continuation) bool {
	posTerm, ok := env.State.Lookup(s.Position)
	if !ok {
		raise(Syntax, "sequence: position element %s has no value or default", s.Position.Name)
	}
	posAtom, ok := posTerm.(Atom)
	if !ok {
		raise(ArgumentType, "sequence: position element %s holds a non-atom value %v", s.Position.Name, posTerm)
	}
	pos, ok := posAtom.Value.(int64)
	if !ok {
		raise(ArgumentType, "sequence: position element %s holds a non-integer value %v", s.Position.Name, posTerm)
	}
	if int(pos) >= len(s.Branches) {
		return false
	}

	nextState := env.State.Bind(s.Position, NewAtom(pos+1))
	if env.Log != nil {
		env.Log.Trace("sequence", "branch", pos)
	}
	return s.Branches[pos].Try(out, env.WithState(nextState), k)
}
