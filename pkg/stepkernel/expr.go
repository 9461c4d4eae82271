package stepkernel

// ValueExpr is a node in the argument/expression data model the parser
// hands the core: a ground literal, a reference to a local slot,
// state variable, or module-global, a tuple literal, or an arithmetic
// operator node. Eval produces the Term the node denotes in env,
// without resolving through bindings — callers that need the fully
// resolved value call Resolve/ResolveRecursive on the result themselves
// (this keeps Eval agreeing with how Call passes arguments without
// deep copying).
type ValueExpr interface {
	Eval(env Environment) (Term, error)
}

// ConstExpr is a ground literal or a Var appearing directly in a step's
// static data (e.g. a fresh-variable pattern slot filled in by the
// layer above the core).
type ConstExpr struct{ Value Term }

func (e ConstExpr) Eval(env Environment) (Term, error) { return e.Value, nil }

// LocalRef denotes the local variable at the given slot in the current
// method frame.
type LocalRef struct{ Slot int }

func (e LocalRef) Eval(env Environment) (Term, error) {
	if e.Slot < 0 || e.Slot >= len(env.Locals) {
		return nil, NewEngineError(ArgumentCount, "local slot %d out of range (frame has %d locals)", e.Slot, len(env.Locals))
	}
	return env.Locals[e.Slot], nil
}

// StateRef denotes a state-variable (mutable global) reference, keyed
// by a StateElement. If the element is unbound in env.State and has no
// default, it evaluates to a fresh, always-unbound logic variable —
// the same thing an unset global would mean were it a local: "no
// information yet," not an error. Expression evaluation (Arithmetic)
// is what turns that into an ArgumentInstantiation error if a ground
// value was actually required.
type StateRef struct{ Elem StateElement }

func (e StateRef) Eval(env Environment) (Term, error) {
	if v, ok := env.State.Lookup(e.Elem); ok {
		return v, nil
	}
	return NewVar(e.Elem.Name), nil
}

// GlobalRef denotes a module-global (immutable default) reference: a
// name looked up in the module's default table when absent from state.
// Unlike StateRef it is never itself bound by set/add — only its
// presence in the module's defaults table matters.
type GlobalRef struct{ Name string }

func (e GlobalRef) Eval(env Environment) (Term, error) {
	if v, ok := env.State.LookupByName(e.Name); ok {
		return v, nil
	}
	if env.Module != nil {
		if v, ok := env.Module.Defaults[e.Name]; ok {
			return v, nil
		}
	}
	return NewAtom(nil), nil
}

// TupleExpr builds a tuple literal from sub-expressions.
type TupleExpr struct{ Elems []ValueExpr }

func (e TupleExpr) Eval(env Environment) (Term, error) {
	out := make(Tuple, len(e.Elems))
	for i, sub := range e.Elems {
		v, err := sub.Eval(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ArithOp is a unary or binary arithmetic operator.
type ArithOp int

const (
	OpNeg ArithOp = iota // unary -
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// ArithExpr is a unary or binary arithmetic node. Precedence and
// associativity are the parser's concern; by the time a ValueExpr tree
// reaches the core it is already fully parenthesized by nesting.
type ArithExpr struct {
	Op   ArithOp
	L, R ValueExpr // R is unused (nil) for OpNeg
}

func (e ArithExpr) Eval(env Environment) (Term, error) {
	l, err := numericOperand(e.L, env)
	if err != nil {
		return nil, err
	}
	if e.Op == OpNeg {
		return negate(l), nil
	}
	r, err := numericOperand(e.R, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Op, l, r)
}

// numericOperand evaluates and fully resolves sub, requiring the result
// be a ground numeric atom.
func numericOperand(sub ValueExpr, env Environment) (Atom, error) {
	v, err := sub.Eval(env)
	if err != nil {
		return Atom{}, err
	}
	resolved := ResolveRecursive(v, env.Bindings)
	if !IsGround(resolved, env.Bindings) {
		return Atom{}, NewEngineError(ArgumentInstantiation, "arithmetic operand %v is not ground", v)
	}
	a, ok := resolved.(Atom)
	if !ok {
		return Atom{}, NewEngineError(ArgumentType, "arithmetic operand %v is not numeric", resolved)
	}
	switch a.Value.(type) {
	case int64, float64:
		return a, nil
	default:
		return Atom{}, NewEngineError(ArgumentType, "arithmetic operand %v is not numeric", resolved)
	}
}

func negate(a Atom) Term {
	switch v := a.Value.(type) {
	case int64:
		return NewAtom(-v)
	case float64:
		return NewAtom(-v)
	}
	panic("unreachable: numericOperand guarantees int64 or float64")
}

// applyBinary implements the arithmetic promotion rule: int op int ->
// int, except int division that isn't exact promotes to float; any
// float operand promotes the result to float.
func applyBinary(op ArithOp, l, r Atom) (Term, error) {
	li, lIsInt := l.Value.(int64)
	ri, rIsInt := r.Value.(int64)

	if lIsInt && rIsInt {
		switch op {
		case OpAdd:
			return NewAtom(li + ri), nil
		case OpSub:
			return NewAtom(li - ri), nil
		case OpMul:
			return NewAtom(li * ri), nil
		case OpDiv:
			if ri == 0 {
				return nil, NewEngineError(ArgumentType, "division by zero")
			}
			if li%ri == 0 {
				return NewAtom(li / ri), nil
			}
			return NewAtom(float64(li) / float64(ri)), nil
		}
	}

	lf := asFloat(l)
	rf := asFloat(r)
	switch op {
	case OpAdd:
		return NewAtom(lf + rf), nil
	case OpSub:
		return NewAtom(lf - rf), nil
	case OpMul:
		return NewAtom(lf * rf), nil
	case OpDiv:
		if rf == 0 {
			return nil, NewEngineError(ArgumentType, "division by zero")
		}
		return NewAtom(lf / rf), nil
	}
	panic("unreachable: exhaustive ArithOp switch")
}

func asFloat(a Atom) float64 {
	switch v := a.Value.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	panic("unreachable: numericOperand guarantees int64 or float64")
}
