package stepkernel

// CalleeRef resolves a Call step's target task name. It is either a
// name fixed at construction time (StaticCallee) or a reference that
// must resolve, at run time, to an atom naming a task (VarCallee).
type CalleeRef interface {
	Resolve(env Environment) (string, error)
}

// StaticCallee names a task directly.
type StaticCallee struct{ Name string }

func (c StaticCallee) Resolve(env Environment) (string, error) { return c.Name, nil }

// VarCallee resolves Ref (typically a LocalRef or StateRef) to an atom
// holding the task name.
type VarCallee struct{ Ref ValueExpr }

func (c VarCallee) Resolve(env Environment) (string, error) {
	v, err := c.Ref.Eval(env)
	if err != nil {
		return "", err
	}
	resolved := Resolve(v, env.Bindings)
	a, ok := resolved.(Atom)
	if !ok {
		return "", NewEngineError(ArgumentType, "callee reference did not resolve to a task name, got %v", resolved)
	}
	name, ok := a.Value.(string)
	if !ok {
		return "", NewEngineError(ArgumentType, "callee reference did not resolve to a task name, got %v", resolved)
	}
	return name, nil
}

// Call holds a callee designator and an argument-expression array. On
// execution it resolves the callee and args, then enters Module.invoke,
// which dispatches to a compound task's method-try loop or directly to
// a primitive. Arguments are passed without deep copying: the callee
// sees the caller's own logic variables, so any binding the callee
// makes is visible through the caller's terms once the call commits.
type Call struct {
	Callee CalleeRef
	Args   []ValueExpr
}

func (s Call) Try(out *Buffer, env Environment, k Continuation) bool {
	name, err := s.Callee.Resolve(env)
	if err != nil {
		panic(err)
	}

	args := make([]Term, len(s.Args))
	for i, a := range s.Args {
		v, err := a.Eval(env)
		if err != nil {
			panic(err)
		}
		args[i] = v
	}

	if env.Log != nil {
		env.Log.Trace("call", "task", name, "args", args)
	}

	// The callee must see the caller's own bindings/state but the
	// caller's own Locals array and Frame belong to this method's
	// invocation, not the callee's — invoke (task.go) builds the
	// callee's own Environment from scratch, keyed off Bindings/State
	// only.
	return env.Module.invoke(name, args, out, env, func(out2 *Buffer, calleeEnv Environment) bool {
		// Resume the caller's own frame/locals, carrying forward only
		// what the callee could actually have changed: bindings,
		// state, and output.
		resumed := env
		resumed.Bindings = calleeEnv.Bindings
		resumed.State = calleeEnv.State
		return k(out2, resumed)
	})
}
