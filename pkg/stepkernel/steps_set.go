package stepkernel

// Set is the `[set expr var]` step: it evaluates expr against the
// environment to a ground value, then extends the state map binding
// the target state variable to it, and continues. Set never fails.
type Set struct {
	Expr   ValueExpr
	Target StateElement
}

func (s Set) Try(out *Buffer, env Environment, k Continuation) bool {
	v, err := s.Expr.Eval(env)
	if err != nil {
		panic(err)
	}
	v = ResolveRecursive(v, env.Bindings)
	next := env.State.Bind(s.Target, v)
	if env.Log != nil {
		env.Log.Trace("set", "var", s.Target.Name, "value", v.String())
	}
	return k(out, env.WithState(next))
}
