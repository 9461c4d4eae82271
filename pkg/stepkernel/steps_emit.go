package stepkernel

// Emit holds a fixed token sequence. In write mode it appends the
// tokens (resolved against the current bindings) and continues — it
// cannot fail in write mode. In read mode it structurally unifies the
// tokens against the next input tokens and continues only if every
// token matches.
type Emit struct {
	Tokens []ValueExpr
}

func (s Emit) Try(out *Buffer, env Environment, k Continuation) bool {
	resolved := make([]Term, len(s.Tokens))
	for i, te := range s.Tokens {
		v, err := te.Eval(env)
		if err != nil {
			panic(err)
		}
		resolved[i] = ResolveRecursive(v, env.Bindings)
	}

	next, ok := out.UnifyTokens(resolved)
	if !ok {
		return false
	}
	if env.Log != nil {
		env.Log.Trace("emit", "tokens", resolved)
	}
	return k(next, env)
}
