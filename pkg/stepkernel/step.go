package stepkernel

// Continuation is invoked when a step (or chain of steps) commits to a
// particular set of bindings, state, and output. It carries the engine
// forward to whatever comes after the step that invoked it — either the
// next step in the same chain, or the caller's continuation if this was
// the last step in a method.
//
// Contract: a Continuation returns true if everything downstream
// of it eventually commits, false if every downstream choice was
// exhausted. It may be invoked more than once by a single Step.Try call
// (once per candidate solution that step offers) but must not be
// invoked after it has already returned true for this Try call.
type Continuation func(out *Buffer, env Environment) bool

// Step is one unit of execution inside a method. Try either:
//
//   - returns true after invoking k directly or transitively and
//     getting true back (commit), or
//   - returns false having invoked k zero or more times, each call
//     returning false (every choice this step offers is exhausted;
//     the caller backtracks to its own next alternative).
//
// Try must never leave any persistent structure (bindings, state) in a
// way that differs from what the caller passed in, when it returns
// false — this holds automatically because BindingList and StateMap are
// persistent and Buffer discipline never overwrites a view's own
// partition. A Step implementation restores only the one kind of
// mutable state the engine allows (Cool's fuse, Conjugate's in-place
// token edit) and only on the false path.
type Step interface {
	Try(out *Buffer, env Environment, k Continuation) bool
}

// Chain is a singly-linked sequence of steps, run left to right. A nil
// *Chain is the empty chain: running it just invokes k.
type Chain struct {
	Step Step
	Next *Chain
}

// NewChain builds a Chain from steps in order.
func NewChain(steps ...Step) *Chain {
	var head *Chain
	for i := len(steps) - 1; i >= 0; i-- {
		head = &Chain{Step: steps[i], Next: head}
	}
	return head
}

// Try runs the chain starting at c: c's step runs with a continuation
// that dispatches to c.Next, bottoming out at k once the chain is
// exhausted. Each step is a native-stack frame, and falling back out of
// a Try call is exactly how backtracking reaches the previous choice
// point.
func (c *Chain) Try(out *Buffer, env Environment, k Continuation) bool {
	if c == nil {
		return k(out, env)
	}
	return c.Step.Try(out, env, func(out2 *Buffer, env2 Environment) bool {
		return c.Next.Try(out2, env2, k)
	})
}
