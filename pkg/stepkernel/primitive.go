package stepkernel

// Primitive is a host-implemented task. Its body is opaque to the
// engine; only the calling convention is fixed here.
// It is invoked identically to a compound task from the caller's
// perspective: Call resolves the callee, and if it names a primitive
// rather than a compound task, it runs this method instead of the
// method-try loop.
//
// Call may enumerate multiple solutions by invoking k in a loop,
// returning true at the first commit, exactly like a Step.Try.
type Primitive interface {
	Call(args []Term, out *Buffer, env Environment, k Continuation) bool
}

// PrimitiveFunc adapts a plain function to Primitive.
type PrimitiveFunc func(args []Term, out *Buffer, env Environment, k Continuation) bool

func (f PrimitiveFunc) Call(args []Term, out *Buffer, env Environment, k Continuation) bool {
	return f(args, out, env, k)
}

// currentFrameTaskName is the task name every Module registers
// currentFramePrimitive under, unless a host-supplied task already
// claims it.
const currentFrameTaskName = "%current-frame"

// currentFramePrimitive implements the one primitive the core ships
// itself: it emits the current frame's task name and call depth as
// tokens, giving a method a way to introspect its own call stack
// without any host-level reflection support.
var currentFramePrimitive = PrimitiveFunc(func(args []Term, out *Buffer, env Environment, k Continuation) bool {
	if len(args) != 0 {
		raise(ArgumentCount, "%%current-frame expects no arguments, got %d", len(args))
	}
	depth := int64(0)
	for f := env.Frame; f != nil; f = f.Caller {
		depth++
	}
	name := "<top-level>"
	if env.Frame != nil {
		name = env.Frame.Task
	}
	next, ok := out.UnifyTokens([]Term{NewAtom(name), NewAtom(depth)})
	if !ok {
		return false
	}
	return k(next, env)
})
