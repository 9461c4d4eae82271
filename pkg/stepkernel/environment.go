package stepkernel

import (
	"github.com/hashicorp/go-hclog"
	uuid "github.com/hashicorp/go-uuid"
)

// Frame is one call's entry in the stack-trace chain: it names the
// task and method being executed, records the call's arguments, and
// links to the caller's frame so a back-trace can be reconstructed
// (see Backtrace). The locals array lives on Environment, not here. Frame identity is a
// random token rather than a monotonic counter so that concurrently
// running independent top-level interpreters (each single-threaded
// internally) never collide on frame IDs in shared logs.
type Frame struct {
	ID     string
	Task   string
	Method int
	Args   []Term
	Caller *Frame
}

func newFrame(task string, method int, args []Term, caller *Frame) *Frame {
	id, err := uuid.GenerateUUID()
	if err != nil {
		// go-uuid only fails if the system RNG is unreadable; fall
		// back to a fixed token rather than panicking a library call.
		id = "unavailable"
	}
	return &Frame{ID: id, Task: task, Method: method, Args: args, Caller: caller}
}

// FrameInfo is the rendered, host-facing view of one Frame, used by
// Backtrace.
type FrameInfo struct {
	Task   string
	Method int
	Args   []Term
}

// Backtrace walks the caller chain from f outward (most recent call
// first), rendering each Frame as a FrameInfo.
func (f *Frame) Backtrace() []FrameInfo {
	var out []FrameInfo
	for n := f; n != nil; n = n.Caller {
		out = append(out, FrameInfo{Task: n.Task, Method: n.Method, Args: n.Args})
	}
	return out
}

// Environment bundles everything a step needs to run: the module's
// immutable task table and defaults, the current method's locals
// array, the current binding list, the current state map, and the
// current call frame. Environments are cheap value-type bundles —
// copy-on-derive, never stored beyond the lifetime of the Try call
// that produced them.
type Environment struct {
	Module   *Module
	Locals   []*Var
	Bindings *BindingList
	State    *StateMap
	Frame    *Frame
	Log      hclog.Logger
}

// WithBindings returns a copy of env with Bindings replaced.
func (env Environment) WithBindings(b *BindingList) Environment {
	env.Bindings = b
	return env
}

// WithState returns a copy of env with State replaced.
func (env Environment) WithState(s *StateMap) Environment {
	env.State = s
	return env
}

// Local returns the logic variable at slot i in the current method's
// frame.
func (env Environment) Local(i int) *Var {
	return env.Locals[i]
}
