package stepkernel

import (
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Method is an argument pattern plus a step chain. Pattern is evaluated
// against a fresh locals frame (so a LocalRef pattern element yields
// that frame's fresh variable) and then unified element-wise against
// the actual call arguments.
type Method struct {
	Pattern    []ValueExpr
	LocalCount int
	Body       *Chain
}

// Task is a named compound task (one or more Methods) or a primitive
// (host-implemented). Exactly one of Methods or Primitive is set.
type Task struct {
	Name      string
	Methods   []Method
	Primitive Primitive
}

// IsPrimitive reports whether t is host-implemented rather than
// compound.
func (t *Task) IsPrimitive() bool { return t.Primitive != nil }

// Module is the immutable task table plus defaults a set of methods
// run against, together with the mutable current-state baseline that
// makes Sequence's (and any other state element's) persistence visible
// across separate top-level calls (see steps_sequence.go).
//
// A Module is safe for sequential reuse across many Module.Call
// invocations from a single goroutine; evaluation inside one
// interpreter instance is never concurrent, so currentState is guarded
// by a plain mutex only to catch accidental concurrent misuse from the
// host, not to support it.
type Module struct {
	Name     string
	Defaults map[string]Term
	Log      hclog.Logger
	Metrics  *Metrics

	registry *taskRegistry

	mu           sync.Mutex
	currentState *StateMap
	lastMiss     *CallException
}

// NewModule constructs a Module from a set of tasks, validating every
// call step's static callee and every set/add/removeNext step's state
// variable name at construction time, so a malformed chain is rejected
// before it can ever run rather than failing mid-call. Static callee
// names beginning with "%" are not checked. defaults may be nil.
func NewModule(name string, tasks []*Task, defaults map[string]Term, log hclog.Logger) (*Module, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if defaults == nil {
		defaults = map[string]Term{}
	}

	haveCurrentFrame := false
	for _, t := range tasks {
		if t.Name == currentFrameTaskName {
			haveCurrentFrame = true
			break
		}
	}
	if !haveCurrentFrame {
		tasks = append(tasks, &Task{Name: currentFrameTaskName, Primitive: currentFramePrimitive})
	}

	reg, err := newTaskRegistry(tasks)
	if err != nil {
		return nil, err
	}

	m := &Module{
		Name:         name,
		Defaults:     defaults,
		Log:          log,
		Metrics:      NewMetrics(nil),
		registry:     reg,
		currentState: EmptyState,
	}

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.Name] = true
	}
	for _, t := range tasks {
		for _, method := range t.Methods {
			if verr := validateChain(method.Body, known); verr != nil {
				return nil, verr
			}
		}
	}

	return m, nil
}

// validateChain walks a step chain looking for statically-checkable
// construction-time errors: a Call step with a static callee naming an
// unknown task (names beginning with "%" are exempt from this check),
// and a set/add/removeNext step targeting a name that
// fails the uppercase-first-letter global-name predicate. It
// returns a plain error (not a panic) because NewModule already has a
// normal error-return channel to report construction failures through.
func validateChain(c *Chain, knownTasks map[string]bool) error {
	for n := c; n != nil; n = n.Next {
		switch s := n.Step.(type) {
		case Call:
			if static, ok := s.Callee.(StaticCallee); ok {
				if !knownTasks[static.Name] && !strings.HasPrefix(static.Name, "%") {
					return NewEngineError(Syntax, "call to unknown task %q", static.Name)
				}
			}
		case Set:
			if err := validateGlobalName(s.Target.Name); err != nil {
				return err
			}
		case Add:
			if err := validateGlobalName(s.Target.Name); err != nil {
				return err
			}
		case RemoveNext:
			if err := validateGlobalName(s.Source.Name); err != nil {
				return err
			}
		case *Cool:
			if err := validateChain(s.Body, knownTasks); err != nil {
				return err
			}
		case Sequence:
			for _, branch := range s.Branches {
				if err := validateChain(branch, knownTasks); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// IsValidGlobalName reports whether name is a valid global/state name:
// it begins with an uppercase letter. The exact rule otherwise is
// delegated to the parser; the core only enforces the one bit of the
// rule it must check at construction time.
func IsValidGlobalName(name string) bool {
	if name == "" {
		return false
	}
	r := name[0]
	return r >= 'A' && r <= 'Z'
}

func validateGlobalName(name string) error {
	if !IsValidGlobalName(name) {
		return NewEngineError(Syntax, "%q is not a valid state/global name (must start with an uppercase letter)", name)
	}
	return nil
}

// dispatch runs the method-try loop for a compound task t called with
// actual args, threading env (whose Bindings/State the
// caller supplied) and committing the first method whose pattern
// unifies and whose body eventually commits. When no method commits,
// dispatch returns the per-method rejection reason alongside false, so
// a caller that wants to know why (Module.Call, for the outermost
// task) can report all of them rather than just the fact of failure.
func (m *Module) dispatch(t *Task, args []Term, out *Buffer, env Environment, k Continuation) (bool, []error) {
	var causes []error
	for mi, method := range t.Methods {
		locals := make([]*Var, method.LocalCount)
		for i := range locals {
			locals[i] = NewVar("")
		}
		frame := newFrame(t.Name, mi, args, env.Frame)
		methodEnv := Environment{
			Module:   m,
			Locals:   locals,
			Bindings: env.Bindings,
			State:    env.State,
			Frame:    frame,
			Log:      env.Log,
		}

		patternTerms := make([]Term, len(method.Pattern))
		for i, pe := range method.Pattern {
			v, err := pe.Eval(methodEnv)
			if err != nil {
				panic(err)
			}
			patternTerms[i] = v
		}
		if len(patternTerms) != len(args) {
			causes = append(causes, NewEngineError(ArgumentCount,
				"task %s method %d expects %d argument(s), got %d", t.Name, mi, len(patternTerms), len(args)))
			continue
		}

		bound, ok := UnifyAll(args, patternTerms, env.Bindings)
		m.Metrics.observeUnify(ok)
		if !ok {
			causes = append(causes, NewEngineError(CallFailed, "task %s method %d: pattern did not unify", t.Name, mi))
			continue
		}

		methodEnv.Bindings = bound
		if env.Log != nil {
			env.Log.Trace("dispatch", "task", t.Name, "method", mi)
		}
		if method.Body.Try(out, methodEnv, k) {
			return true, nil
		}
		m.Metrics.observeBacktrack()
		causes = append(causes, NewEngineError(CallFailed, "task %s method %d: pattern unified but body never committed", t.Name, mi))
	}
	return false, causes
}

// invoke resolves name against m's registry and runs it — compound
// tasks through dispatch, primitives directly — unifying neither args
// nor results beyond what dispatch/Primitive.Call themselves do. This
// is the single entry point the Call step routes through for a nested
// call; Module.Call (below) calls dispatch directly instead, since only
// the outermost call's own rejection causes are worth keeping.
func (m *Module) invoke(name string, args []Term, out *Buffer, env Environment, k Continuation) bool {
	t, ok := m.registry.lookup(name)
	if !ok {
		raise(CallFailed, "no such task %q", name)
	}
	childEnv := env
	childEnv.Module = m
	if t.IsPrimitive() {
		frame := newFrame(name, -1, args, env.Frame)
		childEnv.Frame = frame
		return t.Primitive.Call(args, out, childEnv, k)
	}
	committed, _ := m.dispatch(t, args, out, childEnv, k)
	return committed
}

// Call is the host entry point: it dispatches to the named task and,
// if a solution commits, returns the rendered output string, adopting
// the committed run's final state as the baseline for the next Call
// (steps_sequence.go). committed is false (with no error) for the
// ordinary "no solution" outcome; err is non-nil only for a genuine
// EngineError/CallException contract violation. A false/nil result
// still records why each of the task's methods was rejected; see
// LastMiss.
func (m *Module) Call(taskName string, args ...Term) (output string, committed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*EngineError)
			if !ok {
				panic(r)
			}
			m.lastMiss = nil
			err = NewCallException(taskName, args, "", []error{e})
		}
	}()

	t, ok := m.registry.lookup(taskName)
	if !ok {
		raise(CallFailed, "no such task %q", taskName)
	}

	out := NewWriteBuffer()
	env := Environment{Module: m, Bindings: nil, State: m.currentState, Log: m.Log}

	var finalOut *Buffer
	var finalEnv Environment
	capture := func(o *Buffer, e Environment) bool {
		finalOut, finalEnv = o, e
		return true
	}

	var committedNow bool
	var causes []error
	if t.IsPrimitive() {
		frame := newFrame(taskName, -1, args, env.Frame)
		env.Frame = frame
		committedNow = t.Primitive.Call(args, out, env, capture)
	} else {
		committedNow, causes = m.dispatch(t, args, out, env, capture)
	}

	if !committedNow {
		m.lastMiss = NewCallException(taskName, args, "", causes)
		return "", false, nil
	}
	m.lastMiss = nil
	m.currentState = finalEnv.State
	return finalOut.AsString(), true, nil
}

// LastMiss returns the diagnostics collected by the most recent Call
// that returned committed=false with a nil error: one cause per method
// of the top-level task that was tried and rejected, aggregated with
// go-multierror when more than one method was tried. It is nil after a
// call that committed or raised an EngineError.
func (m *Module) LastMiss() *CallException {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMiss
}
