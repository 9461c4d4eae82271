package stepkernel

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// ErrorKind classifies the typed failures the engine raises outside the
// ordinary backtrack channel. A step returning false is never one
// of these; these are contract violations that unwind the native stack
// directly and are never caught by backtracking.
type ErrorKind int

const (
	// ArgumentCount: wrong number of args to a primitive or call form.
	ArgumentCount ErrorKind = iota
	// ArgumentType: a term of the wrong shape, e.g. add to a
	// non-collection, or a non-2-tuple given to a heap add.
	ArgumentType
	// ArgumentInstantiation: a value required to be ground contained
	// an unbound variable.
	ArgumentInstantiation
	// Syntax: construction-time validation failure of a step form.
	Syntax
	// CallFailed: a task the host asserted must succeed returned no
	// solution.
	CallFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ArgumentCount:
		return "ArgumentCount"
	case ArgumentType:
		return "ArgumentType"
	case ArgumentInstantiation:
		return "ArgumentInstantiation"
	case Syntax:
		return "Syntax"
	case CallFailed:
		return "CallFailed"
	default:
		return "Unknown"
	}
}

// EngineError is a typed error of one of the ErrorKind values above.
// *EngineError implements error, so it can be extracted with errors.As
// into a target of type **EngineError (var ee *EngineError; errors.As(err, &ee)).
//
// Step.Try's signature returns only a bool, so there is no error return
// path threaded through every step call. An EngineError is instead
// raised by panicking with it and recovered at the one boundary that
// owns unwinding past arbitrary backtracking depth: Module.Call
// (task.go). Ordinary step failure still just returns false through
// every frame; only a genuine contract violation uses panic/recover,
// and only to cross the Try boundary, never to signal backtracking.
type EngineError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewEngineError constructs a typed error of the given kind.
func NewEngineError(kind ErrorKind, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// raise panics with a freshly constructed EngineError; see the comment
// on EngineError for why panic is the propagation mechanism.
func raise(kind ErrorKind, format string, args ...any) {
	panic(NewEngineError(kind, format, args...))
}

// CallException wraps any EngineError (or an aggregate of several, via
// go-multierror, when every method of a dispatch tried and failed for
// different reasons) with the offending task name, its arguments at the
// point of failure, and the output accumulated so far, for diagnostics.
type CallException struct {
	Task   string
	Args   []Term
	Output string
	Cause  error
}

func (e *CallException) Error() string {
	return fmt.Sprintf("call to %s(%v) failed: %v (output so far: %q)", e.Task, e.Args, e.Cause, e.Output)
}

// Unwrap exposes Cause to errors.As/errors.Is.
func (e *CallException) Unwrap() error { return e.Cause }

// NewCallException builds a CallException, collapsing a single-cause
// slice to that cause directly and aggregating more than one with
// go-multierror so the host sees every method's rejection reason rather
// than just the last.
func NewCallException(task string, args []Term, output string, causes []error) *CallException {
	var cause error
	switch len(causes) {
	case 0:
		cause = nil
	case 1:
		cause = causes[0]
	default:
		var merr *multierror.Error
		for _, c := range causes {
			merr = multierror.Append(merr, c)
		}
		cause = merr
	}
	return &CallException{Task: task, Args: args, Output: output, Cause: cause}
}
