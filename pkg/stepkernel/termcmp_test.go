package stepkernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// termComparer lets go-cmp walk Term values (including ones built on
// unexported fields, like *Var and the persistent collections)
// without reflecting into their internals: two terms are equal
// exactly when StructuralEqual says so. cmp applies a Comparer
// declared over an interface type to any pair of values assignable to
// that interface, so this one Comparer covers every concrete Term
// shape — Atom, *Var, Tuple, *List, *Stack, *Queue, *Heap, *Set —
// wherever they appear, including nested inside a []Term or a Tuple.
var termComparer = cmp.Comparer(func(a, b Term) bool {
	return a.StructuralEqual(b)
})

// requireTermEqual fails the test with a structural diff (not just a
// bool) when want and got disagree.
func requireTermEqual(t *testing.T, want, got Term, msg string) {
	t.Helper()
	if diff := cmp.Diff(want, got, termComparer); diff != "" {
		t.Fatalf("%s: terms differ (-want +got):\n%s", msg, diff)
	}
}

// requireTermsEqual is requireTermEqual for a whole slice at once,
// e.g. a collection drained into order.
func requireTermsEqual(t *testing.T, want, got []Term, msg string) {
	t.Helper()
	if diff := cmp.Diff(want, got, termComparer); diff != "" {
		t.Fatalf("%s: term slices differ (-want +got):\n%s", msg, diff)
	}
}
