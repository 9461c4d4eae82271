package stepkernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListConsUncons(t *testing.T) {
	l := EmptyList.Cons(NewAtom(int64(1))).Cons(NewAtom(int64(2))).Cons(NewAtom(int64(3)))

	head, tail, ok := l.Uncons()
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(3))), head)

	head, _, ok = tail.Uncons()
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(2))), head)

	_, _, ok = EmptyList.Uncons()
	require.False(t, ok)
}

func TestListIsPersistent(t *testing.T) {
	base := EmptyList.Cons(NewAtom("a"))
	extended := base.Cons(NewAtom("b"))

	// base must be unaffected by deriving extended from it.
	head, _, _ := base.Uncons()
	require.Equal(t, Term(NewAtom("a")), head)
	head, _, _ = extended.Uncons()
	require.Equal(t, Term(NewAtom("b")), head)
}

func TestStackPushPop(t *testing.T) {
	s := EmptyStack.Push(NewAtom(int64(1))).Push(NewAtom(int64(2)))
	top, rest, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(2))), top)
	top, _, ok = rest.Pop()
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(1))), top)

	_, _, ok = EmptyStack.Pop()
	require.False(t, ok)
}

func TestQueueFIFOOrder(t *testing.T) {
	var q *Queue = EmptyQueue
	q = q.Enqueue(NewAtom(int64(1)))
	q = q.Enqueue(NewAtom(int64(2)))
	q = q.Enqueue(NewAtom(int64(3)))

	for _, want := range []int64{1, 2, 3} {
		var front Term
		var ok bool
		front, q, ok = q.Dequeue()
		require.True(t, ok)
		require.Equal(t, Term(NewAtom(want)), front)
	}
	_, _, ok := q.Dequeue()
	require.False(t, ok)
}

func TestQueueInterleavedEnqueueDequeue(t *testing.T) {
	var q *Queue = EmptyQueue
	q = q.Enqueue(NewAtom(int64(1)))
	front, q, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(1))), front)

	q = q.Enqueue(NewAtom(int64(2)))
	q = q.Enqueue(NewAtom(int64(3)))
	front, q, _ = q.Dequeue()
	require.Equal(t, Term(NewAtom(int64(2))), front)
	front, _, _ = q.Dequeue()
	require.Equal(t, Term(NewAtom(int64(3))), front)
}

func TestHeapRemovesMaxPriorityFirst(t *testing.T) {
	var h *Heap = EmptyHeap
	h = h.Insert(NewAtom("low"), 1)
	h = h.Insert(NewAtom("high"), 10)
	h = h.Insert(NewAtom("mid"), 5)

	order := []string{"high", "mid", "low"}
	for _, want := range order {
		var v Term
		var ok bool
		v, h, ok = h.RemoveMax()
		require.True(t, ok)
		require.Equal(t, Term(NewAtom(want)), v)
	}
	_, _, ok := h.RemoveMax()
	require.False(t, ok)
}

func TestHeapStructuralEqualIgnoresShape(t *testing.T) {
	a := EmptyHeap.Insert(NewAtom("x"), 1).Insert(NewAtom("y"), 2)
	b := EmptyHeap.Insert(NewAtom("y"), 2).Insert(NewAtom("x"), 1)
	requireTermEqual(t, a, b, "heap equality is order-independent over (value, priority) pairs")
}

func TestSetNoDuplicates(t *testing.T) {
	s := EmptySet.Insert(NewAtom("a")).Insert(NewAtom("a")).Insert(NewAtom("b"))
	require.True(t, s.Contains(NewAtom("a")))
	require.True(t, s.Contains(NewAtom("b")))

	count := 0
	for cur := s; ; {
		_, rest, ok := cur.RemoveAny()
		if !ok {
			break
		}
		count++
		cur = rest
	}
	require.Equal(t, 2, count, "inserting a duplicate must not grow the set")
}

func TestSetRemoveAnyOnEmpty(t *testing.T) {
	_, _, ok := EmptySet.RemoveAny()
	require.False(t, ok)
}

func TestQueueDrainMatchesEnqueueOrder(t *testing.T) {
	var q *Queue = EmptyQueue
	q = q.Enqueue(NewAtom(int64(1)))
	q = q.Enqueue(NewAtom(int64(2)))
	q = q.Enqueue(NewAtom(int64(3)))

	var drained []Term
	for {
		var front Term
		var ok bool
		front, q, ok = q.Dequeue()
		if !ok {
			break
		}
		drained = append(drained, front)
	}

	want := []Term{NewAtom(int64(1)), NewAtom(int64(2)), NewAtom(int64(3))}
	requireTermsEqual(t, want, drained, "queue must drain in enqueue order")
}
