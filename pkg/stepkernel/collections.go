package stepkernel

import "fmt"

// List is a persistent cons-list collection. Add prepends (like a
// stack); RemoveNext takes the head. It is the default collection
// produced by an empty collection literal in source.
type List struct {
	head Term
	tail *List
}

// EmptyList is the canonical empty list value.
var EmptyList = (*List)(nil)

func (l *List) String() string {
	if l == nil {
		return "()"
	}
	s := "("
	for n := l; n != nil; n = n.tail {
		if n != l {
			s += " "
		}
		s += n.head.String()
	}
	return s + ")"
}

// StructuralEqual compares two lists element-wise in order.
func (l *List) StructuralEqual(other Term) bool {
	o, ok := other.(*List)
	if !ok {
		return false
	}
	a, b := l, o
	for a != nil && b != nil {
		if !a.head.StructuralEqual(b.head) {
			return false
		}
		a, b = a.tail, b.tail
	}
	return a == nil && b == nil
}

// Cons prepends elt, returning a new list sharing l's tail.
func (l *List) Cons(elt Term) *List { return &List{head: elt, tail: l} }

// Uncons returns the head element and remaining tail, or ok=false if
// empty.
func (l *List) Uncons() (Term, *List, bool) {
	if l == nil {
		return nil, nil, false
	}
	return l.head, l.tail, true
}

// Stack is a persistent LIFO collection; Add pushes, RemoveNext pops
// the top. Structurally it is identical to List but kept as a distinct
// type so collection-kind ArgumentType errors are precise.
type Stack struct {
	top  Term
	rest *Stack
}

var EmptyStack = (*Stack)(nil)

func (s *Stack) String() string {
	if s == nil {
		return "[]"
	}
	str := "["
	for n := s; n != nil; n = n.rest {
		if n != s {
			str += " "
		}
		str += n.top.String()
	}
	return str + "]"
}

func (s *Stack) StructuralEqual(other Term) bool {
	o, ok := other.(*Stack)
	if !ok {
		return false
	}
	a, b := s, o
	for a != nil && b != nil {
		if !a.top.StructuralEqual(b.top) {
			return false
		}
		a, b = a.rest, b.rest
	}
	return a == nil && b == nil
}

// Push returns a new stack with elt on top.
func (s *Stack) Push(elt Term) *Stack { return &Stack{top: elt, rest: s} }

// Pop returns the top element and remaining stack, or ok=false if empty.
func (s *Stack) Pop() (Term, *Stack, bool) {
	if s == nil {
		return nil, nil, false
	}
	return s.top, s.rest, true
}

// Queue is a persistent FIFO collection built from two persistent
// lists (an in-list and a reversed out-list), giving amortized O(1)
// enqueue/dequeue while remaining fully persistent (no node is ever
// mutated; a stale queue handle keeps seeing its own history).
type Queue struct {
	in  *List // enqueued in reverse order (most recent first)
	out *List // dequeue order; front is out.head
}

// EmptyQueue is the canonical empty queue.
var EmptyQueue = &Queue{}

func (q *Queue) String() string {
	s := "<"
	first := true
	for _, e := range q.items() {
		if !first {
			s += " "
		}
		s += e.String()
		first = false
	}
	return s + ">"
}

func (q *Queue) items() []Term {
	var items []Term
	for n := q.out; n != nil; n = n.tail {
		items = append(items, n.head)
	}
	rev := make([]Term, 0, 8)
	for n := q.in; n != nil; n = n.tail {
		rev = append(rev, n.head)
	}
	for i := len(rev) - 1; i >= 0; i-- {
		items = append(items, rev[i])
	}
	return items
}

func (q *Queue) StructuralEqual(other Term) bool {
	o, ok := other.(*Queue)
	if !ok {
		return false
	}
	a, b := q.items(), o.items()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].StructuralEqual(b[i]) {
			return false
		}
	}
	return true
}

// Enqueue returns a new queue with elt appended at the back.
func (q *Queue) Enqueue(elt Term) *Queue {
	if q == nil {
		q = EmptyQueue
	}
	return &Queue{in: q.in.Cons(elt), out: q.out}
}

// Dequeue returns the front element and the remaining queue, or
// ok=false if empty.
func (q *Queue) Dequeue() (Term, *Queue, bool) {
	if q == nil {
		return nil, nil, false
	}
	if q.out != nil {
		head, tail, _ := q.out.Uncons()
		return head, &Queue{in: q.in, out: tail}, true
	}
	if q.in == nil {
		return nil, nil, false
	}
	// Reverse in onto out; this is the only place Queue does O(n) work,
	// amortized across the n enqueues that built `in`.
	var reversed *List
	for n := q.in; n != nil; n = n.tail {
		reversed = reversed.Cons(n.head)
	}
	head, tail, _ := reversed.Uncons()
	return head, &Queue{in: nil, out: tail}, true
}

// heapEntry is one (value, priority) pair stored in a Heap.
type heapEntry struct {
	value    Term
	priority float64
}

// Heap is a persistent max-priority heap of (value, priority) pairs,
// implemented as a leftist heap so merge (and hence insert/remove-max)
// runs in O(log n) and never mutates an existing node.
type Heap struct {
	entry       heapEntry
	rank        int
	left, right *Heap
}

var EmptyHeap = (*Heap)(nil)

func (h *Heap) String() string {
	s := "{"
	first := true
	for _, e := range h.entries() {
		if !first {
			s += " "
		}
		s += fmt.Sprintf("(%s %v)", e.value.String(), e.priority)
		first = false
	}
	return s + "}"
}

func (h *Heap) entries() []heapEntry {
	if h == nil {
		return nil
	}
	all := []heapEntry{h.entry}
	all = append(all, h.left.entries()...)
	all = append(all, h.right.entries()...)
	return all
}

func (h *Heap) StructuralEqual(other Term) bool {
	o, ok := other.(*Heap)
	if !ok {
		return false
	}
	// Heap shape is an implementation detail; compare multisets of
	// entries instead (order-independent, matching what removeNext
	// observes regardless of internal tree shape).
	a, b := h.entries(), o.entries()
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ea := range a {
		found := false
		for i, eb := range b {
			if used[i] {
				continue
			}
			if ea.priority == eb.priority && ea.value.StructuralEqual(eb.value) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func rankOf(h *Heap) int {
	if h == nil {
		return 0
	}
	return h.rank
}

// merge combines two leftist max-heaps, preferring the larger priority
// at the root, with ties ignored (stable neither way).
func merge(a, b *Heap) *Heap {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.entry.priority > a.entry.priority {
		a, b = b, a
	}
	merged := merge(a.right, b)
	left, right := a.left, merged
	if rankOf(left) < rankOf(right) {
		left, right = right, left
	}
	return &Heap{entry: a.entry, rank: rankOf(right) + 1, left: left, right: right}
}

// Insert returns a new heap with (value, priority) added.
func (h *Heap) Insert(value Term, priority float64) *Heap {
	node := &Heap{entry: heapEntry{value: value, priority: priority}, rank: 1}
	return merge(h, node)
}

// RemoveMax returns the maximum-priority element and the remaining
// heap, or ok=false if empty.
func (h *Heap) RemoveMax() (Term, *Heap, bool) {
	if h == nil {
		return nil, nil, false
	}
	return h.entry.value, merge(h.left, h.right), true
}

// Set is a persistent unordered collection of distinct (by structural
// equality) terms, backed by a cons-list. Add inserts only if the
// element is not already present (set semantics); RemoveNext removes an
// arbitrary element, since a set has no defined order.
type Set struct {
	elems *List
}

var EmptySet = &Set{}

func (s *Set) String() string {
	str := "#{"
	first := true
	for n := s.list(); n != nil; n = n.tail {
		if !first {
			str += " "
		}
		str += n.head.String()
		first = false
	}
	return str + "}"
}

func (s *Set) list() *List {
	if s == nil {
		return nil
	}
	return s.elems
}

func (s *Set) StructuralEqual(other Term) bool {
	o, ok := other.(*Set)
	if !ok {
		return false
	}
	as, bs := s.toSlice(), o.toSlice()
	if len(as) != len(bs) {
		return false
	}
	for _, a := range as {
		found := false
		for _, b := range bs {
			if a.StructuralEqual(b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Set) toSlice() []Term {
	var out []Term
	for n := s.list(); n != nil; n = n.tail {
		out = append(out, n.head)
	}
	return out
}

// Contains reports whether elt is structurally present in the set.
func (s *Set) Contains(elt Term) bool {
	for n := s.list(); n != nil; n = n.tail {
		if n.head.StructuralEqual(elt) {
			return true
		}
	}
	return false
}

// Insert returns a new set with elt added, unless already present.
func (s *Set) Insert(elt Term) *Set {
	if s.Contains(elt) {
		if s == nil {
			return EmptySet
		}
		return s
	}
	return &Set{elems: s.list().Cons(elt)}
}

// RemoveAny returns an arbitrary element and the remaining set, or
// ok=false if empty. "Arbitrary" here is deterministic (the most
// recently inserted element) but callers must not depend on order.
func (s *Set) RemoveAny() (Term, *Set, bool) {
	head, tail, ok := s.list().Uncons()
	if !ok {
		return nil, nil, false
	}
	return head, &Set{elems: tail}, true
}
