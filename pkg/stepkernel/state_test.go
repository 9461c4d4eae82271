package stepkernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateMapBindIsPersistent(t *testing.T) {
	elem := NewStateElement("Count")
	s1 := EmptyState.Bind(elem, NewAtom(int64(1)))
	s2 := s1.Bind(elem, NewAtom(int64(2)))

	v1, ok := s1.Lookup(elem)
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(1))), v1)

	v2, ok := s2.Lookup(elem)
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(2))), v2)
}

func TestStateMapDefaultFallback(t *testing.T) {
	elem := NewStateElementWithDefault("Position", NewAtom(int64(0)))

	v, ok := EmptyState.Lookup(elem)
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(0))), v)

	bound := EmptyState.Bind(elem, NewAtom(int64(3)))
	v, ok = bound.Lookup(elem)
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(int64(3))), v)
}

func TestStateMapNoDefaultIsUnboundUntilSet(t *testing.T) {
	elem := NewStateElement("Seen")
	_, ok := EmptyState.Lookup(elem)
	require.False(t, ok)
}

func TestStateMapLookupByName(t *testing.T) {
	elem := NewStateElement("Flag")
	s := EmptyState.Bind(elem, NewAtom(true))
	v, ok := s.LookupByName("Flag")
	require.True(t, ok)
	require.Equal(t, Term(NewAtom(true)), v)

	_, ok = s.LookupByName("Other")
	require.False(t, ok)
}
