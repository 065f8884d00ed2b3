package score

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an unordered collection of unique comparable values. Sets are not
// safe for concurrent writes; build them with NewSet.
type Set[T comparable] struct {
	inner mapset.Set[T]
}

// NewSet returns a set holding the given values.
func NewSet[T comparable](vals ...T) Set[T] {
	return Set[T]{inner: mapset.NewThreadUnsafeSet(vals...)}
}

func (s Set[T]) get() mapset.Set[T] {
	if s.inner == nil {
		return mapset.NewThreadUnsafeSet[T]()
	}
	return s.inner
}

// Add inserts v and reports whether it was not present before.
func (s Set[T]) Add(v T) bool {
	return s.inner.Add(v)
}

func (s Set[T]) Remove(v T) {
	if s.inner != nil {
		s.inner.Remove(v)
	}
}

func (s Set[T]) Has(v T) bool {
	return s.inner != nil && s.inner.ContainsOne(v)
}

func (s Set[T]) Len() int {
	if s.inner == nil {
		return 0
	}
	return s.inner.Cardinality()
}

// Intersect returns a new set with the values present in both s and o.
func (s Set[T]) Intersect(o Set[T]) Set[T] {
	return Set[T]{inner: s.get().Intersect(o.get())}
}

// Union returns a new set with the values of s and all sets in others.
func (s Set[T]) Union(others ...Set[T]) Set[T] {
	out := s.get().Clone()
	for _, o := range others {
		out = out.Union(o.get())
	}
	return Set[T]{inner: out}
}

// Values returns the members of s in no particular order.
func (s Set[T]) Values() []T {
	return s.get().ToSlice()
}
