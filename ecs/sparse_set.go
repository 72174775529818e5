package ecs

import "slices"

// SparseSet stores one value per entity in a dense slice, indexed through a sparse
// slot table.
type SparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int
}

func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	slot := int(e.id()) - 1
	if slot < 0 || slot >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[slot]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has reports whether e (with its exact generation) has a value.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	idx, ok := s.index(e)
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[idx], true
}

// Set inserts or replaces the value for e. A stale generation in the same slot is
// replaced.
func (s *SparseSet[T]) Set(e Entity, v T) {
	slot := int(e.id()) - 1
	if slot < 0 {
		return
	}
	for len(s.sparse) <= slot {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[slot]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[slot] = len(s.dense) - 1
}

func (s *SparseSet[T]) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}

// Entities returns the members in ascending slot order.
func (s *SparseSet[T]) Entities() []Entity {
	out := slices.Clone(s.dense)
	slices.SortFunc(out, func(a, b Entity) int {
		return int(a.id()) - int(b.id())
	})
	return out
}

// Each calls fn for every member in ascending slot order.
func (s *SparseSet[T]) Each(fn func(Entity, T)) {
	for _, e := range s.Entities() {
		idx, _ := s.index(e)
		fn(e, s.values[idx])
	}
}
