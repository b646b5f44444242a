package ecs

import "github.com/kamstrup/intmap"

type anyStore interface {
	remove(id entityID) bool
	has(id entityID) bool
	size() int
}

// componentStore is a dense array of values with an intmap index from entity
// slot to position, so iteration is linear and removal is a swap.
type componentStore[T any] struct {
	index  *intmap.Map[entityID, int]
	ids    []entityID
	values []*T
}

func newComponentStore[T any]() *componentStore[T] {
	return &componentStore[T]{index: intmap.New[entityID, int](64)}
}

func (s *componentStore[T]) set(id entityID, v *T) {
	if i, ok := s.index.Get(id); ok {
		s.values[i] = v
		return
	}
	s.index.Put(id, len(s.ids))
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
}

func (s *componentStore[T]) get(id entityID) (*T, bool) {
	i, ok := s.index.Get(id)
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

func (s *componentStore[T]) has(id entityID) bool {
	_, ok := s.index.Get(id)
	return ok
}

func (s *componentStore[T]) remove(id entityID) bool {
	i, ok := s.index.Get(id)
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	if i != last {
		moved := s.ids[last]
		s.ids[i] = moved
		s.values[i] = s.values[last]
		s.index.Put(moved, i)
	}
	s.values[last] = nil
	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.index.Del(id)
	return true
}

func (s *componentStore[T]) size() int { return len(s.ids) }

// snapshot copies the slot list so callbacks may add or remove components
// while iterating.
func (s *componentStore[T]) snapshot() []entityID {
	return append([]entityID(nil), s.ids...)
}
