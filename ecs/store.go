package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

const storeInitialCapacity = 256

// Store is a dense component buffer for one component type. Values live in a
// packed slice; an explicit handle→row map records which entities carry the
// component, so presence is never inferred from buffer length.
type Store[T any] struct {
	rows   *intmap.Map[Handle, int32]
	items  []T
	owners []Handle
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		rows: intmap.New[Handle, int32](storeInitialCapacity),
	}
}

// Set attaches the component value to the entity, overwriting any
// previous value.
func (s *Store[T]) Set(h Handle, v T) {
	if row, ok := s.rows.Get(h); ok {
		s.items[row] = v
		return
	}
	s.rows.Put(h, int32(len(s.items)))
	s.items = append(s.items, v)
	s.owners = append(s.owners, h)
}

// Get returns a pointer into the buffer, or nil when the entity does not
// carry this component. The pointer is valid until the next Set or Remove.
func (s *Store[T]) Get(h Handle) *T {
	row, ok := s.rows.Get(h)
	if !ok {
		return nil
	}
	return &s.items[row]
}

func (s *Store[T]) Has(h Handle) bool {
	_, ok := s.rows.Get(h)
	return ok
}

// Remove detaches the component from the entity by swapping the last row
// into its slot. Removing an absent handle is a no-op.
func (s *Store[T]) Remove(h Handle) {
	row, ok := s.rows.Get(h)
	if !ok {
		return
	}

	last := int32(len(s.items) - 1)
	if row != last {
		s.items[row] = s.items[last]
		s.owners[row] = s.owners[last]
		s.rows.Put(s.owners[row], row)
	}

	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	s.owners = s.owners[:last]
	s.rows.Del(h)
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// All iterates every (handle, component) pair in buffer order. The store
// must not be structurally modified during iteration.
func (s *Store[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range s.items {
			if !yield(s.owners[i], &s.items[i]) {
				return
			}
		}
	}
}
