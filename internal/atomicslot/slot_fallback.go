//go:build atomicslot_fallback && !atomicslot_intrinsics

package atomicslot

import "sync/atomic"

// Name identifies the compiled implementation of Slot.
const Name = "fallback"

var _ Backend[int] = (*Slot[int])(nil)

// Slot is an atomic slot holding a *T. The zero value holds nil. A Slot must
// not be copied after first use.
//
// atomic.Value requires every stored value to have the same concrete type and
// rejects a nil interface, so the slot always stores a ref, even for a nil
// *T.
type Slot[T any] struct {
	v atomic.Value
}

type ref[T any] struct{ p *T }

func (s *Slot[T]) Init(v *T) { s.v.Store(ref[T]{v}) }

func (s *Slot[T]) Load() *T {
	r, _ := s.v.Load().(ref[T])
	return r.p
}

func (s *Slot[T]) Store(v *T) { s.v.Store(ref[T]{v}) }

func (s *Slot[T]) Swap(v *T) *T {
	r, _ := s.v.Swap(ref[T]{v}).(ref[T])
	return r.p
}

func (s *Slot[T]) CompareExchangeWeak(expected **T, desired *T) bool {
	// a never-stored atomic.Value only matches a nil old value, and it is
	// the zero slot holding nil.
	if *expected == nil && s.v.CompareAndSwap(nil, ref[T]{desired}) {
		return true
	}
	if s.v.CompareAndSwap(ref[T]{*expected}, ref[T]{desired}) {
		return true
	}
	*expected = s.Load()
	return false
}
