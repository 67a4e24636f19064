//go:build !atomicslot_intrinsics && !atomicslot_fallback

package atomicslot

import "sync/atomic"

// Name identifies the compiled implementation of Slot.
const Name = "typed"

var _ Backend[int] = (*Slot[int])(nil)

// Slot is an atomic slot holding a *T. The zero value holds nil. A Slot must
// not be copied after first use.
type Slot[T any] struct {
	p atomic.Pointer[T]
}

// Init sets the initial value. atomic.Pointer has no unsynchronized store, so
// this is a regular atomic store.
//
//go:nosplit
func (s *Slot[T]) Init(v *T) { s.p.Store(v) }

//go:nosplit
func (s *Slot[T]) Load() *T { return s.p.Load() }

//go:nosplit
func (s *Slot[T]) Store(v *T) { s.p.Store(v) }

//go:nosplit
func (s *Slot[T]) Swap(v *T) *T { return s.p.Swap(v) }

func (s *Slot[T]) CompareExchangeWeak(expected **T, desired *T) bool {
	if s.p.CompareAndSwap(*expected, desired) {
		return true
	}
	*expected = s.p.Load()
	return false
}
