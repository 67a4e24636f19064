//go:build atomicslot_intrinsics && !atomicslot_fallback

package atomicslot

import (
	"sync/atomic"
	"unsafe"
)

// Name identifies the compiled implementation of Slot.
const Name = "intrinsics"

var _ Backend[int] = (*Slot[int])(nil)

// Slot is an atomic slot holding a *T. The zero value holds nil. A Slot must
// not be copied after first use.
type Slot[T any] struct {
	// Mention T in a field to disallow conversion between Slot types.
	_ [0]*T

	p unsafe.Pointer
}

// Init sets the initial value with a plain write, there can be no concurrent
// observer yet.
func (s *Slot[T]) Init(v *T) { s.p = unsafe.Pointer(v) }

//go:nosplit
func (s *Slot[T]) Load() *T { return (*T)(atomic.LoadPointer(&s.p)) }

//go:nosplit
func (s *Slot[T]) Store(v *T) { atomic.StorePointer(&s.p, unsafe.Pointer(v)) }

//go:nosplit
func (s *Slot[T]) Swap(v *T) *T { return (*T)(atomic.SwapPointer(&s.p, unsafe.Pointer(v))) }

func (s *Slot[T]) CompareExchangeWeak(expected **T, desired *T) bool {
	if atomic.CompareAndSwapPointer(&s.p, unsafe.Pointer(*expected), unsafe.Pointer(desired)) {
		return true
	}
	*expected = (*T)(atomic.LoadPointer(&s.p))
	return false
}
