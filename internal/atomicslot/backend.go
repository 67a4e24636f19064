// Package atomicslot implements a single word-sized slot holding a *T that
// is only ever accessed atomically. Exactly one implementation of Slot is
// compiled in, selected by build tags:
//
//   - default: language-level typed atomics (sync/atomic.Pointer).
//   - atomicslot_intrinsics: the pointer intrinsics of sync/atomic over an
//     unsafe.Pointer.
//   - atomicslot_fallback: the sync/atomic.Value container, for toolchains
//     or environments where neither of the above is available.
//
// All implementations are sequentially consistent: the Go memory model
// guarantees that every sync/atomic operation behaves as if executed in one
// global order, on every architecture (the runtime emits the required
// barriers on weak-memory hardware). No weaker ordering is exposed.
//
// Setting both tags is a build error.
package atomicslot

// Backend is the contract implemented by Slot, whichever implementation is
// compiled. It exists to document and statically check the contract; callers
// use *Slot directly.
type Backend[T any] interface {
	// Init writes the initial value without synchronization. It must only be
	// called before the slot is shared.
	Init(v *T)

	// Load returns the current value.
	Load() *T

	// Store replaces the current value with v.
	Store(v *T)

	// Swap replaces the current value with v and returns the value it
	// replaced.
	Swap(v *T) *T

	// CompareExchangeWeak installs desired if the slot currently holds
	// *expected (pointer identity) and returns true. Otherwise it sets
	// *expected to the value currently held and returns false. It may fail
	// spuriously, callers must loop.
	CompareExchangeWeak(expected **T, desired *T) bool
}
