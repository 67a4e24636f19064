package atomicslot

// A Step computes the value to install in a slot from the value it currently
// holds. It returns swap == false to stop without writing anything. A Step
// may be called any number of times by a single Retry, each time with the
// most recently observed value.
type Step[T any] func(cur *T) (next *T, swap bool, err error)

// Retry runs the lock-free read-modify-write loop on s: it loads the current
// value, asks step for the value to install and attempts a weak
// compare-and-swap against the value it observed, refreshing and asking step
// again on failure. It returns the value held immediately before the
// successful swap and true, or the last observed value and false if step
// declined to swap or failed.
//
// There is no backoff and no bound on the number of attempts: the loop ends
// only when a swap succeeds or step stops it.
func Retry[T any](s *Slot[T], step Step[T]) (prev *T, swapped bool, err error) {
	cur := s.Load()
	for {
		next, swap, err := step(cur)
		if err != nil || !swap {
			return cur, false, err
		}
		if s.CompareExchangeWeak(&cur, next) {
			return cur, true, nil
		}
	}
}
