package registry

import "sync"

// Guard is a scoped lock accessor: it holds the owning Table's mutex from the
// moment Access returns it until Release is called, and exposes the protected
// resource for exactly that window. Guards are handed out by pointer and must
// not be copied; after Release the guard is inert.
//
// The lock is table-wide, not per-key, so the caller must keep the critical
// section short and must not block on I/O unrelated to the resource while
// holding the guard.
type Guard[T any] struct {
	mu       *sync.Mutex
	value    T
	released bool
}

// Value returns the protected resource. After Release it returns the zero
// value.
func (g *Guard[T]) Value() T {
	return g.value
}

// Release unlocks the table. It is idempotent; only the first call unlocks.
func (g *Guard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	var zero T
	g.value = zero
	g.mu.Unlock()
}
