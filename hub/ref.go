package hub

import "sync/atomic"

// Ref is a shared reference on the live hub. The hub cannot be torn down
// while any Ref (or sink handle, which holds one internally) remains open.
// Close is idempotent; a Ref is not reopened.
type Ref struct {
	hub    *Hub
	closed atomic.Bool
}

// Hub returns the referenced hub, or nil after Close.
func (r *Ref) Hub() *Hub {
	if r.closed.Load() {
		return nil
	}
	return r.hub
}

// Close drops the reference. Closing the last reference tears the hub down
// when the scope-bound lifetime policy is in effect (or after
// ReleaseKeepalive under the default policy).
func (r *Ref) Close() {
	if r.closed.Swap(true) {
		return
	}
	releaseRef()
}
