// Package hub provides the process-wide singleton that owns the log worker
// and the per-kind sink façades.
//
// # Singleton Lifecycle
//
// The hub moves through Uninitialized → Initializing → Live → Destroyed.
// Acquire constructs at most one live instance; concurrent first callers are
// serialized and all receive references to the same hub. The scopeLifetime
// flag passed to the constructing call fixes the lifetime policy:
//
//	ref, _ := hub.Acquire(false) // default: lives until process exit
//	ref, _ := hub.Acquire(true)  // scope-bound: dies with its last reference
//
// Under the default policy an internal keep-alive reference pins the hub;
// ReleaseKeepalive drops it for embedders that need deterministic teardown
// after the fact. Under the scope-bound policy the hub is destroyed as soon
// as the last Ref or sink handle closes, and a later Acquire constructs a
// fresh instance (re-deciding the policy).
//
// A failed construction is surfaced to its caller and never cached; the next
// Acquire retries.
//
// # Sinks, Names, Handles
//
// Each sink kind has a façade on the hub:
//
//	h := ref.Hub()
//	rot, err := h.Rotate.New("audit", sink.RotateConfig{Directory: "/var/log/app"})
//	...
//	other, err := h.Rotate.Open("audit") // second handle, same sink
//
// Creation under a name is race-free (the name is reserved before the sink is
// built), names are unique per kind, and single-instance kinds (syslog)
// reject a second creation regardless of name. Handles route every operation
// through the registry's scoped guard, so sink methods never race with
// delivery.
//
// # Worker
//
// One background goroutine owns all sink I/O. Post enqueues entries; the
// worker fans them out to every installed route and flushes buffering sinks
// on a periodic tick. Routes are append-only: retiring a sink only removes
// registry bookkeeping, after which the route delivers nowhere.
package hub
