// Package loghub provides a concurrency-safe, named-handle registry for log
// sinks owned by a single shared background worker.
//
// Many independent callers can create, name, look up, and release sink
// resources without ever taking raw ownership of the worker: all sink access
// goes through key-addressed, lock-held accessors, and the worker's lifetime
// is controlled by a process-wide singleton with a configurable keep-alive
// policy.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	loghub/          Root package with the Entry/Level data model
//	├── registry/    Integer-key resource table, name index, scoped lock guard
//	├── hub/         Singleton lifecycle manager, background worker, per-kind
//	│                sink façades and handles
//	├── sink/        Concrete sink backends: syslog, rotating file, console
//	├── errors/      Structured error types shared by all packages
//	└── cmd/logtool/ Demo binary with an interactive TUI mode
//
// # Quick Start
//
// Acquire the hub, create a console sink, and post entries:
//
//	ref, err := hub.Acquire(false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h := ref.Hub()
//
//	console, err := h.Console.New("main", sink.ConsoleConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer console.Close()
//
//	h.Post(loghub.LevelInfo, "hello")
//
// # Lifetime Policies
//
// The first Acquire call fixes the singleton's lifetime policy. With
// scopeLifetime=false (the default choice) the hub holds an internal
// keep-alive reference and survives until process exit or an explicit
// hub.ReleaseKeepalive. With scopeLifetime=true the hub is torn down as soon
// as the last outstanding Ref or sink handle is closed, which gives tests and
// embedders deterministic shutdown.
//
// # Concurrency Model
//
// Every registry owns its own mutex, and no lock is ever held across sink
// I/O except inside the scoped guard returned by registry.Table.Access, whose
// critical section the caller is expected to keep short. Sink delivery is
// performed by the single worker goroutine through the same guard, so sink
// implementations need no internal locking.
package loghub
