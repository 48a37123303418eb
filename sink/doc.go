// Package sink contains the concrete sink backends managed by the hub:
// syslog forwarding, size-rotated log files, and colored terminal output.
//
// Sinks are opaque payloads to the registry core. They are exclusively owned
// by their table entry and only ever touched under the registry guard, so
// none of them carries internal locking. Optional capabilities are expressed
// through the Flusher and Closer interfaces, which the worker and the
// registry discover by type assertion.
package sink
