package sink

import "github.com/loghive/loghub"

// Sink consumes log entries delivered by the hub worker. Implementations do
// not need internal locking: the registry guard serializes all access,
// including delivery, configuration calls through handles, and teardown.
type Sink interface {
	Deliver(e loghub.Entry) error
}

// Flusher is optionally implemented by sinks that buffer output. The worker
// calls Flush on its periodic tick and during shutdown.
type Flusher interface {
	Flush() error
}

// Closer is optionally implemented by sinks holding OS resources. Close runs
// when the sink's registry entry is retired.
type Closer interface {
	Close() error
}
