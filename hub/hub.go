package hub

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/loghive/loghub"
	huberr "github.com/loghive/loghub/errors"
	"github.com/loghive/loghub/sink"
)

// Hub owns the background worker and one façade per sink kind. At most one
// Hub is live per process; callers reach it through Acquire and the Refs and
// handles it hands out.
type Hub struct {
	worker *Worker
	store  *argStore

	// Per-kind sink façades. Syslog is a single-instance kind; the others
	// allow any number of concurrently live sinks.
	Syslog  *SyslogSinks
	Rotate  *RotateSinks
	Console *ConsoleSinks
}

// single is the process-wide singleton slot. The mutex serializes
// construction, so concurrent first callers block until one construction
// completes and then all observe the same instance; it also guards the
// reference count that drives teardown.
var single struct {
	mu        sync.Mutex
	cfg       Config
	hub       *Hub
	refs      int
	keepalive bool
	destroyed uint64
}

// construct is replaced in tests to exercise construction failure.
var construct = newHub

// Acquire returns a shared reference to the hub, constructing it if no live
// instance exists.
//
// scopeLifetime is honored only by the call that performs construction and
// ignored afterwards. With scopeLifetime=false the hub keeps an internal
// keep-alive reference and lives until process exit (or ReleaseKeepalive);
// with scopeLifetime=true it is torn down as soon as the last Ref or sink
// handle is closed.
//
// A failed construction is returned to this caller and is not cached: the
// next Acquire retries from scratch.
func Acquire(scopeLifetime bool) (*Ref, error) {
	single.mu.Lock()
	defer single.mu.Unlock()

	if single.hub == nil {
		h, err := construct(single.cfg.withDefaults())
		if err != nil {
			return nil, huberr.Construction("hub.acquire", err)
		}
		single.hub = h
		single.keepalive = !scopeLifetime
	}
	single.refs++
	return &Ref{hub: single.hub}, nil
}

// ReleaseKeepalive drops the internal keep-alive reference, if the first
// Acquire installed one, so the hub can be torn down once all external
// references are gone. Subsequent calls are no-ops.
func ReleaseKeepalive() {
	single.mu.Lock()
	single.keepalive = false
	h := maybeTeardownLocked()
	single.mu.Unlock()

	if h != nil {
		h.shutdown()
	}
}

// Configure sets the Config used by the next construction. It fails while a
// hub instance is live.
func Configure(cfg Config) error {
	single.mu.Lock()
	defer single.mu.Unlock()

	if single.hub != nil {
		return fmt.Errorf("hub: cannot configure while an instance is live")
	}
	single.cfg = cfg
	return nil
}

// addRef hands out an additional reference on a live hub; used by the façades
// when minting handles.
func addRef(h *Hub) (*Ref, error) {
	single.mu.Lock()
	defer single.mu.Unlock()

	if single.hub != h {
		return nil, huberr.Closed("hub.addref")
	}
	single.refs++
	return &Ref{hub: h}, nil
}

// releaseRef drops one reference and performs teardown when it was the last
// one and no keep-alive is held.
func releaseRef() {
	single.mu.Lock()
	single.refs--
	h := maybeTeardownLocked()
	single.mu.Unlock()

	if h != nil {
		h.shutdown()
	}
}

// maybeTeardownLocked vacates the singleton slot when nothing keeps the hub
// alive and returns the instance to shut down, which must happen after the
// lock is released (shutdown blocks on the worker goroutine).
func maybeTeardownLocked() *Hub {
	if single.hub == nil || single.refs > 0 || single.keepalive {
		return nil
	}
	h := single.hub
	single.hub = nil
	single.destroyed++
	return h
}

func newHub(cfg Config) (*Hub, error) {
	h := &Hub{
		worker: newWorker(cfg),
		store:  newArgStore(),
	}
	h.Syslog = &SyslogSinks{f: newFacade[*sink.Syslog](h, "syslog", false)}
	h.Rotate = &RotateSinks{f: newFacade[*sink.Rotate](h, "rotate", true)}
	h.Console = &ConsoleSinks{f: newFacade[*sink.Console](h, "console", true)}

	h.worker.start()
	return h, nil
}

// shutdown stops the worker, then closes every live sink. Ordering matters:
// no delivery or flush can be in flight once the worker goroutine has exited,
// so sinks are closed quiescent.
func (h *Hub) shutdown() {
	h.worker.Stop()

	err := multierr.Combine(
		h.Syslog.f.clear(),
		h.Rotate.f.clear(),
		h.Console.f.clear(),
	)
	if err != nil {
		Logger().Warn("sink teardown", zap.Error(err))
	}
}

// Post queues one entry for delivery to every live sink. It never blocks on
// sink I/O; the worker performs all writes.
func (h *Hub) Post(level loghub.Level, msg string) {
	h.worker.Post(loghub.Entry{Time: h.worker.now(), Level: level, Message: msg})
}

// Postf is Post with fmt.Sprintf formatting.
func (h *Hub) Postf(level loghub.Level, format string, args ...any) {
	h.Post(level, fmt.Sprintf(format, args...))
}
