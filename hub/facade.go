package hub

import (
	stderrors "errors"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/loghive/loghub"
	huberr "github.com/loghive/loghub/errors"
	"github.com/loghive/loghub/registry"
	"github.com/loghive/loghub/sink"
)

// Facade is the per-kind access point composing one key table and one name
// index. All creation, lookup, and retirement of sinks of a given kind flows
// through its façade; the typed wrappers (SyslogSinks, RotateSinks,
// ConsoleSinks) add kind-specific construction and handle methods on top.
type Facade[T sink.Sink] struct {
	hub   *Hub
	kind  string
	multi bool // whether several live instances of this kind are allowed

	// mu serializes the creation and retirement paths so the instance-limit
	// check, the table insert, and the name finalization form one atomic
	// step. Lookup and delivery never take it.
	mu sync.Mutex

	keys  *registry.Table[T]
	names *registry.Names
}

func newFacade[T sink.Sink](h *Hub, kind string, multi bool) *Facade[T] {
	return &Facade[T]{
		hub:   h,
		kind:  kind,
		multi: multi,
		keys:  registry.NewTable[T](),
		names: registry.NewNames(),
	}
}

// New creates a sink under name and returns its handle. An empty name creates
// an anonymous sink reachable only through the returned handle.
//
// The name is reserved before the sink is built, so two concurrent creators
// of the same name cannot both succeed; on any later failure the reservation
// is rolled back and the registries are left exactly as they were.
func (f *Facade[T]) New(name string, build func() (T, error)) (*Handle[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.multi && f.keys.Len() > 0 {
		return nil, huberr.InstanceLimit("facade.new", f.kind)
	}

	reserved := false
	if name != "" {
		if !f.names.Reserve(name) {
			return nil, huberr.NameExists("facade.new", name)
		}
		reserved = true
	}

	res, err := build()
	if err != nil {
		if reserved {
			f.names.Remove(name)
		}
		return nil, huberr.Construction("facade.new", err)
	}

	key := f.keys.Insert(res)
	if reserved {
		if err := f.names.SetKey(name, key); err != nil {
			// Unreachable while we hold the creation lock; keep the
			// registries consistent anyway.
			_ = f.keys.Remove(key)
			f.names.Remove(name)
			return nil, err
		}
	}

	ref, err := addRef(f.hub)
	if err != nil {
		_ = f.keys.Remove(key)
		if reserved {
			f.names.Remove(name)
		}
		return nil, err
	}

	f.hub.worker.Install(f.deliverRoute(key, res), f.flushRoute(key, res))

	return &Handle[T]{ref: ref, facade: f, key: key}, nil
}

// Open returns a fresh handle aliasing the sink previously created under
// name. A name whose reservation was never finalized is reported as unknown.
func (f *Facade[T]) Open(name string) (*Handle[T], error) {
	key, err := f.names.Key(name)
	if err != nil {
		return nil, err
	}
	if key == registry.InvalidKey {
		return nil, huberr.UnknownName("facade.open", name)
	}

	ref, err := addRef(f.hub)
	if err != nil {
		return nil, err
	}
	return &Handle[T]{ref: ref, facade: f, key: key}, nil
}

// Retire removes the registry bookkeeping for name: the name becomes free for
// reuse, the key is retired, and the sink is closed. The worker's route for
// the key stays installed but delivers nowhere. Existing handles on the key
// fail with an invalid-key error from then on.
func (f *Facade[T]) Retire(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, err := f.names.Key(name)
	if err != nil {
		return err
	}
	if key == registry.InvalidKey {
		return huberr.UnknownName("facade.retire", name)
	}
	f.names.Remove(name)
	return f.keys.Remove(key)
}

// Len returns the number of live sinks of this kind.
func (f *Facade[T]) Len() int {
	return f.keys.Len()
}

// deliverRoute binds a worker route to the sink instance behind key, through
// the registry guard. Routes are never uninstalled and retired keys are
// reused, so resolving the key alone is not enough: the route also checks
// under the guard that the key still maps to the sink it was installed for.
// A route whose key is retired, or reused by a later sink, is a silent no-op.
func (f *Facade[T]) deliverRoute(key registry.Key, want T) func(loghub.Entry) error {
	return func(e loghub.Entry) error {
		err := f.keys.With(key, func(s T) error {
			if any(s) != any(want) {
				return nil
			}
			return s.Deliver(e)
		})
		if stderrors.Is(err, huberr.ErrInvalidKey) {
			return nil
		}
		return err
	}
}

func (f *Facade[T]) flushRoute(key registry.Key, want T) func() error {
	return func() error {
		err := f.keys.With(key, func(s T) error {
			if any(s) != any(want) {
				return nil
			}
			if fl, ok := any(s).(sink.Flusher); ok {
				return fl.Flush()
			}
			return nil
		})
		if stderrors.Is(err, huberr.ErrInvalidKey) {
			return nil
		}
		return err
	}
}

// clear retires every live key, closing the sinks. Used by hub teardown once
// the worker has stopped.
func (f *Facade[T]) clear() error {
	var errs error
	for _, key := range f.keys.Keys() {
		errs = multierr.Append(errs, f.keys.Remove(key))
	}
	return errs
}

// Handle is a caller-visible token for one sink: a key plus a shared
// reference that keeps the owning hub alive. Multiple handles may alias one
// sink. Closing a handle releases its hub reference only; the sink itself
// stays installed.
type Handle[T sink.Sink] struct {
	ref    *Ref
	facade *Facade[T]
	key    registry.Key
	closed atomic.Bool
}

// Key returns the registry key this handle references.
func (h *Handle[T]) Key() registry.Key {
	return h.key
}

// With runs fn on the sink under the registry guard. The critical section
// must stay short; every other sink of this kind is blocked meanwhile.
func (h *Handle[T]) With(fn func(T) error) error {
	if h.closed.Load() {
		return huberr.Closed("handle.with")
	}
	return h.facade.keys.With(h.key, fn)
}

// Close releases the handle's hub reference. Idempotent.
func (h *Handle[T]) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.ref.Close()
}
