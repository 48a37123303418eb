package hub

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/loghive/loghub"
)

// route is one installed delivery path. Routes go through the registry guard
// of the owning façade, so a route whose key has been retired simply becomes
// a no-op; the worker itself never uninstalls anything.
type route struct {
	deliver func(loghub.Entry) error
	flush   func() error
}

// Worker is the single background goroutine owning all sink I/O. Producers
// enqueue entries with Post; the worker drains the queue, fans each entry out
// to every installed route, and flushes buffering sinks on a periodic tick.
type Worker struct {
	queue chan loghub.Entry
	clk   clock.Clock
	tick  time.Duration

	mu     sync.Mutex
	routes []route

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newWorker(cfg Config) *Worker {
	return &Worker{
		queue: make(chan loghub.Entry, cfg.QueueSize),
		clk:   cfg.Clock,
		tick:  cfg.FlushInterval,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (w *Worker) start() {
	go w.run()
}

func (w *Worker) run() {
	defer close(w.done)

	ticker := w.clk.Ticker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case e := <-w.queue:
			w.fanOut(e)
		case <-ticker.C:
			w.flushAll()
		case <-w.stop:
			w.drain()
			w.flushAll()
			return
		}
	}
}

// Post enqueues an entry, blocking while the queue is full. Entries posted
// after Stop has begun are dropped.
func (w *Worker) Post(e loghub.Entry) {
	select {
	case <-w.stop:
	case w.queue <- e:
	}
}

// Install registers a delivery route and an optional flush hook.
// Installation is append-only: the worker has no way to remove a route once
// installed, matching the backing model where a sink cannot be detached.
func (w *Worker) Install(deliver func(loghub.Entry) error, flush func() error) {
	w.mu.Lock()
	w.routes = append(w.routes, route{deliver: deliver, flush: flush})
	w.mu.Unlock()
}

// Stop drains the queue, runs a final flush, and waits for the goroutine to
// exit. It is idempotent and safe to call concurrently.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *Worker) now() time.Time {
	return w.clk.Now()
}

func (w *Worker) snapshot() []route {
	w.mu.Lock()
	routes := make([]route, len(w.routes))
	copy(routes, w.routes)
	w.mu.Unlock()
	return routes
}

func (w *Worker) fanOut(e loghub.Entry) {
	for _, r := range w.snapshot() {
		if err := r.deliver(e); err != nil {
			Logger().Warn("sink delivery failed", zap.Error(err))
		}
	}
}

func (w *Worker) flushAll() {
	for _, r := range w.snapshot() {
		if r.flush == nil {
			continue
		}
		if err := r.flush(); err != nil {
			Logger().Warn("sink flush failed", zap.Error(err))
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case e := <-w.queue:
			w.fanOut(e)
		default:
			return
		}
	}
}
