package hub

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/loghive/loghub"
)

func newTestWorker(clk clock.Clock) *Worker {
	w := newWorker(Config{QueueSize: 16, FlushInterval: time.Second, Clock: clk}.withDefaults())
	w.start()
	return w
}

func TestWorker_DeliversPostedEntries(t *testing.T) {
	w := newTestWorker(clock.New())
	defer w.Stop()

	delivered := make(chan loghub.Entry, 1)
	w.Install(func(e loghub.Entry) error {
		delivered <- e
		return nil
	}, nil)

	w.Post(loghub.Entry{Level: loghub.LevelInfo, Message: "one"})

	select {
	case e := <-delivered:
		if e.Message != "one" {
			t.Fatalf("delivered %q, want %q", e.Message, "one")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("entry never delivered")
	}
}

func TestWorker_PeriodicFlush(t *testing.T) {
	mock := clock.NewMock()
	w := newTestWorker(mock)
	defer w.Stop()

	delivered := make(chan struct{}, 1)
	flushed := make(chan struct{}, 4)
	w.Install(
		func(loghub.Entry) error {
			delivered <- struct{}{}
			return nil
		},
		func() error {
			flushed <- struct{}{}
			return nil
		},
	)

	// A round trip through the queue guarantees the goroutine has reached
	// its select loop and the mock ticker is armed.
	w.Post(loghub.Entry{Message: "sync"})
	<-delivered

	mock.Add(time.Second)
	select {
	case <-flushed:
	case <-time.After(5 * time.Second):
		t.Fatal("flush never ran after the interval elapsed")
	}
}

func TestWorker_StopDrainsQueue(t *testing.T) {
	w := newTestWorker(clock.New())

	var count int32
	release := make(chan struct{})
	w.Install(func(loghub.Entry) error {
		<-release
		atomic.AddInt32(&count, 1)
		return nil
	}, nil)

	const n = 8
	for i := 0; i < n; i++ {
		w.Post(loghub.Entry{Message: "queued"})
	}
	close(release)
	w.Stop()

	if got := atomic.LoadInt32(&count); got != n {
		t.Fatalf("delivered %d entries before exit, want %d", got, n)
	}
}

func TestWorker_PostAfterStopIsDropped(t *testing.T) {
	w := newTestWorker(clock.New())

	var count int32
	w.Install(func(loghub.Entry) error {
		atomic.AddInt32(&count, 1)
		return nil
	}, nil)

	w.Stop()
	w.Post(loghub.Entry{Message: "late"}) // must not block or panic
	w.Stop()                              // idempotent

	if got := atomic.LoadInt32(&count); got != 0 {
		t.Fatalf("late entry was delivered (%d)", got)
	}
}

func TestWorker_FanOutReachesAllRoutes(t *testing.T) {
	w := newTestWorker(clock.New())

	var a, b int32
	w.Install(func(loghub.Entry) error { atomic.AddInt32(&a, 1); return nil }, nil)
	w.Install(func(loghub.Entry) error { atomic.AddInt32(&b, 1); return nil }, nil)

	w.Post(loghub.Entry{Message: "broadcast"})
	w.Stop()

	if atomic.LoadInt32(&a) != 1 || atomic.LoadInt32(&b) != 1 {
		t.Fatalf("fan-out missed a route: a=%d b=%d", a, b)
	}
}
