package hub

import (
	"bytes"
	stderrors "errors"
	"log/syslog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/loghive/loghub"
	huberr "github.com/loghive/loghub/errors"
	"github.com/loghive/loghub/sink"
)

// resetForTest forcibly vacates the singleton slot between tests. Not safe
// while references are still in use.
func resetForTest() {
	single.mu.Lock()
	h := single.hub
	single.hub = nil
	single.refs = 0
	single.keepalive = false
	single.cfg = Config{}
	single.mu.Unlock()

	if h != nil {
		h.shutdown()
	}
	construct = newHub
}

func destroyCount() uint64 {
	single.mu.Lock()
	defer single.mu.Unlock()
	return single.destroyed
}

func TestAcquire_SharedInstance(t *testing.T) {
	defer resetForTest()

	a, err := Acquire(false)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	b, err := Acquire(false)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if a.Hub() != b.Hub() {
		t.Fatal("expected both refs to share one hub instance")
	}

	a.Close()
	b.Close()
}

func TestAcquire_ConcurrentSingleConstruction(t *testing.T) {
	defer resetForTest()

	var constructions int32
	construct = func(cfg Config) (*Hub, error) {
		atomic.AddInt32(&constructions, 1)
		return newHub(cfg)
	}

	const n = 32
	refs := make([]*Ref, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			r, err := Acquire(false)
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			refs[i] = r
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&constructions); got != 1 {
		t.Fatalf("expected exactly 1 construction, got %d", got)
	}
	for _, r := range refs[1:] {
		if r.Hub() != refs[0].Hub() {
			t.Fatal("refs disagree on the hub instance")
		}
	}
	for _, r := range refs {
		r.Close()
	}
}

func TestAcquire_RetriesAfterFailedConstruction(t *testing.T) {
	defer resetForTest()

	boom := stderrors.New("boom")
	failures := 1
	construct = func(cfg Config) (*Hub, error) {
		if failures > 0 {
			failures--
			return nil, boom
		}
		return newHub(cfg)
	}

	_, err := Acquire(false)
	if !stderrors.Is(err, huberr.ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}

	// The failure must not be cached: the next call retries.
	ref, err := Acquire(false)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	ref.Close()
}

func TestScopedLifetime_TeardownOnLastReference(t *testing.T) {
	defer resetForTest()

	before := destroyCount()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	h := ref.Hub()

	var buf bytes.Buffer
	console, err := h.Console.New("main", sink.ConsoleConfig{Writer: &buf})
	if err != nil {
		t.Fatalf("Console.New failed: %v", err)
	}

	ref.Close()
	if destroyCount() != before {
		t.Fatal("hub destroyed while a handle was still open")
	}

	console.Close()
	if destroyCount() != before+1 {
		t.Fatal("hub not destroyed after last handle closed")
	}

	// A later Acquire constructs a fresh instance.
	ref2, err := Acquire(true)
	if err != nil {
		t.Fatalf("re-Acquire failed: %v", err)
	}
	if ref2.Hub() == h {
		t.Fatal("expected a fresh hub instance after teardown")
	}
	ref2.Close()
}

func TestDefaultPolicy_SurvivesReferenceDrop(t *testing.T) {
	defer resetForTest()

	before := destroyCount()

	ref, err := Acquire(false)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	h := ref.Hub()
	ref.Close()

	if destroyCount() != before {
		t.Fatal("default-policy hub destroyed after external refs dropped")
	}

	// Still the same live instance.
	ref2, err := Acquire(true) // flag ignored: instance already live
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if ref2.Hub() != h {
		t.Fatal("expected the surviving instance")
	}
	ref2.Close()

	ReleaseKeepalive()
	if destroyCount() != before+1 {
		t.Fatal("hub not destroyed after keep-alive release")
	}
	ReleaseKeepalive() // idempotent
	if destroyCount() != before+1 {
		t.Fatal("second ReleaseKeepalive must be a no-op")
	}
}

func TestConfigure_RejectedWhileLive(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(false)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer func() {
		ref.Close()
		ReleaseKeepalive()
	}()

	if err := Configure(Config{QueueSize: 1}); err == nil {
		t.Fatal("expected Configure to fail while an instance is live")
	}
}

func TestRef_CloseIdempotent(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	ref2, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	before := destroyCount()
	ref.Close()
	ref.Close() // must not double-release
	if destroyCount() != before {
		t.Fatal("double Close released more than one reference")
	}
	if ref.Hub() != nil {
		t.Fatal("Hub() should be nil after Close")
	}
	ref2.Close()
}

func TestEndToEnd_ConsoleDelivery(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	h := ref.Hub()

	var buf bytes.Buffer
	console, err := h.Console.New("main", sink.ConsoleConfig{Writer: &buf})
	if err != nil {
		t.Fatalf("Console.New failed: %v", err)
	}

	h.Post(loghub.LevelInfo, "hello end to end")
	h.Postf(loghub.LevelWarning, "count=%d", 7)

	// Teardown drains the queue, so output is complete afterwards.
	console.Close()
	ref.Close()

	out := buf.String()
	if !strings.Contains(out, "INFO hello end to end") {
		t.Fatalf("missing INFO entry in %q", out)
	}
	if !strings.Contains(out, "WARNING count=7") {
		t.Fatalf("missing WARNING entry in %q", out)
	}
}

func TestEndToEnd_RecreateAfterRetireDeliversOnce(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	h := ref.Hub()

	// Create, retire, create again: the second sink reuses the first's key,
	// and the first sink's worker route is still installed.
	var bufA, bufB bytes.Buffer
	a, err := h.Console.New("a", sink.ConsoleConfig{Writer: &bufA})
	if err != nil {
		t.Fatalf("Console.New failed: %v", err)
	}
	a.Close()
	if err := h.Console.Retire("a"); err != nil {
		t.Fatalf("Retire failed: %v", err)
	}

	b, err := h.Console.New("b", sink.ConsoleConfig{Writer: &bufB})
	if err != nil {
		t.Fatalf("Console.New failed: %v", err)
	}

	h.Post(loghub.LevelInfo, "once")

	b.Close()
	ref.Close() // drains the queue

	if got := strings.Count(bufB.String(), "once"); got != 1 {
		t.Fatalf("entry delivered %d times to the new sink, want 1; output %q", got, bufB.String())
	}
	if bufA.Len() != 0 {
		t.Fatalf("retired sink received output %q", bufA.String())
	}
}

func TestEndToEnd_DuplicateNameAndOpen(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer ref.Close()
	h := ref.Hub()

	var buf bytes.Buffer
	first, err := h.Console.New("a", sink.ConsoleConfig{Writer: &buf})
	if err != nil {
		t.Fatalf("Console.New failed: %v", err)
	}
	defer first.Close()

	_, err = h.Console.New("a", sink.ConsoleConfig{Writer: &buf})
	if !stderrors.Is(err, huberr.ErrNameExists) {
		t.Fatalf("expected name-exists error, got %v", err)
	}

	second, err := h.Console.Open("a")
	if err != nil {
		t.Fatalf("Console.Open failed: %v", err)
	}
	defer second.Close()

	if second.Key() != first.Key() {
		t.Fatalf("aliased handle key %d != original %d", second.Key(), first.Key())
	}
}

func TestEndToEnd_SyslogSingleInstance(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer ref.Close()
	h := ref.Hub()

	dial := func(facility syslog.Priority, identity string) (sink.SyslogConn, error) {
		return nopSyslogConn{}, nil
	}

	sl, err := h.Syslog.New("sys", sink.SyslogConfig{Identity: "app", Dial: dial})
	if err != nil {
		t.Fatalf("Syslog.New failed: %v", err)
	}
	defer sl.Close()

	_, err = h.Syslog.New("other-name", sink.SyslogConfig{Identity: "app2", Dial: dial})
	if !stderrors.Is(err, huberr.ErrInstanceLimit) {
		t.Fatalf("expected instance-limit error, got %v", err)
	}
}

func TestSyslog_IdentityPersisted(t *testing.T) {
	defer resetForTest()

	ref, err := Acquire(true)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer ref.Close()
	h := ref.Hub()

	dial := func(facility syslog.Priority, identity string) (sink.SyslogConn, error) {
		return nopSyslogConn{}, nil
	}

	sl, err := h.Syslog.New("sys", sink.SyslogConfig{Identity: "app", Dial: dial})
	if err != nil {
		t.Fatalf("Syslog.New failed: %v", err)
	}
	defer sl.Close()

	if h.store.size() != 1 {
		t.Fatalf("expected 1 pinned argument, got %d", h.store.size())
	}
	if err := sl.SetIdentity("renamed"); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}
	if h.store.size() != 2 {
		t.Fatalf("expected 2 pinned arguments, got %d", h.store.size())
	}
}

type nopSyslogConn struct{}

func (nopSyslogConn) Debug(string) error   { return nil }
func (nopSyslogConn) Info(string) error    { return nil }
func (nopSyslogConn) Warning(string) error { return nil }
func (nopSyslogConn) Err(string) error     { return nil }
func (nopSyslogConn) Close() error         { return nil }
