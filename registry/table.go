package registry

import (
	"sort"
	"sync"

	huberr "github.com/loghive/loghub/errors"
)

// Closer is optionally implemented by resources that need cleanup when their
// table entry is removed.
type Closer interface {
	Close() error
}

// Table owns the mapping from Key to an exclusively-owned resource. Keys are
// allocated on Insert, retired on Remove, and reused smallest-first so the
// key space stays compact and key values are deterministic.
//
// One mutex protects the whole table. Insert and Remove hold it for their
// full duration; Access returns a Guard that keeps it held until the caller
// releases it. Resources never escape the table except through a Guard.
type Table[T any] struct {
	mu    sync.Mutex
	inUse map[Key]T
	free  []Key // retired keys, sorted ascending
	next  Key   // highest key ever minted
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		inUse: make(map[Key]T),
	}
}

// Insert takes ownership of res and returns its key. The smallest retired key
// is reused when one is available; otherwise the next unused integer is
// minted. The returned key is never InvalidKey.
func (t *Table[T]) Insert(res T) Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	var key Key
	if len(t.free) > 0 {
		key = t.free[0]
		t.free = t.free[1:]
	} else {
		t.next++
		key = t.next
	}
	t.inUse[key] = res
	return key
}

// Access returns a Guard exposing the resource for key. The table mutex is
// held from the moment Access returns until the caller releases the guard.
// Returns an invalid-key error if the key is not in use.
func (t *Table[T]) Access(key Key) (*Guard[T], error) {
	t.mu.Lock()
	res, ok := t.inUse[key]
	if !ok {
		t.mu.Unlock()
		return nil, huberr.InvalidKey("table.access", uint32(key))
	}
	return &Guard[T]{mu: &t.mu, value: res}, nil
}

// With runs fn on the resource for key while holding the table mutex. It is
// the bounded-critical-section form of Access and should be preferred
// whenever the guard does not need to cross a function boundary.
func (t *Table[T]) With(key Key, fn func(T) error) error {
	g, err := t.Access(key)
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(g.Value())
}

// Remove destroys the resource for key and retires the key for reuse.
// Returns an invalid-key error if the key is not in use. When the resource
// implements Closer, its Close error is returned after the bookkeeping has
// already been retired.
func (t *Table[T]) Remove(key Key) error {
	t.mu.Lock()
	res, ok := t.inUse[key]
	if !ok {
		t.mu.Unlock()
		return huberr.InvalidKey("table.remove", uint32(key))
	}
	delete(t.inUse, key)
	i := sort.Search(len(t.free), func(i int) bool { return t.free[i] >= key })
	t.free = append(t.free, 0)
	copy(t.free[i+1:], t.free[i:])
	t.free[i] = key
	t.mu.Unlock()

	if c, ok := any(res).(Closer); ok {
		return c.Close()
	}
	return nil
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inUse)
}

// Keys returns the live keys in ascending order.
func (t *Table[T]) Keys() []Key {
	t.mu.Lock()
	keys := make([]Key, 0, len(t.inUse))
	for k := range t.inUse {
		keys = append(keys, k)
	}
	t.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
