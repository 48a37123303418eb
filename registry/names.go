package registry

import (
	"sync"

	huberr "github.com/loghive/loghub/errors"
)

// Names is the secondary index from caller-chosen sink names to keys. It has
// its own mutex, independent of any Table, so name lookups never contend with
// resource access.
//
// A name is claimed in two steps: Reserve inserts the name mapped to
// InvalidKey before the key exists, which stops two callers from both
// believing they are the sole creator; SetKey finalizes the reservation once
// the table insert has produced a key.
type Names struct {
	mu     sync.Mutex
	byName map[string]Key
}

// NewNames creates an empty name index.
func NewNames() *Names {
	return &Names{
		byName: make(map[string]Key),
	}
}

// Reserve claims name, mapping it to InvalidKey. Returns false without
// modification if the name is already present.
func (n *Names) Reserve(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.byName[name]; exists {
		return false
	}
	n.byName[name] = InvalidKey
	return true
}

// SetKey finalizes a reservation, overwriting whatever value name currently
// maps to. Returns an unknown-name error if name was never reserved; that is
// a programming error in the caller, not a runtime race.
func (n *Names) SetKey(name string, key Key) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.byName[name]; !exists {
		return huberr.UnknownName("names.setkey", name)
	}
	n.byName[name] = key
	return nil
}

// Key returns the key currently recorded for name. An unknown-name error is
// returned if the name is absent. A successful lookup may still return
// InvalidKey while a reservation is pending; callers must treat that as "not
// ready", not as a live key.
func (n *Names) Key(name string) (Key, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	key, exists := n.byName[name]
	if !exists {
		return InvalidKey, huberr.UnknownName("names.key", name)
	}
	return key, nil
}

// Remove deletes the entry for name. Removing an absent name is a no-op.
func (n *Names) Remove(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.byName, name)
}

// Len returns the number of names, including pending reservations.
func (n *Names) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.byName)
}
