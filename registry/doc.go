// Package registry implements the key-addressed resource table and the name
// index underneath the loghub sink façades.
//
// # Key Table
//
// Table maps integer keys to exclusively-owned resources:
//
//	table := registry.NewTable[*mySink]()
//
//	// Insert a resource, get a key
//	key := table.Insert(s)
//
//	// Exclusive, lock-held access for a bounded critical section
//	err := table.With(key, func(s *mySink) error {
//	    return s.Deliver(entry)
//	})
//
//	// Retire the key; it becomes available for reuse
//	err = table.Remove(key)
//
// Key 0 is reserved and always invalid. Retired keys are reused
// smallest-first, so on an otherwise-empty table an insert/remove/insert
// sequence yields the same key twice.
//
// # Scoped Guard
//
// Access returns a Guard that keeps the table mutex held until released. The
// guard form exists for callers that need the locked resource to cross a
// function boundary; every exit path must release it:
//
//	g, err := table.Access(key)
//	if err != nil {
//	    return err
//	}
//	defer g.Release()
//	use(g.Value())
//
// The lock is table-wide: only one resource of a given kind is accessible at
// a time, and blocking while holding a guard stalls every caller of that
// kind. This is a documented caller obligation, not an enforced one.
//
// # Name Index
//
// Names maps caller-chosen names to keys under its own mutex. Creation under
// a name is race-free via two-step reservation:
//
//	if !names.Reserve("audit") {
//	    return huberr.NameExists("new", "audit")
//	}
//	key := table.Insert(s)
//	names.SetKey("audit", key)
//
// A reserved-but-unfinalized name maps to InvalidKey; lookups must treat that
// value as "not ready".
package registry
