package hub

import (
	"strings"
	"sync"
)

// argStore pins construction arguments that a sink retains by reference for
// its whole lifetime, such as the syslog identity string that syslog(3) keeps
// using after openlog returns. Each value is cloned off whatever backing
// array the caller handed in and stays reachable until process exit.
//
// This storage is never reclaimed. Its growth is bounded by the number of
// sinks (and identity changes) ever created, not by steady-state logging, so
// the leak is accepted and documented rather than managed.
type argStore struct {
	mu   sync.Mutex
	held []string
}

func newArgStore() *argStore {
	return &argStore{}
}

// persist copies v into the store and returns the pinned copy.
func (s *argStore) persist(v string) string {
	c := strings.Clone(v)
	s.mu.Lock()
	s.held = append(s.held, c)
	s.mu.Unlock()
	return c
}

// size reports how many arguments are pinned.
func (s *argStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}
