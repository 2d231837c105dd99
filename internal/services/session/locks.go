package session

import (
	"sync"

	"github.com/dragonspire/sentinel/internal/model"
)

// playerLocks serializes operations per player while letting distinct
// players proceed in parallel. Entries are refcounted and removed once the
// last holder releases, so the table stays bounded by the number of
// in-flight requests rather than growing with the player population.
type playerLocks struct {
	mu      sync.Mutex
	entries map[model.PlayerID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{entries: make(map[model.PlayerID]*lockEntry)}
}

// lock acquires the mutex for a player and returns its release function
func (l *playerLocks) lock(id model.PlayerID) func() {
	l.mu.Lock()
	e, ok := l.entries[id]
	if !ok {
		e = &lockEntry{}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries. Test helper.
func (l *playerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
