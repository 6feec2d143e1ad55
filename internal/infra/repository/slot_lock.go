package repository

import "sync"

// slotLocks serializes booking creation per slot key inside this process.
// Postgres additionally takes an advisory transaction lock on the same key,
// which covers multiple API instances; the sqlite driver used in tests has
// no advisory locks, so this map is what serializes them there.
type slotLocks struct {
	mu sync.Mutex
	m  map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{m: make(map[string]*slotLock)}
}

func (l *slotLocks) Acquire(key string) func() {
	l.mu.Lock()
	entry, ok := l.m[key]
	if !ok {
		entry = &slotLock{}
		l.m[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
