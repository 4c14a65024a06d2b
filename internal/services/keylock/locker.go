// Package keylock provides per-key mutual exclusion for read-modify-write
// sequences against a storage backend.
package keylock

import (
	"slices"
	"sync"
)

// Locker hands out one mutex per key. Entries are dropped once no caller holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock acquires the locks for keys and returns a function releasing all of them.
// Keys are locked in sorted order so overlapping callers cannot deadlock.
// A nil Locker performs no locking.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	if l == nil {
		return func() {}
	}

	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*entry, 0, len(sorted))
	for _, key := range sorted {
		e := l.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(sorted[i])
		}
	}
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size reports how many keys currently have an entry
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
