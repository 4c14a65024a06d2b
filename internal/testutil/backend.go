package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/mcoot/teamsplit/internal/storage"
)

// ErrInjected is the failure returned by FaultyBackend
var ErrInjected = errors.New("injected backend failure")

// FaultyBackend wraps a Backend, hiding any Scanner or Batcher it implements,
// and fails the operations it is told to fail.
type FaultyBackend struct {
	Inner storage.Backend

	mu         sync.Mutex
	failGet    map[string]bool
	failSet    map[string]bool
	failRemove map[string]bool
}

// NewFaultyBackend wraps inner
func NewFaultyBackend(inner storage.Backend) *FaultyBackend {
	return &FaultyBackend{
		Inner:      inner,
		failGet:    make(map[string]bool),
		failSet:    make(map[string]bool),
		failRemove: make(map[string]bool),
	}
}

// FailGet makes every Get of key fail
func (b *FaultyBackend) FailGet(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failGet[key] = true
}

// FailSet makes every Set of key fail
func (b *FaultyBackend) FailSet(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSet[key] = true
}

// FailRemove makes every Remove of key fail
func (b *FaultyBackend) FailRemove(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failRemove[key] = true
}

// Heal clears every injected failure
func (b *FaultyBackend) Heal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.failGet)
	clear(b.failSet)
	clear(b.failRemove)
}

func (b *FaultyBackend) should(m map[string]bool, key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return m[key]
}

func (b *FaultyBackend) Get(ctx context.Context, key string) (string, error) {
	if b.should(b.failGet, key) {
		return "", ErrInjected
	}
	return b.Inner.Get(ctx, key)
}

func (b *FaultyBackend) Set(ctx context.Context, key, value string) error {
	if b.should(b.failSet, key) {
		return ErrInjected
	}
	return b.Inner.Set(ctx, key, value)
}

func (b *FaultyBackend) Remove(ctx context.Context, key string) error {
	if b.should(b.failRemove, key) {
		return ErrInjected
	}
	return b.Inner.Remove(ctx, key)
}

// GatedBackend reads the value, reports the read on Reads and then holds the result
// until Release is called. It lets tests force two read-modify-write sequences to
// interleave on the same snapshot.
type GatedBackend struct {
	storage.Backend

	Reads   chan string
	release chan struct{}
	once    sync.Once
}

// NewGatedBackend wraps inner. Reads is buffered for up to n pending reads.
func NewGatedBackend(inner storage.Backend, n int) *GatedBackend {
	return &GatedBackend{
		Backend: inner,
		Reads:   make(chan string, n),
		release: make(chan struct{}),
	}
}

// Release lets all current and future Gets proceed
func (b *GatedBackend) Release() {
	b.once.Do(func() { close(b.release) })
}

func (b *GatedBackend) Get(ctx context.Context, key string) (string, error) {
	val, err := b.Backend.Get(ctx, key)
	b.Reads <- key
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return val, err
}
