package memory

import (
	"context"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mcoot/teamsplit/internal/storage"
)

// Storage is an in-memory implementation of the storage backend.
// Contents are lost when the process exits.
type Storage struct {
	// batchMu serialises Apply against single-key writes so a batch is never observed half-applied
	batchMu sync.RWMutex
	items   *gocache.Cache
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		items: gocache.New(gocache.NoExpiration, 0),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Backend = (*Storage)(nil)
	_ storage.Scanner = (*Storage)(nil)
	_ storage.Batcher = (*Storage)(nil)
)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.batchMu.RLock()
	defer s.batchMu.RUnlock()
	val, ok := s.items.Get(key)
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return val.(string), nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.batchMu.RLock()
	defer s.batchMu.RUnlock()
	s.items.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	s.batchMu.RLock()
	defer s.batchMu.RUnlock()
	s.items.Delete(key)
	return nil
}

func (s *Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.batchMu.RLock()
	defer s.batchMu.RUnlock()
	var keys []string
	for key := range s.items.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Storage) Apply(ctx context.Context, ops ...storage.Op) error {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case storage.OpSet:
			s.items.Set(op.Key, op.Value, gocache.NoExpiration)
		case storage.OpRemove:
			s.items.Delete(op.Key)
		}
	}
	return nil
}
