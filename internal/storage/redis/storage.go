package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/teamsplit/internal/storage"
)

// Storage is a Redis-backed implementation of the storage backend
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interfaces
var (
	_ storage.Backend = (*Storage)(nil)
	_ storage.Scanner = (*Storage)(nil)
	_ storage.Batcher = (*Storage)(nil)
)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.namespaced(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.namespaced(key), value, 0).Err()
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.namespaced(key)).Err()
}

func (s *Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.matchPattern(prefix), s.cfg.ScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, s.stripNamespace(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Apply runs all ops inside one MULTI/EXEC transaction
func (s *Storage) Apply(ctx context.Context, ops ...storage.Op) error {
	if len(ops) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range ops {
			switch op.Kind {
			case storage.OpSet:
				pipe.Set(ctx, s.namespaced(op.Key), op.Value, 0)
			case storage.OpRemove:
				pipe.Del(ctx, s.namespaced(op.Key))
			}
		}
		return nil
	})
	return err
}
