package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Backend.Get when nothing is stored under the key
var ErrKeyNotFound = errors.New("key not found")

// Backend is a string-keyed, string-valued persistent store
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Scanner is implemented by backends that can enumerate their keys
type Scanner interface {
	// Keys returns every stored key starting with prefix, in no particular order
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Batcher is implemented by backends that can apply several writes atomically
type Batcher interface {
	Apply(ctx context.Context, ops ...Op) error
}

// OpKind distinguishes the writes an Op can perform
type OpKind int

const (
	OpSet OpKind = iota
	OpRemove
)

// Op is a single write inside a batch
type Op struct {
	Kind  OpKind
	Key   string
	Value string
}

// SetOp creates an Op that stores value under key
func SetOp(key, value string) Op {
	return Op{Kind: OpSet, Key: key, Value: value}
}

// RemoveOp creates an Op that deletes key
func RemoveOp(key string) Op {
	return Op{Kind: OpRemove, Key: key}
}
