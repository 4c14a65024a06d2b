package factory

import (
	"github.com/mcoot/teamsplit/internal/services/keylock"
	"github.com/mcoot/teamsplit/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Storage is the in-memory backend, exposed for direct inspection
	Storage *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage with locking enabled
func NewTestApp() *TestApp {
	store := memory.New()

	return &TestApp{
		App:     newWithDependencies(store, keylock.New()),
		Storage: store,
	}
}
