package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamsplit/internal/storage"
	"github.com/mcoot/teamsplit/internal/storage/storagetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "teamsplit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, &storagetest.BackendSuite{
		NewBackend: func(t *testing.T) storage.Backend {
			return openTempStore(t)
		},
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "teamsplit.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.FileExists(t, path)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "teamsplit.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, storage.GroupCollectionKey, `["G1"]`))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	val, err := reopened.Get(ctx, storage.GroupCollectionKey)
	require.NoError(t, err)
	assert.Equal(t, `["G1"]`, val)
}

func TestKeysPrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	require.NoError(t, store.Set(ctx, "a%_-1", "x"))
	require.NoError(t, store.Set(ctx, "abc-2", "y"))

	keys, err := store.Keys(ctx, "a%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"a%_-1"}, keys)
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}
