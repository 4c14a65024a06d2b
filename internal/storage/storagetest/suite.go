// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamsplit/internal/storage"
)

// BackendSuite runs the backend contract against whatever NewBackend returns.
// Scanner and Batcher tests are skipped for backends that do not implement them.
type BackendSuite struct {
	suite.Suite
	NewBackend func(t *testing.T) storage.Backend

	backend storage.Backend
	ctx     context.Context
}

func (s *BackendSuite) SetupTest() {
	s.backend = s.NewBackend(s.T())
	s.ctx = context.Background()
}

func (s *BackendSuite) TestGetMissingKey() {
	_, err := s.backend.Get(s.ctx, "missing")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *BackendSuite) TestSetAndGet() {
	s.Require().NoError(s.backend.Set(s.ctx, "greeting", `["hello"]`))

	val, err := s.backend.Get(s.ctx, "greeting")
	s.Require().NoError(err)
	s.Equal(`["hello"]`, val)
}

func (s *BackendSuite) TestSetOverwrites() {
	s.Require().NoError(s.backend.Set(s.ctx, "k", "one"))
	s.Require().NoError(s.backend.Set(s.ctx, "k", "two"))

	val, err := s.backend.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("two", val)
}

func (s *BackendSuite) TestEmptyValueIsPresent() {
	s.Require().NoError(s.backend.Set(s.ctx, "k", ""))

	val, err := s.backend.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Empty(val)
}

func (s *BackendSuite) TestRemove() {
	s.Require().NoError(s.backend.Set(s.ctx, "k", "v"))
	s.Require().NoError(s.backend.Remove(s.ctx, "k"))

	_, err := s.backend.Get(s.ctx, "k")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *BackendSuite) TestRemoveMissingKey() {
	s.NoError(s.backend.Remove(s.ctx, "missing"))
}

func (s *BackendSuite) TestKeysWithPrefix() {
	scanner, ok := s.backend.(storage.Scanner)
	if !ok {
		s.T().Skip("backend does not implement storage.Scanner")
	}

	s.Require().NoError(s.backend.Set(s.ctx, "players-a", "1"))
	s.Require().NoError(s.backend.Set(s.ctx, "players-b", "2"))
	s.Require().NoError(s.backend.Set(s.ctx, "groups", "3"))

	keys, err := scanner.Keys(s.ctx, "players-")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"players-a", "players-b"}, keys)

	keys, err = scanner.Keys(s.ctx, "nothing-")
	s.Require().NoError(err)
	s.Empty(keys)
}

func (s *BackendSuite) TestApply() {
	batcher, ok := s.backend.(storage.Batcher)
	if !ok {
		s.T().Skip("backend does not implement storage.Batcher")
	}

	s.Require().NoError(s.backend.Set(s.ctx, "old", "x"))

	err := batcher.Apply(s.ctx,
		storage.SetOp("a", "1"),
		storage.SetOp("b", "2"),
		storage.RemoveOp("old"),
		storage.RemoveOp("never-existed"),
	)
	s.Require().NoError(err)

	val, err := s.backend.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal("1", val)

	val, err = s.backend.Get(s.ctx, "b")
	s.Require().NoError(err)
	s.Equal("2", val)

	_, err = s.backend.Get(s.ctx, "old")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *BackendSuite) TestApplyEmpty() {
	batcher, ok := s.backend.(storage.Batcher)
	if !ok {
		s.T().Skip("backend does not implement storage.Batcher")
	}
	s.NoError(batcher.Apply(s.ctx))
}
