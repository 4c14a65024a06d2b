package group

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamsplit/internal/model"
	"github.com/mcoot/teamsplit/internal/services/keylock"
	"github.com/mcoot/teamsplit/internal/services/player"
	"github.com/mcoot/teamsplit/internal/storage"
	"github.com/mcoot/teamsplit/internal/storage/memory"
	"github.com/mcoot/teamsplit/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	players *player.Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	locker := keylock.New()
	s.service = New(s.storage, locker)
	s.players = player.New(s.storage, locker)
	s.ctx = context.Background()
}

// List / Create tests

func (s *ServiceSuite) TestListEmptyByDefault() {
	groups, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(groups)
	s.Empty(groups)
}

func (s *ServiceSuite) TestCreatePreservesInsertionOrder() {
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := s.service.Create(s.ctx, name)
		s.Require().NoError(err)
	}

	groups, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GroupName{"Zeta", "Alpha", "Mid"}, groups)
}

func (s *ServiceSuite) TestCreateTrimsName() {
	name, err := s.service.Create(s.ctx, "  Turma A  ")
	s.Require().NoError(err)
	s.Equal(model.GroupName("Turma A"), name)

	exists, err := s.service.Exists(s.ctx, "Turma A")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ServiceSuite) TestCreateBlankNameFails() {
	_, err := s.service.Create(s.ctx, "   ")
	s.ErrorIs(err, model.ErrGroupNameRequired)
	s.True(model.IsDomainError(err))
}

func (s *ServiceSuite) TestCreateDuplicateIsRejected() {
	_, err := s.service.Create(s.ctx, "G1")
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, "G1")
	s.ErrorIs(err, model.ErrGroupAlreadyExists)
	s.True(model.IsDomainError(err))

	groups, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GroupName{"G1"}, groups)
}

func (s *ServiceSuite) TestCreateIsCaseSensitive() {
	_, err := s.service.Create(s.ctx, "g1")
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, "G1")
	s.Require().NoError(err)

	groups, _ := s.service.List(s.ctx)
	s.Len(groups, 2)
}

func (s *ServiceSuite) TestCreatePersistsJSON() {
	_, _ = s.service.Create(s.ctx, "G1")

	raw, err := s.storage.Get(s.ctx, storage.GroupCollectionKey)
	s.Require().NoError(err)
	s.JSONEq(`["G1"]`, raw)
}

func (s *ServiceSuite) TestListIgnoresMalformedValue() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.GroupCollectionKey, "{not json"))

	groups, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(groups)
}

// Remove tests

func (s *ServiceSuite) TestRemoveDeletesGroupAndPlayers() {
	_, _ = s.service.Create(s.ctx, "G1")
	_, _ = s.service.Create(s.ctx, "G2")
	_, err := s.players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Remove(s.ctx, "G1"))

	groups, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GroupName{"G2"}, groups)

	for _, team := range model.Teams {
		players, err := s.players.ListByTeam(s.ctx, "G1", team)
		s.Require().NoError(err)
		s.Empty(players)
	}

	_, err = s.storage.Get(s.ctx, storage.PlayerCollectionKey("G1"))
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *ServiceSuite) TestRemoveUnknownGroupIsNoop() {
	_, _ = s.service.Create(s.ctx, "G1")

	s.Require().NoError(s.service.Remove(s.ctx, "nope"))

	groups, _ := s.service.List(s.ctx)
	s.Equal([]model.GroupName{"G1"}, groups)
}

func (s *ServiceSuite) TestRemoveThenRecreateStartsEmpty() {
	_, _ = s.service.Create(s.ctx, "G1")
	_, _ = s.players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")
	s.Require().NoError(s.service.Remove(s.ctx, "G1"))

	_, err := s.service.Create(s.ctx, "G1")
	s.Require().NoError(err)

	players, err := s.players.ListAll(s.ctx, "G1")
	s.Require().NoError(err)
	s.Empty(players)
}

// Cascade failure tests (backend without atomic batches)

func (s *ServiceSuite) TestRemoveWithoutBatcherLeavesOrphanOnFailure() {
	faulty := testutil.NewFaultyBackend(s.storage)
	locker := keylock.New()
	service := New(faulty, locker)
	players := player.New(faulty, locker)

	_, _ = service.Create(s.ctx, "G1")
	_, _ = players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")

	faulty.FailRemove(storage.PlayerCollectionKey("G1"))
	err := service.Remove(s.ctx, "G1")
	s.ErrorIs(err, testutil.ErrInjected)
	s.False(model.IsDomainError(err))

	// The group is gone but its players are still stored
	exists, err := service.Exists(s.ctx, "G1")
	s.Require().NoError(err)
	s.False(exists)

	raw, err := s.storage.Get(s.ctx, storage.PlayerCollectionKey("G1"))
	s.Require().NoError(err)
	s.Contains(raw, "Ana")

	// The underlying memory backend can scan, so a sweep over it reclaims the key
	removed, err := New(s.storage, locker).Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{storage.PlayerCollectionKey("G1")}, removed)

	_, err = s.storage.Get(s.ctx, storage.PlayerCollectionKey("G1"))
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *ServiceSuite) TestRecreateAfterFailedRemoveStartsEmpty() {
	faulty := testutil.NewFaultyBackend(s.storage)
	locker := keylock.New()
	service := New(faulty, locker)
	players := player.New(faulty, locker)

	_, err := service.Create(s.ctx, "G1")
	s.Require().NoError(err)
	_, err = players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")
	s.Require().NoError(err)

	faulty.FailRemove(storage.PlayerCollectionKey("G1"))
	s.ErrorIs(service.Remove(s.ctx, "G1"), testutil.ErrInjected)
	faulty.Heal()

	exists, err := service.Exists(s.ctx, "G1")
	s.Require().NoError(err)
	s.False(exists)

	_, err = service.Create(s.ctx, "G1")
	s.Require().NoError(err)

	for _, team := range model.Teams {
		listed, err := players.ListByTeam(s.ctx, "G1", team)
		s.Require().NoError(err)
		s.Empty(listed, team.String())
	}

	_, err = s.storage.Get(s.ctx, storage.PlayerCollectionKey("G1"))
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *ServiceSuite) TestCreateWithoutBatcherFailingClearKeepsGroupUnlisted() {
	faulty := testutil.NewFaultyBackend(s.storage)
	service := New(faulty, nil)

	faulty.FailRemove(storage.PlayerCollectionKey("G1"))
	_, err := service.Create(s.ctx, "G1")
	s.ErrorIs(err, testutil.ErrInjected)

	exists, err := service.Exists(s.ctx, "G1")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ServiceSuite) TestCreateClearsStalePlayers() {
	// A write that raced a Remove left players under an unlisted name
	_, _ = s.players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")

	_, err := s.service.Create(s.ctx, "G1")
	s.Require().NoError(err)

	listed, err := s.players.ListByTeam(s.ctx, "G1", model.TeamA)
	s.Require().NoError(err)
	s.Empty(listed)

	// Players added after creation are kept
	_, err = s.players.Add(s.ctx, model.Player{Name: "Bob", Team: model.TeamB}, "G1")
	s.Require().NoError(err)
	all, err := s.players.ListAll(s.ctx, "G1")
	s.Require().NoError(err)
	s.Equal([]model.Player{{Name: "Bob", Team: model.TeamB}}, all)
}

func (s *ServiceSuite) TestRemoveWithoutBatcherFailingGroupWriteKeepsEverything() {
	faulty := testutil.NewFaultyBackend(s.storage)
	service := New(faulty, nil)

	_, _ = service.Create(s.ctx, "G1")
	_, _ = player.New(faulty, nil).Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "G1")

	faulty.FailSet(storage.GroupCollectionKey)
	s.ErrorIs(service.Remove(s.ctx, "G1"), testutil.ErrInjected)

	groups, err := service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GroupName{"G1"}, groups)

	_, err = s.storage.Get(s.ctx, storage.PlayerCollectionKey("G1"))
	s.NoError(err)
}

func (s *ServiceSuite) TestBackendReadErrorPropagates() {
	faulty := testutil.NewFaultyBackend(s.storage)
	faulty.FailGet(storage.GroupCollectionKey)
	service := New(faulty, nil)

	_, err := service.List(s.ctx)
	s.ErrorIs(err, testutil.ErrInjected)

	_, err = service.Create(s.ctx, "G1")
	s.ErrorIs(err, testutil.ErrInjected)
	s.False(model.IsDomainError(err))
}

// Sweep tests

func (s *ServiceSuite) TestSweepRemovesOnlyOrphans() {
	_, _ = s.service.Create(s.ctx, "Kept")
	_, _ = s.players.Add(s.ctx, model.Player{Name: "Ana", Team: model.TeamA}, "Kept")
	_, _ = s.players.Add(s.ctx, model.Player{Name: "Bob", Team: model.TeamB}, "Never created")
	s.Require().NoError(s.storage.Set(s.ctx, "unrelated", "x"))

	removed, err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{storage.PlayerCollectionKey("Never created")}, removed)

	players, err := s.players.ListAll(s.ctx, "Kept")
	s.Require().NoError(err)
	s.Len(players, 1)

	_, err = s.storage.Get(s.ctx, "unrelated")
	s.NoError(err)
}

func (s *ServiceSuite) TestSweepNothingToDo() {
	removed, err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Empty(removed)
}

func (s *ServiceSuite) TestSweepUnsupportedBackend() {
	service := New(testutil.NewFaultyBackend(s.storage), nil)

	_, err := service.Sweep(s.ctx)
	s.ErrorIs(err, ErrSweepUnsupported)
}
