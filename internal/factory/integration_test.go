package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamsplit/internal/model"
	"github.com/mcoot/teamsplit/internal/storage"
	redisstorage "github.com/mcoot/teamsplit/internal/storage/redis"
	"github.com/mcoot/teamsplit/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a full roster lifecycle from group creation to cascade delete
func (s *IntegrationSuite) TestRosterLifecycle() {
	// Step 1: Create two groups
	_, err := s.app.GroupService.Create(s.ctx, "Friday Football")
	s.Require().NoError(err)
	_, err = s.app.GroupService.Create(s.ctx, "Chess Club")
	s.Require().NoError(err)

	// Step 2: Fill both teams of the first group
	for _, p := range []model.Player{
		{Name: "Alice", Team: model.TeamA},
		{Name: "Bob", Team: model.TeamB},
		{Name: "Carol", Team: model.TeamA},
	} {
		_, err := s.app.PlayerService.Add(s.ctx, p, "Friday Football")
		s.Require().NoError(err)
	}
	_, err = s.app.PlayerService.Add(s.ctx, model.Player{Name: "Dave", Team: model.TeamB}, "Chess Club")
	s.Require().NoError(err)

	teamA, err := s.app.PlayerService.ListByTeam(s.ctx, "Friday Football", model.TeamA)
	s.Require().NoError(err)
	s.Equal([]model.Player{
		{Name: "Alice", Team: model.TeamA},
		{Name: "Carol", Team: model.TeamA},
	}, teamA)

	// Step 3: Remove the first group; its players go with it
	s.Require().NoError(s.app.GroupService.Remove(s.ctx, "Friday Football"))

	groups, err := s.app.GroupService.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GroupName{"Chess Club"}, groups)

	_, err = s.app.Storage.Get(s.ctx, storage.PlayerCollectionKey("Friday Football"))
	s.ErrorIs(err, storage.ErrKeyNotFound)

	// Step 4: The other group is untouched
	all, err := s.app.PlayerService.ListAll(s.ctx, "Chess Club")
	s.Require().NoError(err)
	s.Equal([]model.Player{{Name: "Dave", Team: model.TeamB}}, all)
}

func (s *IntegrationSuite) TestSweepOnStartRemovesOrphans() {
	path := filepath.Join(s.T().TempDir(), "teamsplit.db")
	cfg := Config{StorageType: StorageTypeSQLite, SQLitePath: path, Locking: true}

	app, err := New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	_, err = app.GroupService.Create(s.ctx, "Kept")
	s.Require().NoError(err)
	_, err = app.PlayerService.Add(s.ctx, model.Player{Name: "Alice", Team: model.TeamA}, "Kept")
	s.Require().NoError(err)
	_, err = app.PlayerService.Add(s.ctx, model.Player{Name: "Bob", Team: model.TeamB}, "Gone")
	s.Require().NoError(err)
	s.Require().NoError(app.Close())

	cfg.SweepOnStart = true
	app, err = New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	defer app.Close()

	_, err = app.Backend.Get(s.ctx, storage.PlayerCollectionKey("Gone"))
	s.ErrorIs(err, storage.ErrKeyNotFound)

	kept, err := app.PlayerService.ListAll(s.ctx, "Kept")
	s.Require().NoError(err)
	s.Equal([]model.Player{{Name: "Alice", Team: model.TeamA}}, kept)
}

func (s *IntegrationSuite) TestNewWithRedis() {
	mini := miniredis.RunT(s.T())

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(s.ctx, Config{StorageType: StorageTypeRedis, Redis: redisCfg, SweepOnStart: true}, nil)
	s.Require().NoError(err)
	defer app.Close()

	_, err = app.GroupService.Create(s.ctx, "Team Night")
	s.Require().NoError(err)
	s.True(mini.Exists(redisCfg.Namespace + ":" + storage.GroupCollectionKey))
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(s.ctx, Config{StorageType: "etcd"}, nil)
	s.Error(err)
}

func (s *IntegrationSuite) TestConfigFromEnv() {
	s.T().Setenv("TEAMSPLIT_STORAGE", "redis")
	s.T().Setenv("TEAMSPLIT_REDIS_URL", "redis://cache:6379/2")
	s.T().Setenv("TEAMSPLIT_SWEEP_ON_START", "false")

	cfg, err := ConfigFromEnv()
	s.Require().NoError(err)
	s.Equal(StorageTypeRedis, cfg.StorageType)
	s.Equal("redis://cache:6379/2", cfg.Redis.URL)
	s.False(cfg.SweepOnStart)
	s.True(cfg.Locking)
}

func (s *IntegrationSuite) TestConfigFromEnvDefaults() {
	cfg, err := ConfigFromEnv()
	s.Require().NoError(err)
	s.Equal(StorageTypeSQLite, cfg.StorageType)
	s.True(cfg.SweepOnStart)
	s.True(cfg.Locking)
}
