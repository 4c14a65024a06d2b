package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/teamsplit/internal/services/group"
	"github.com/mcoot/teamsplit/internal/services/keylock"
	"github.com/mcoot/teamsplit/internal/services/player"
	"github.com/mcoot/teamsplit/internal/storage"
	"github.com/mcoot/teamsplit/internal/storage/memory"
	redisstorage "github.com/mcoot/teamsplit/internal/storage/redis"
	"github.com/mcoot/teamsplit/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// EnvPrefix is prepended to every environment variable read by ConfigFromEnv
const EnvPrefix = "TEAMSPLIT_"

// App contains all wired application components
type App struct {
	// Storage
	Backend storage.Backend

	// Services
	GroupService  *group.Service
	PlayerService *player.Service

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	StorageType string `env:"STORAGE" envDefault:"sqlite"`
	// SQLitePath is the database file used by the sqlite backend.
	// If empty, DefaultSQLitePath() is used.
	SQLitePath string `env:"DB_PATH"`
	// Redis holds Redis connection settings (used if StorageType is "redis")
	Redis redisstorage.Config `envPrefix:"REDIS_"`
	// Locking serialises read-modify-write operations on the same key within this process
	Locking bool `env:"LOCKING" envDefault:"true"`
	// SweepOnStart removes orphaned player collections when the app is created
	SweepOnStart bool `env:"SWEEP_ON_START" envDefault:"true"`
}

// ConfigFromEnv reads TEAMSPLIT_* environment variables
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultSQLitePath returns the per-user database location
func DefaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".teamsplit", "teamsplit.db")
	}
	return filepath.Join(dir, "teamsplit", "teamsplit.db")
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		backend storage.Backend
		closer  io.Closer
	)

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	switch storageType {
	case StorageTypeMemory:
		backend = memory.New()
	case StorageTypeSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = DefaultSQLitePath()
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		backend, closer = store, store
	case StorageTypeRedis:
		redisStore, err := redisstorage.New(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		backend, closer = redisStore, redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	logger.Debug("storage opened", slog.String("type", storageType))

	var locker *keylock.Locker
	if cfg.Locking {
		locker = keylock.New()
	}

	app := newWithDependencies(backend, locker)
	app.closer = closer

	if cfg.SweepOnStart {
		if err := app.sweep(ctx, logger); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(backend storage.Backend, locker *keylock.Locker) *App {
	return &App{
		Backend:       backend,
		GroupService:  group.New(backend, locker),
		PlayerService: player.New(backend, locker),
	}
}

func (a *App) sweep(ctx context.Context, logger *slog.Logger) error {
	removed, err := a.GroupService.Sweep(ctx)
	if errors.Is(err, group.ErrSweepUnsupported) {
		logger.Debug("orphan sweep skipped", slog.String("reason", err.Error()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("sweep orphaned players: %w", err)
	}
	if len(removed) > 0 {
		logger.Info("removed orphaned player collections",
			slog.Int("count", len(removed)),
			slog.Any("keys", removed),
		)
	}
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
