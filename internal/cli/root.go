package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamsplit/internal/factory"
)

var (
	cfg    *Config
	roster Roster
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgErr error
	cfg, cfgErr = LoadConfig()
	if cfgErr != nil {
		cfg = &Config{Output: FormatText, Store: factory.Config{StorageType: factory.StorageTypeSQLite}}
	}

	rootCmd := &cobra.Command{
		Use:   "teamsplit",
		Short: "Manage groups of players split into two teams",
		Long: `teamsplit keeps named groups of players, each player assigned to Team A or Team B.

By default it works on a local store (sqlite unless TEAMSPLIT_STORAGE says
otherwise). With --server it talks to a running teamsplit API server instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Remote() {
				roster = newRemoteRoster(NewClient(cfg.ServerURL))
				return nil
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			app, err := factory.New(cmd.Context(), cfg.Store, logger)
			if err != nil {
				return err
			}
			roster = newLocalRoster(app, cfg.Store.StorageType)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeRoster()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API server URL; empty uses the local store (env: TEAMSPLIT_SERVER)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json, yaml (env: TEAMSPLIT_OUTPUT)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	flags.StringVar(&cfg.Store.StorageType, "storage", cfg.Store.StorageType, "Local storage: memory, sqlite, redis (env: TEAMSPLIT_STORAGE)")
	flags.StringVar(&cfg.Store.SQLitePath, "db", cfg.Store.SQLitePath, "SQLite database path (env: TEAMSPLIT_DB_PATH)")
	flags.StringVar(&cfg.Store.Redis.URL, "redis-url", cfg.Store.Redis.URL, "Redis URL (env: TEAMSPLIT_REDIS_URL)")
	flags.BoolVar(&cfg.Store.SweepOnStart, "sweep-on-start", cfg.Store.SweepOnStart, "Remove orphaned player lists before running (env: TEAMSPLIT_SWEEP_ON_START)")

	// Add subcommands
	rootCmd.AddCommand(newGroupCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newSweepCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCmd()
	err := cmd.Execute()
	// PersistentPostRunE is skipped when a command fails
	_ = closeRoster()
	if err != nil {
		format := FormatText
		if cfg != nil {
			format = cfg.Output
		}
		NewOutput(format, os.Stdout, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}

func closeRoster() error {
	if roster == nil {
		return nil
	}
	err := roster.Close()
	roster = nil
	return err
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
