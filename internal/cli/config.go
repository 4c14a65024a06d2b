package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/teamsplit/internal/factory"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds CLI configuration
type Config struct {
	// ServerURL switches the CLI to a running API server. Empty means the local store.
	ServerURL string `env:"SERVER"`
	Output    string `env:"OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"VERBOSE"`

	// Store configures the local store used when ServerURL is empty
	Store factory.Config
}

// LoadConfig reads TEAMSPLIT_* environment variables
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: factory.EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Remote reports whether commands go to an API server
func (c *Config) Remote() bool {
	return c.ServerURL != ""
}

// Validate checks flag values that cobra cannot check itself
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q: must be text, json or yaml", c.Output)
	}

	switch c.Store.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeSQLite, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("unknown storage %q: must be memory, sqlite or redis", c.Store.StorageType)
	}

	return nil
}
