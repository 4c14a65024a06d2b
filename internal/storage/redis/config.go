package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `env:"URL" envDefault:"redis://localhost:6379"`

	// Pool settings
	PoolSize     int `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"MIN_IDLE_CONNS" envDefault:"2"`

	// Namespace is prepended to every key so several apps can share one database
	Namespace string `env:"NAMESPACE" envDefault:"teamsplit"`

	// ScanCount is the COUNT hint passed to SCAN when listing keys
	ScanCount int64 `env:"SCAN_COUNT" envDefault:"100"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		Namespace:    "teamsplit",
		ScanCount:    100,
	}
}
