// Package config defines simulator configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) returning a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Capacity defaults: large primes for the global entity tables and heap
// position tables, a small prime for the per-customer blacklists.
const (
	defaultUserTableCapacity     = 200017
	defaultPositionTableCapacity = 50077
	defaultBlacklistCapacity     = 97
	defaultHeapCapacity          = 10000
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures an optional Prometheus exposition address,
	// e.g. ":9090". Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// UserTableCapacity sets the bucket count of the global entity tables.
	UserTableCapacity int `koanf:"user_table_capacity"`

	// PositionTableCapacity sets the bucket count of heap side indexes.
	PositionTableCapacity int `koanf:"position_table_capacity"`

	// BlacklistCapacity sets the bucket count of per-customer blacklists.
	BlacklistCapacity int `koanf:"blacklist_capacity"`

	// HeapCapacity sets the initial slot count of each service queue.
	HeapCapacity int `koanf:"heap_capacity"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		MetricsAddr:           "",
		UserTableCapacity:     defaultUserTableCapacity,
		PositionTableCapacity: defaultPositionTableCapacity,
		BlacklistCapacity:     defaultBlacklistCapacity,
		HeapCapacity:          defaultHeapCapacity,
	}
}
