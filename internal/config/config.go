package config

import "time"

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"

	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// Config holds runtime settings for notekeeper.
type Config struct {
	// Storage selects the key-value substrate backend.
	Storage string

	DatabasePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces the users/notes/currentUser keys, so several
	// profiles can share one Redis database.
	KeyPrefix string

	// StorageTimeout bounds every substrate call; zero disables it.
	StorageTimeout time.Duration

	// PasswordHashing is "plain" (stored verbatim) or "bcrypt".
	PasswordHashing string

	// EnforceOwnership rejects note get/update/delete for notes owned by
	// somebody other than the current user.
	EnforceOwnership bool

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQLite
	c.DatabasePath = "notekeeper.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.KeyPrefix = ""
	c.StorageTimeout = 5 * time.Second
	c.PasswordHashing = HashingPlain
	c.EnforceOwnership = false
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
