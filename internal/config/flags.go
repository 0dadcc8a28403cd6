package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed here are looked at; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-r", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "address and port of the Redis server")
	timeout := fs.Int("t", int(cfg.StorageTimeout.Seconds()), "storage timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t counts whole seconds, so it applies only when given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.StorageTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
