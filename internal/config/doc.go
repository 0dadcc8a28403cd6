// Package config loads runtime configuration for notekeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: sqlite, redis or memory
//	-d string   path of the SQLite database file
//	-r string   address:port of the Redis server
//	-t int      per-operation storage timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "storage": "sqlite",
//	  "database_path": "notekeeper.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_password": "",
//	  "redis_db": 0,
//	  "key_prefix": "",
//	  "storage_timeout": "5s",
//	  "password_hashing": "plain",
//	  "enforce_ownership": false,
//	  "log_level": "info"
//	}
//
// Keys missing from the file keep their earlier value.
package config
