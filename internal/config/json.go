package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values.
type JsonConfig struct {
	Storage          *string         `json:"storage"`
	DatabasePath     *string         `json:"database_path"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisPassword    *string         `json:"redis_password"`
	RedisDB          *int            `json:"redis_db"`
	KeyPrefix        *string         `json:"key_prefix"`
	StorageTimeout   *timex.Duration `json:"storage_timeout"`
	PasswordHashing  *string         `json:"password_hashing"`
	EnforceOwnership *bool           `json:"enforce_ownership"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c / -config.
// Read or unmarshal errors panic: a broken config file must stop startup.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setIf(&cfg.Storage, jc.Storage)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.RedisAddr, jc.RedisAddr)
	setIf(&cfg.RedisPassword, jc.RedisPassword)
	setIf(&cfg.RedisDB, jc.RedisDB)
	setIf(&cfg.KeyPrefix, jc.KeyPrefix)
	setIf(&cfg.PasswordHashing, jc.PasswordHashing)
	setIf(&cfg.EnforceOwnership, jc.EnforceOwnership)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.StorageTimeout != nil {
		cfg.StorageTimeout = jc.StorageTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
