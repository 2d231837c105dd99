package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, sourced from the environment
type Config struct {
	Host           string `env:"SENTINEL_HOST" envDefault:""`
	Port           int    `env:"SENTINEL_PORT" envDefault:"8080"`
	StorageType    string `env:"SENTINEL_STORAGE" envDefault:"memory"`
	RedisURL       string `env:"SENTINEL_REDIS_URL"`
	InternalSecret string `env:"SENTINEL_INTERNAL_SECRET"`

	StoreTimeout     time.Duration `env:"SENTINEL_STORE_TIMEOUT" envDefault:"2s"`
	BalanceCacheSize int           `env:"SENTINEL_BALANCE_CACHE_SIZE" envDefault:"1024"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
