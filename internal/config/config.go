// Package config loads the HTTP service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. TREEGRAPH_ADDR.
const Prefix = "TREEGRAPH"

type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	RedisURL     string        `envconfig:"REDIS_URL"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"168h"`
	CachePrefix  string        `envconfig:"CACHE_PREFIX" default:"treegraph:"`
	Width        float64       `envconfig:"WIDTH" default:"800"`
	Height       float64       `envconfig:"HEIGHT" default:"600"`
	MaxBodyBytes int64         `envconfig:"MAX_BODY_BYTES" default:"4194304"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	MongoURL     string        `envconfig:"MONGO_URL"`
	MongoDB      string        `envconfig:"MONGO_DB" default:"treegraph"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.SessionTTL < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("ttls must not be negative")
	}
	return nil
}
