package config

import (
	"time"
)

// Config collects the client's whole configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	State   StateConfig   `mapstructure:"state"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Payment PaymentConfig `mapstructure:"payment"`
}

// APIConfig points the client at the storefront backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// StateConfig locates the local state database.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig tunes the in-memory catalog cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// PaymentConfig controls the local payment-return listener.
type PaymentConfig struct {
	ReturnAddr  string        `mapstructure:"return_addr"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
}
