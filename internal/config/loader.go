package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from defaults, an optional YAML config file and
// SHOPFRONT_* environment overrides, in that precedence order.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "shopfront"))
	}
	v.AddConfigPath("/etc/shopfront/")

	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine; defaults plus env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "30s")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("state.path", defaultStatePath())

	v.SetDefault("cache.ttl", "1m")

	v.SetDefault("payment.return_addr", "127.0.0.1:9876")
	v.SetDefault("payment.wait_timeout", "5m")
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shopfront-state.db"
	}
	return filepath.Join(dir, "shopfront", "state.db")
}

// WriteStarterFile writes a commented starter config with the current
// defaults to path, refusing to clobber an existing file.
func WriteStarterFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	starter := map[string]any{
		"api": map[string]any{
			"base_url": "http://localhost:8080/api",
			"timeout":  "30s",
		},
		"log": map[string]any{
			"level":  "warn",
			"format": "text",
		},
		"state": map[string]any{
			"path": defaultStatePath(),
		},
		"cache": map[string]any{
			"ttl": "1m",
		},
		"payment": map[string]any{
			"return_addr":  "127.0.0.1:9876",
			"wait_timeout": "5m",
		},
	}
	data, err := yaml.Marshal(starter)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultFilePath is where `config init` writes when no path is given.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "shopfront", "config.yaml")
}
