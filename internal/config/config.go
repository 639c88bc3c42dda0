package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	Auth struct {
		AdminPassword string `yaml:"admin_password"`
		GuestPassword string `yaml:"guest_password"`
	} `yaml:"auth"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Snapshot struct {
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
		RefreshCron     string `yaml:"refresh_cron"`
	} `yaml:"snapshot"`
	Rate struct {
		FallbackAmount int `yaml:"fallback_amount"`
	} `yaml:"rate"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("GUEST_PASSWORD"); v != "" {
		cfg.Auth.GuestPassword = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Snapshot.CacheTTLSeconds = n
		}
	}
	if v := os.Getenv("SNAPSHOT_REFRESH_CRON"); v != "" {
		cfg.Snapshot.RefreshCron = v
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/ledger.db"
	}
	if cfg.Snapshot.CacheTTLSeconds == 0 {
		cfg.Snapshot.CacheTTLSeconds = 60
	}

	return cfg, nil
}

// CacheTTL returns the snapshot cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Snapshot.CacheTTLSeconds) * time.Second
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("auth.admin_password is required")
	}
	if c.Auth.GuestPassword == "" {
		return fmt.Errorf("auth.guest_password is required")
	}
	if c.Auth.AdminPassword == c.Auth.GuestPassword {
		return fmt.Errorf("auth passwords must differ")
	}
	if c.Snapshot.CacheTTLSeconds < 0 {
		return fmt.Errorf("snapshot.cache_ttl_seconds must not be negative")
	}
	return nil
}
