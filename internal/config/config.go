package config

import (
	"errors"
	"time"

	libconfig "github.com/openmeteo/enhydris-synoptic/libs/config"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	Log struct {
		Level    string `yaml:"level" env:"LOG_LEVEL"`
		Encoding string `yaml:"encoding" env:"LOG_ENCODING"`
	} `yaml:"log"`
	Database struct {
		DSN string `yaml:"dsn" env:"SYNOPTIC_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"SYNOPTIC_REDIS_ADDR"`
		Password string `yaml:"password" env:"SYNOPTIC_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Output struct {
		Dir     string   `yaml:"dir" env:"SYNOPTIC_OUTPUT_DIR"`
		Palette []string `yaml:"palette" env:"SYNOPTIC_CHART_PALETTE"`
	} `yaml:"output"`
	SMTP struct {
		Host     string `yaml:"host" env:"SYNOPTIC_SMTP_HOST"`
		Port     int    `yaml:"port" env:"SYNOPTIC_SMTP_PORT"`
		Username string `yaml:"username" env:"SYNOPTIC_SMTP_USERNAME"`
		Password string `yaml:"password" env:"SYNOPTIC_SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SYNOPTIC_SMTP_FROM"`
	} `yaml:"smtp"`
	Scheduler struct {
		IntervalMinutes int `yaml:"intervalMinutes" env:"SYNOPTIC_INTERVAL_MINUTES"`
	} `yaml:"scheduler"`
	Store struct {
		QueryTimeoutSeconds int `yaml:"queryTimeoutSeconds" env:"SYNOPTIC_STORE_TIMEOUT_SECONDS"`
	} `yaml:"store"`
	Cache struct {
		TTLMinutes int `yaml:"ttlMinutes" env:"SYNOPTIC_CACHE_TTL_MINUTES"`
	} `yaml:"cache"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Scheduler.IntervalMinutes = 10
	cfg.Store.QueryTimeoutSeconds = 30
	cfg.SMTP.Port = 25

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.Output.Dir == "" {
		return nil, errors.New("config: output directory is required")
	}
	if cfg.Scheduler.IntervalMinutes <= 0 {
		cfg.Scheduler.IntervalMinutes = 10
	}
	if cfg.Store.QueryTimeoutSeconds <= 0 {
		cfg.Store.QueryTimeoutSeconds = 30
	}

	return cfg, nil
}

// Interval converts the scheduler interval to a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Scheduler.IntervalMinutes) * time.Minute
}

// QueryTimeout converts the store query timeout to a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Store.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns how long published aggregates stay readable. The default
// covers two scheduler intervals, so one missed run does not blank the
// dashboard.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLMinutes > 0 {
		return time.Duration(c.Cache.TTLMinutes) * time.Minute
	}
	return 2 * c.Interval()
}
