// Package config holds runtime settings for the chatadmin client and the
// layered loading order: defaults, then JSON file, then environment, then
// command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the chatadmin client.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: SQLite file holding the persisted session.
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "chatadmin.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), environment variables, and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
