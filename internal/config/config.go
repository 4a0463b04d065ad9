// Package config assembles runtime settings for the MediMinder CLI.
//
// Sources are applied in order, later ones winning:
// defaults → JSON file (-c/-config) → environment (.env honored) → flags.
package config

import "time"

// Config holds runtime settings for the MediMinder CLI.
//
// Fields:
//   - BaseURL: scheme://host of the backend REST endpoint.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for the durable session/preference store.
//     Empty means the per-user config directory.
//   - ExportDir: directory CSV reports are written to.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DataDir        string
	ExportDir      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://mediminder-backend-ks06.onrender.com"
	c.RequestTimeout = 30 * time.Second
	c.DataDir = ""
	c.ExportDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
