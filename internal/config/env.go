package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with values from the process environment.
// A .env file in the working directory is loaded first, if present,
// without overriding variables that are already set.
//
// Recognized variables:
//
//	MEDIMINDER_BASE_URL
//	MEDIMINDER_REQUEST_TIMEOUT  (time.ParseDuration format)
//	MEDIMINDER_DATA_DIR
//	MEDIMINDER_EXPORT_DIR
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MEDIMINDER_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MEDIMINDER_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("MEDIMINDER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MEDIMINDER_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
}
