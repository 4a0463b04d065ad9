package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("MEDIMINDER_BASE_URL", "https://env.example.test")
	t.Setenv("MEDIMINDER_REQUEST_TIMEOUT", "5s")
	t.Setenv("MEDIMINDER_EXPORT_DIR", "/env/reports")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://env.example.test", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/env/reports", cfg.ExportDir)
}

func TestParseEnv_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("MEDIMINDER_REQUEST_TIMEOUT", "whenever")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
