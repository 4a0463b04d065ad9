package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "https://api.example.test", "-t", "10", "-d", "/data", "-e", "/reports"},
			expected: &Config{
				BaseURL:        "https://api.example.test",
				RequestTimeout: 10 * time.Second,
				DataDir:        "/data",
				ExportDir:      "/reports",
			},
		},
		{
			name:        "non-numeric timeout panics",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Equal(t, tt.expected, cfg)
		})
	}
}
