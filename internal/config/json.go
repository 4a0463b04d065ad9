package config

import (
	"encoding/json"
	"os"

	"github.com/mediminder/mediminder/internal/flagx"
	"github.com/mediminder/mediminder/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "30s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DataDir        string         `json:"data_dir"`
	ExportDir      string         `json:"export_dir"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent flag means no JSON stage. Only fields present
// in the file override the current values. Read or unmarshal errors
// panic; the config is load-once at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
}
