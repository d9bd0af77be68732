package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cockpdf/internal/flagx"
	"github.com/dmitrijs2005/cockpdf/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	BaseURL             *string         `json:"base_url"`
	AuthCacheTTL        *timex.Duration `json:"auth_cache_ttl"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SessionDB           *string         `json:"session_db"`
	OutputDir           *string         `json:"output_dir"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays cfg with the keys present in the JSON config file, if
// one is configured. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(EnvConfigPath)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.AuthCacheTTL != nil {
		cfg.AuthCacheTTL = jc.AuthCacheTTL.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.OutputDir != nil {
		cfg.OutputDir = *jc.OutputDir
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
