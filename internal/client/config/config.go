package config

import "time"

// EnvConfigPath names the environment variable consulted for the JSON
// config path when neither -c nor -config is given.
const EnvConfigPath = "COCKPDF_CONFIG"

// Config holds runtime settings for the cockpdf CLI.
type Config struct {
	// BaseURL is the absolute API root, e.g. http://127.0.0.1:8000/api.
	BaseURL string
	// AuthCacheTTL bounds how long an authentication answer is reused.
	AuthCacheTTL time.Duration
	// OnlineCheckInterval is how often the server health endpoint is probed.
	OnlineCheckInterval time.Duration
	// RequestTimeout caps every command; the HTTP client itself has none.
	RequestTimeout time.Duration
	// SessionDB is the SQLite file holding the persisted session.
	SessionDB string
	// OutputDir receives the PDFs produced by OCR.
	OutputDir string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000/api"
	c.AuthCacheTTL = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 2 * time.Minute
	c.SessionDB = "session.db"
	c.OutputDir = "pdf"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
