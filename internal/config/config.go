package config

import "time"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Engine  EngineConfig  `toml:"engine"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string   `toml:"host"`
	Port              int      `toml:"port"`
	AllowedOrigins    []string `toml:"allowed_origins"`
	MaxRequestsPerMin int      `toml:"max_requests_per_min"`
	RequestTimeoutSec int      `toml:"request_timeout_sec"`
	CacheTTLSec       int      `toml:"cache_ttl_sec"`
}

// RequestTimeout returns the request timeout as a duration
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

// CacheTTL returns the response cache TTL as a duration
func (s ServerConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSec) * time.Second
}

// StorageConfig contains catalog and history storage settings
type StorageConfig struct {
	DataDir    string `toml:"data_dir"`
	HistoryDir string `toml:"history_dir"`
}

// EngineConfig contains scoring engine settings
type EngineConfig struct {
	// Weights overrides the built-in feature weights; keys not listed
	// keep their defaults
	Weights map[string]float64 `toml:"weights"`

	BestThreshold    float64 `toml:"best_threshold"`
	PartialThreshold float64 `toml:"partial_threshold"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
			MaxRequestsPerMin: 120,
			RequestTimeoutSec: 30,
			CacheTTLSec:       300,
		},
		Storage: StorageConfig{
			DataDir:    "~/.local/share/mcu-crossref",
			HistoryDir: "~/.local/share/mcu-crossref",
		},
		Engine: EngineConfig{
			Weights:          map[string]float64{},
			BestThreshold:    80,
			PartialThreshold: 65,
		},
	}
}
