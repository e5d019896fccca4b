package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the configuration file. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.expandPaths(); err != nil {
				return nil, fmt.Errorf("failed to expand paths: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads config or exits with error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Storage.DataDir, err = expandPath(c.Storage.DataDir)
	if err != nil {
		return err
	}

	c.Storage.HistoryDir, err = expandPath(c.Storage.HistoryDir)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, errors.New("server.port must be between 1 and 65535"))
	}
	if c.Server.MaxRequestsPerMin < 1 {
		errs = append(errs, errors.New("server.max_requests_per_min must be at least 1"))
	}
	if c.Server.RequestTimeoutSec < 1 {
		errs = append(errs, errors.New("server.request_timeout_sec must be at least 1"))
	}
	if c.Server.CacheTTLSec < 0 {
		errs = append(errs, errors.New("server.cache_ttl_sec must not be negative"))
	}

	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir is required"))
	}
	if c.Storage.HistoryDir == "" {
		errs = append(errs, errors.New("storage.history_dir is required"))
	}

	for key, w := range c.Engine.Weights {
		if w < 0 {
			errs = append(errs, fmt.Errorf("engine.weights.%s must not be negative", key))
		}
	}
	if c.Engine.BestThreshold < c.Engine.PartialThreshold {
		errs = append(errs, errors.New("engine.best_threshold must not be below engine.partial_threshold"))
	}
	if c.Engine.PartialThreshold < 0 || c.Engine.BestThreshold > 100 {
		errs = append(errs, errors.New("engine thresholds must be within 0 and 100"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// EnsureDirectories creates necessary directories for storage
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDir,
		c.Storage.HistoryDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
