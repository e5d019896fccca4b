package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/strivefit/mcu-crossref/internal/api"
	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/crossref"
	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/store"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration file with environment overrides
	cfg, err := config.Load(getEnvOrDefault("CONFIG_PATH", "~/.config/mcu-crossref/config.toml"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
		cfg.Storage.HistoryDir = dataDir
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			slog.Error("Invalid PORT", "port", port)
			os.Exit(1)
		}
		cfg.Server.Port = p
	}

	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create storage directories", "error", err)
		os.Exit(1)
	}

	// Initialize the part store with seed data
	s, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("Failed to open part store", "error", err)
		os.Exit(1)
	}
	if err := s.Initialize(); err != nil {
		slog.Error("Failed to initialize part store", "error", err)
		os.Exit(1)
	}

	// Initialize the comparison history database
	db, err := database.NewDB(cfg.Storage.HistoryDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	service := crossref.New(s, database.NewHistory(db), cfg.Engine)

	if err := api.NewServer(cfg, service).Run(); err != nil {
		os.Exit(1)
	}
}

// Helper function for environment variables with defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
