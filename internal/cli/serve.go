package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/api"
	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/crossref"
	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Examples:
  mcucross serve
  mcucross serve --addr=:9090`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address override (host:port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	if serveAddr != "" {
		host, port, err := splitAddr(serveAddr)
		if err != nil {
			return err
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
	}

	s, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open part store: %w", err)
	}
	if err := s.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize part store: %w", err)
	}

	db, err := database.NewDB(cfg.Storage.HistoryDir)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	sv := crossref.New(s, database.NewHistory(db), cfg.Engine)
	return api.NewServer(cfg, sv).Run()
}

// splitAddr parses "host:port" with an optional host part.
func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q (expected host:port)", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in address %q", addr)
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return host, port, nil
}
