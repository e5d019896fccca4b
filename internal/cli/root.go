package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/crossref"
	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/store"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mcucross",
	Short: "Find substitutes for competitor microcontrollers",
	Long: `mcucross scores how well our microcontrollers substitute for
competitor parts, feature by feature.

It provides:
  - Weighted similarity scoring with per-feature breakdowns
  - Best-match search across our part catalog
  - Competitor part import from CSV and XLSX sheets
  - Comparison history and an HTTP API`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/mcu-crossref/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "mcu-crossref", "config.toml")
	}
}

// openService builds the full service stack from the config file. The
// returned closer releases the history database.
func openService() (*crossref.Service, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, nil, err
	}

	s, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open part store: %w", err)
	}
	if err := s.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize part store: %w", err)
	}

	db, err := database.NewDB(cfg.Storage.HistoryDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}

	sv := crossref.New(s, database.NewHistory(db), cfg.Engine)
	return sv, func() { db.Close() }, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcu-crossref %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
