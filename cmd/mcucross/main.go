package main

import (
	"os"

	"github.com/strivefit/mcu-crossref/internal/cli"
)

// Build-time variables set via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, buildTime)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
