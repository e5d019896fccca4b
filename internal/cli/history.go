package cli

import (
	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent comparisons",
	Long: `Show the most recent recorded comparisons and best-match runs.

Examples:
  mcucross history
  mcucross history --limit=50 -o json
  mcucross history --competitor=4   # Runs recorded against one part`,
	RunE: runHistory,
}

var (
	historyLimit      int
	historyCompetitor int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries")
	historyCmd.Flags().IntVar(&historyCompetitor, "competitor", 0, "Only runs against this competitor part id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	sv, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	var comparisons []database.Comparison
	if historyCompetitor > 0 {
		comparisons, err = sv.ForCompetitor(historyCompetitor, historyLimit)
	} else {
		comparisons, err = sv.Recent(historyLimit)
	}
	if err != nil {
		return err
	}
	return output.Output(outputFmt, comparisons)
}
