package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/output"
)

var bestCmd = &cobra.Command{
	Use:   "best <competitor-id>",
	Short: "Find the best of our parts for a competitor part",
	Long: `Score every one of our parts against a competitor part and print
the best substitute.

Examples:
  mcucross best 4          # Best substitute for competitor part 4
  mcucross best 4 -o json  # Output as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runBest,
}

func init() {
	rootCmd.AddCommand(bestCmd)
}

func runBest(cmd *cobra.Command, args []string) error {
	competitorID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid competitor id: %s", args[0])
	}

	sv, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := sv.BestMatch(competitorID)
	if err != nil {
		return err
	}

	if resp.CandidateName == "" {
		fmt.Println("No parts of our own to match against.")
		return nil
	}

	return output.Output(outputFmt, resp)
}
