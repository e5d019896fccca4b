package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/output"
)

var compareCmd = &cobra.Command{
	Use:   "compare <competitor-id> <candidate-id>",
	Short: "Score one of our parts against a competitor part",
	Long: `Score how well one of our parts substitutes for a competitor part.

Examples:
  mcucross compare 4 1          # Score our part 1 against competitor part 4
  mcucross compare 4 1 -o json  # Output as JSON`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	competitorID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid competitor id: %s", args[0])
	}
	candidateID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid candidate id: %s", args[1])
	}

	sv, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := sv.Compare(competitorID, candidateID)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, resp)
}
