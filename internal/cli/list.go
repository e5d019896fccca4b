package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list [company-id]",
	Short: "List companies or the parts of one company",
	Long: `List companies, or the parts of one company when an id is given.

Examples:
  mcucross list                    # List all companies
  mcucross list --search=stm       # Filter companies by name
  mcucross list 2                  # List the parts of company 2
  mcucross list 2 -o json          # Output as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listSearch string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter companies by name substring")
}

func runList(cmd *cobra.Command, args []string) error {
	sv, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) == 0 {
		companies, err := sv.Companies(listSearch)
		if err != nil {
			return err
		}
		return output.Output(outputFmt, companies)
	}

	companyID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid company id: %s", args[0])
	}

	mcus, err := sv.MCUs(companyID)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, mcus)
}
