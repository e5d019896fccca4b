package cli

import (
	"github.com/spf13/cobra"

	"github.com/strivefit/mcu-crossref/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import <sheet>",
	Short: "Import competitor parts from a CSV or XLSX sheet",
	Long: `Import competitor parts from a spreadsheet. The header row is
detected automatically; columns map to catalog features by name.

Examples:
  mcucross import parts.xlsx --company=GigaDevice
  mcucross import parts.csv --company=GigaDevice -o json
  mcucross import parts.xlsx --check   # Only report coverage, import nothing`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importCompany string
	importCheck   bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importCompany, "company", "", "Company the parts belong to")
	importCmd.Flags().BoolVar(&importCheck, "check", false, "Report which parts already exist instead of importing")
}

func runImport(cmd *cobra.Command, args []string) error {
	sv, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	if importCheck {
		cov, err := sv.CheckCoverage(args[0])
		if err != nil {
			return err
		}
		return output.Output(outputFmt, cov)
	}

	summary, err := sv.ImportParts(args[0], importCompany)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, summary)
}
