package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/importer"
	"github.com/strivefit/mcu-crossref/internal/types"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []types.Company:
		return companiesTable(w, v)
	case []types.MCU:
		return mcusTable(w, v)
	case *types.MatchResponse:
		return matchDetail(w, v)
	case []database.Comparison:
		return historyTable(w, v)
	case importer.Summary:
		return importSummary(w, v)
	case importer.Coverage:
		return coverageDetail(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func companiesTable(w io.Writer, companies []types.Company) error {
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies found.")
		return nil
	}

	tw := tablewriter.NewTable(w)
	tw.Header([]string{"ID", "NAME", "OURS"})
	for _, c := range companies {
		ours := ""
		if c.IsOurs != 0 {
			ours = "yes"
		}
		if err := tw.Append([]string{strconv.Itoa(c.ID), c.Name, ours}); err != nil {
			return err
		}
	}
	return tw.Render()
}

func mcusTable(w io.Writer, mcus []types.MCU) error {
	if len(mcus) == 0 {
		fmt.Fprintln(w, "No parts found.")
		return nil
	}

	tw := tablewriter.NewTable(w)
	tw.Header([]string{"ID", "NAME", "CORE", "CLOCK MHZ", "FLASH KB", "SRAM KB"})
	for _, m := range mcus {
		row := []string{
			strconv.Itoa(m.ID()),
			m.Name(),
			attrString(m["core"]),
			attrString(m["max_clock_mhz"]),
			attrString(m["flash_kb"]),
			attrString(m["sram_kb"]),
		}
		if err := tw.Append(row); err != nil {
			return err
		}
	}
	return tw.Render()
}

func matchDetail(w io.Writer, r *types.MatchResponse) error {
	fmt.Fprintf(w, "Competitor:  %s (id %d)\n", r.CompetitorName, r.CompetitorID)
	if r.CandidateName != "" {
		fmt.Fprintf(w, "Candidate:   %s (id %d)\n", r.CandidateName, r.CandidateID)
	} else {
		fmt.Fprintln(w, "Candidate:   (none)")
	}
	fmt.Fprintf(w, "Score:       %.2f%%\n", r.Percentage)
	fmt.Fprintf(w, "Category:    %s\n", r.Category)

	if len(r.PerFeature) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tablewriter.NewTable(w)
	tw.Header([]string{"FEATURE", "SIMILARITY"})

	keys := make([]string, 0, len(r.PerFeature))
	for k := range r.PerFeature {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := tw.Append([]string{k, fmt.Sprintf("%.3f", r.PerFeature[k])}); err != nil {
			return err
		}
	}
	return tw.Render()
}

func historyTable(w io.Writer, comparisons []database.Comparison) error {
	if len(comparisons) == 0 {
		fmt.Fprintln(w, "No comparison history.")
		return nil
	}

	tw := tablewriter.NewTable(w)
	tw.Header([]string{"WHEN", "KIND", "COMPETITOR", "CANDIDATE", "SCORE", "CATEGORY"})
	for _, c := range comparisons {
		row := []string{
			c.CreatedAt.Format("2006-01-02 15:04"),
			c.Kind,
			c.CompetitorName,
			c.CandidateName,
			fmt.Sprintf("%.2f", c.Percentage),
			c.Category,
		}
		if err := tw.Append(row); err != nil {
			return err
		}
	}
	return tw.Render()
}

func importSummary(w io.Writer, s importer.Summary) error {
	fmt.Fprintf(w, "Imported %d parts into company %d (%d rows skipped)\n", s.Imported, s.CompanyID, s.Skipped)
	if len(s.Names) > 0 {
		fmt.Fprintf(w, "Parts: %s\n", strings.Join(s.Names, ", "))
	}
	return nil
}

func coverageDetail(w io.Writer, c importer.Coverage) error {
	fmt.Fprintf(w, "Present (%d):\n", len(c.Present))
	for _, name := range c.Present {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "Missing (%d):\n", len(c.Missing))
	for _, name := range c.Missing {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func attrString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
