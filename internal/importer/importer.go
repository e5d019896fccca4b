package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/strivefit/mcu-crossref/internal/catalog"
	"github.com/strivefit/mcu-crossref/internal/store"
)

// Importer loads competitor part lists from CSV/XLSX sheets into the store.
type Importer struct {
	store *store.Store
}

// New creates an importer over the given store.
func New(s *store.Store) *Importer {
	return &Importer{store: s}
}

// Summary reports the outcome of one import run.
type Summary struct {
	CompanyID int      `json:"company_id"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Names     []string `json:"names"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// normKey flattens a header or part name for flexible comparison.
func normKey(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// columnAliases maps normalized sheet headers to canonical attribute keys.
// Catalog keys and labels are accepted too (added in init below).
var columnAliases = map[string]string{
	"part":           "name",
	"partnumber":     "name",
	"partno":         "name",
	"competitorpart": "name",
	"mcu":            "name",
	"device":         "name",
	"architecture":   "core",
	"cpucore":        "core",
	"clock":          "max_clock_mhz",
	"clockmhz":       "max_clock_mhz",
	"maxclock":       "max_clock_mhz",
	"flash":          "flash_kb",
	"sram":           "sram_kb",
	"ram":            "sram_kb",
	"gpio":           "gpios",
	"uart":           "uarts",
	"spi":            "spis",
	"i2c":            "i2cs",
	"pwm":            "pwms",
	"timer":          "timers",
	"dac":            "dacs",
	"adc":            "adcs",
	"can":            "cans",
	"dsp":            "dsp_core",
	"isdsp":          "is_dsp",
	"isfpga":         "is_fpga",
}

func init() {
	for _, f := range catalog.Features() {
		columnAliases[normKey(f.Key)] = f.Key
		columnAliases[normKey(f.Label)] = f.Key
	}
	columnAliases[normKey("name")] = "name"
}

// ReadRows loads a sheet into header-keyed string maps. Format is chosen by
// file extension: .csv, or .xlsx/.xlsm via excelize.
func ReadRows(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open csv: %w", err)
		}
		defer f.Close()
		return readCSV(f)
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported sheet format: %s", filepath.Ext(path))
	}
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rowsToMaps(rows), nil
}

func readXLSX(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rowsToMaps(rows), nil
}

// rowsToMaps finds the header row (first row with a recognizable part-name
// column) and maps each following row by header.
func rowsToMaps(rows [][]string) []map[string]string {
	headerIdx := -1
	var header []string
	for i, row := range rows {
		for _, cell := range row {
			if columnAliases[normKey(cell)] == "name" {
				headerIdx = i
				header = row
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var out []map[string]string
	for _, row := range rows[headerIdx+1:] {
		m := make(map[string]string, len(header))
		empty := true
		for i, h := range header {
			if i >= len(row) {
				break
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				empty = false
			}
			m[strings.TrimSpace(h)] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// mapRow converts a header-keyed row into a store attribute map, coercing
// values by the catalog kind. Cells that fail coercion import as 0/empty,
// matching the engine's missing-key rule.
func mapRow(row map[string]string) map[string]any {
	attrs := make(map[string]any)
	for header, value := range row {
		key, ok := columnAliases[normKey(header)]
		if !ok {
			continue
		}
		if key == "name" || key == "is_dsp" || key == "is_fpga" || catalog.KindOf(key) == catalog.KindCategorical {
			if _, exists := attrs[key]; !exists || value != "" {
				attrs[key] = value
			}
			continue
		}
		attrs[key] = coerceNumeric(value)
	}
	return attrs
}

func coerceNumeric(value string) float64 {
	s := strings.ToLower(strings.TrimSpace(value))
	switch s {
	case "", "no", "false", "n", "off", "-":
		return 0
	case "yes", "true", "y", "on":
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ImportParts loads every row of a sheet as parts of the named company,
// creating the company if needed. Rows without a part name are skipped.
func (im *Importer) ImportParts(path, companyName string) (Summary, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return Summary{}, err
	}

	companyID, err := im.store.EnsureCompany(companyName, 0)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{CompanyID: companyID}
	for _, row := range rows {
		attrs := mapRow(row)
		name, _ := attrs["name"].(string)
		if name == "" {
			summary.Skipped++
			continue
		}
		if _, err := im.store.InsertMCU(companyID, attrs); err != nil {
			return summary, err
		}
		summary.Imported++
		summary.Names = append(summary.Names, name)
	}
	return summary, nil
}
