package importer

// Coverage reports which part names from a sheet are already present in the
// store and which are missing. Names compare case-insensitively with
// punctuation stripped.
type Coverage struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// CheckCoverage reads the part names from a sheet and checks each against
// the full set of stored parts.
func (im *Importer) CheckCoverage(path string) (Coverage, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return Coverage{}, err
	}

	stored, err := im.store.AllMCUs()
	if err != nil {
		return Coverage{}, err
	}
	known := make(map[string]bool, len(stored))
	for _, m := range stored {
		known[normKey(m.Name())] = true
	}

	var cov Coverage
	seen := make(map[string]bool)
	for _, row := range rows {
		attrs := mapRow(row)
		name, _ := attrs["name"].(string)
		if name == "" || seen[normKey(name)] {
			continue
		}
		seen[normKey(name)] = true
		if known[normKey(name)] {
			cov.Present = append(cov.Present, name)
		} else {
			cov.Missing = append(cov.Missing, name)
		}
	}
	return cov, nil
}
