package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/strivefit/mcu-crossref/internal/catalog"
	"github.com/strivefit/mcu-crossref/internal/types"
)

// Store is the flat-file attribute store: a companies.json index plus one
// mcus_company_{id}.json shard per vendor under a data directory. The engine
// never touches these files; it consumes the accessors below.
type Store struct {
	mu      sync.RWMutex
	dataDir string
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

func (s *Store) companiesFile() string {
	return filepath.Join(s.dataDir, "companies.json")
}

func (s *Store) mcusFile(companyID int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("mcus_company_%d.json", companyID))
}

func (s *Store) legacyFile() string {
	return filepath.Join(s.dataDir, "app.json")
}

// Initialize migrates any legacy single-file database and seeds the store if
// it is still empty.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.migrateLegacy(); err != nil {
		return err
	}

	companies, err := s.loadCompanies()
	if err != nil {
		return err
	}
	if len(companies) > 0 {
		return nil
	}
	return s.seed()
}

// migrateLegacy splits a legacy app.json (companies + mcus in one document)
// into the sharded layout. A no-op when companies.json already exists.
func (s *Store) migrateLegacy() error {
	if _, err := os.Stat(s.companiesFile()); err == nil {
		return nil
	}
	data, err := os.ReadFile(s.legacyFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read legacy database: %w", err)
	}

	var legacy struct {
		Companies []types.Company `json:"companies"`
		MCUs      []types.MCU     `json:"mcus"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		// Corrupt legacy file: leave it alone and start fresh.
		return nil
	}

	if err := s.saveCompanies(legacy.Companies); err != nil {
		return err
	}
	byCompany := make(map[int][]types.MCU)
	for _, m := range legacy.MCUs {
		byCompany[m.CompanyID()] = append(byCompany[m.CompanyID()], m)
	}
	for cid, items := range byCompany {
		if err := s.saveMCUs(cid, items); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadCompanies() ([]types.Company, error) {
	data, err := os.ReadFile(s.companiesFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	var companies []types.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}
	return companies, nil
}

func (s *Store) saveCompanies(companies []types.Company) error {
	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode companies: %w", err)
	}
	if err := os.WriteFile(s.companiesFile(), data, 0644); err != nil {
		return fmt.Errorf("failed to write companies: %w", err)
	}
	return nil
}

func (s *Store) loadMCUs(companyID int) ([]types.MCU, error) {
	data, err := os.ReadFile(s.mcusFile(companyID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read mcus for company %d: %w", companyID, err)
	}
	var mcus []types.MCU
	if err := json.Unmarshal(data, &mcus); err != nil {
		return nil, fmt.Errorf("failed to decode mcus for company %d: %w", companyID, err)
	}
	return mcus, nil
}

func (s *Store) saveMCUs(companyID int, mcus []types.MCU) error {
	data, err := json.MarshalIndent(mcus, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mcus: %w", err)
	}
	if err := os.WriteFile(s.mcusFile(companyID), data, 0644); err != nil {
		return fmt.Errorf("failed to write mcus for company %d: %w", companyID, err)
	}
	return nil
}

// ListCompanies returns companies with ours first, then by name, optionally
// filtered by a case-insensitive substring.
func (s *Store) ListCompanies(search string) ([]types.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies, err := s.loadCompanies()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(companies, func(i, j int) bool {
		if (companies[i].IsOurs == 1) != (companies[j].IsOurs == 1) {
			return companies[i].IsOurs == 1
		}
		return companies[i].Name < companies[j].Name
	})
	if search == "" {
		return companies, nil
	}
	needle := strings.ToLower(search)
	filtered := companies[:0:0]
	for _, c := range companies {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// OurCompanyID returns the id of the in-house company.
func (s *Store) OurCompanyID() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies, err := s.loadCompanies()
	if err != nil {
		return 0, err
	}
	for _, c := range companies {
		if c.IsOurs == 1 {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("our company not found in store")
}

// EnsureCompany returns the id of the named company, creating it if absent.
func (s *Store) EnsureCompany(name string, isOurs int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.loadCompanies()
	if err != nil {
		return 0, err
	}
	for _, c := range companies {
		if c.Name == name {
			return c.ID, nil
		}
	}
	newID := 0
	for _, c := range companies {
		if c.ID > newID {
			newID = c.ID
		}
	}
	newID++
	companies = append(companies, types.Company{ID: newID, Name: name, IsOurs: isOurs})
	if err := s.saveCompanies(companies); err != nil {
		return 0, err
	}
	if _, err := os.Stat(s.mcusFile(newID)); os.IsNotExist(err) {
		if err := s.saveMCUs(newID, []types.MCU{}); err != nil {
			return 0, err
		}
	}
	return newID, nil
}

// MCUsByCompany returns one vendor's parts sorted by name.
func (s *Store) MCUsByCompany(companyID int) ([]types.MCU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mcusByCompanyLocked(companyID)
}

func (s *Store) mcusByCompanyLocked(companyID int) ([]types.MCU, error) {
	mcus, err := s.loadMCUs(companyID)
	if err != nil {
		return nil, err
	}
	filtered := mcus[:0:0]
	for _, m := range mcus {
		if m.CompanyID() == companyID {
			filtered = append(filtered, m)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Name() < filtered[j].Name()
	})
	return filtered, nil
}

// MCUByID searches every shard for a part id. Returns nil when absent.
func (s *Store) MCUByID(mcuID int) (types.MCU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies, err := s.loadCompanies()
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		mcus, err := s.loadMCUs(c.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range mcus {
			if m.ID() == mcuID {
				return m, nil
			}
		}
	}
	return nil, nil
}

// OurMCUs returns the in-house candidate pool sorted by name, so best-match
// tie-breaks stay deterministic.
func (s *Store) OurMCUs() ([]types.MCU, error) {
	ourID, err := s.OurCompanyID()
	if err != nil {
		return nil, err
	}
	return s.MCUsByCompany(ourID)
}

// AllMCUs returns every part across all vendors.
func (s *Store) AllMCUs() ([]types.MCU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allMCUsLocked()
}

func (s *Store) allMCUsLocked() ([]types.MCU, error) {
	companies, err := s.loadCompanies()
	if err != nil {
		return nil, err
	}
	var all []types.MCU
	for _, c := range companies {
		mcus, err := s.loadMCUs(c.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, mcus...)
	}
	return all, nil
}

// InsertMCU appends a part to a vendor's shard, assigning the next global id.
// Missing feature columns default to 0 (or empty for text), matching the
// engine's missing-key rule.
func (s *Store) InsertMCU(companyID int, attrs map[string]any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.allMCUsLocked()
	if err != nil {
		return 0, err
	}
	newID := 0
	for _, m := range all {
		if m.ID() > newID {
			newID = m.ID()
		}
	}
	newID++

	record := types.MCU{
		"id":         newID,
		"company_id": companyID,
	}
	if name, ok := attrs["name"].(string); ok {
		record["name"] = name
	} else {
		record["name"] = ""
	}
	for _, f := range catalog.Features() {
		if v, ok := attrs[f.Key]; ok {
			record[f.Key] = v
			continue
		}
		if f.Kind == catalog.KindCategorical {
			record[f.Key] = ""
		} else {
			record[f.Key] = 0
		}
	}
	// Disqualification flags are kept when supplied; most parts omit them.
	for _, key := range []string{"is_dsp", "is_fpga"} {
		if v, ok := attrs[key]; ok {
			record[key] = v
		}
	}

	mcus, err := s.loadMCUs(companyID)
	if err != nil {
		return 0, err
	}
	mcus = append(mcus, record)
	if err := s.saveMCUs(companyID, mcus); err != nil {
		return 0, err
	}
	return newID, nil
}
