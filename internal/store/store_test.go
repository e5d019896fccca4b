package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivefit/mcu-crossref/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	return s
}

func TestInitializeSeedsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	companies, err := s.ListCompanies("")
	require.NoError(t, err)
	require.NotEmpty(t, companies)

	assert.Equal(t, 1, companies[0].IsOurs, "our company sorts first")
	assert.Equal(t, "Our Company", companies[0].Name)

	ours, err := s.OurMCUs()
	require.NoError(t, err)
	assert.Len(t, ours, 3)
	// sorted by name for deterministic best-match ordering
	assert.Equal(t, "OCM0-48", ours[0].Name())
	assert.Equal(t, "OCM4-120", ours[1].Name())
	assert.Equal(t, "OCM7-400", ours[2].Name())
}

func TestInitializeIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	id, err := s.InsertMCU(2, map[string]any{"name": "STM32H743", "core": "ARM Cortex-M7"})
	require.NoError(t, err)

	// Re-opening and re-initializing must not reseed over existing data.
	s2, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s2.Initialize())

	m, err := s2.MCUByID(id)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "STM32H743", m.Name())
}

func TestListCompaniesSearch(t *testing.T) {
	s := newTestStore(t)

	companies, err := s.ListCompanies("micro")
	require.NoError(t, err)
	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"STMicroelectronics", "Microchip"}, names)
}

func TestEnsureCompany(t *testing.T) {
	s := newTestStore(t)

	id, err := s.EnsureCompany("Espressif", 0)
	require.NoError(t, err)
	assert.Greater(t, id, 8)

	// same name returns the same id
	again, err := s.EnsureCompany("Espressif", 0)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestInsertMCUFillsMissingColumns(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertMCU(3, map[string]any{"name": "i.MX RT1060", "core": "ARM Cortex-M7", "max_clock_mhz": 600})
	require.NoError(t, err)

	m, err := s.MCUByID(id)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "ARM Cortex-M7", m["core"])
	assert.EqualValues(t, 600, m["max_clock_mhz"])
	assert.EqualValues(t, 0, m["gpios"], "missing count columns default to 0")
	assert.EqualValues(t, 3, m.CompanyID())
}

func TestMCUByIDMissing(t *testing.T) {
	s := newTestStore(t)

	m, err := s.MCUByID(99999)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLegacyMigration(t *testing.T) {
	dir := t.TempDir()

	legacy := map[string]any{
		"companies": []types.Company{
			{ID: 1, Name: "Our Company", IsOurs: 1},
			{ID: 2, Name: "LegacyVendor"},
		},
		"mcus": []map[string]any{
			{"id": 1, "company_id": 1, "name": "OLD-1", "core": "AVR"},
			{"id": 2, "company_id": 2, "name": "OLD-2", "core": "PIC"},
		},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.json"), data, 0644))

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	companies, err := s.ListCompanies("")
	require.NoError(t, err)
	assert.Len(t, companies, 2, "legacy companies survive, no reseed")

	m, err := s.MCUByID(2)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "OLD-2", m.Name())
	assert.FileExists(t, filepath.Join(dir, "mcus_company_2.json"))
}
