package crossref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/match"
	"github.com/strivefit/mcu-crossref/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(s, database.NewHistory(db), config.Default().Engine)
}

func TestCompare(t *testing.T) {
	sv := newTestService(t)

	// STM32F407 (id 4) against our OCM4-120 (id 1)
	resp, err := sv.Compare(4, 1)
	require.NoError(t, err)

	assert.Equal(t, "STM32F407", resp.CompetitorName)
	assert.Equal(t, "OCM4-120", resp.CandidateName)
	assert.GreaterOrEqual(t, resp.Percentage, 0.0)
	assert.LessOrEqual(t, resp.Percentage, 100.0)
	assert.NotEmpty(t, resp.Category)
	assert.NotEmpty(t, resp.PerFeature)
}

func TestCompareUnknownPart(t *testing.T) {
	sv := newTestService(t)

	_, err := sv.Compare(999, 1)
	assert.Error(t, err)

	_, err = sv.Compare(4, 999)
	assert.Error(t, err)
}

func TestCompareIsRecorded(t *testing.T) {
	sv := newTestService(t)

	_, err := sv.Compare(4, 1)
	require.NoError(t, err)

	recent, err := sv.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "compare", recent[0].Kind)
	assert.Equal(t, "STM32F407", recent[0].CompetitorName)
}

func TestBestMatch(t *testing.T) {
	sv := newTestService(t)

	resp, err := sv.BestMatch(4)
	require.NoError(t, err)

	assert.Equal(t, "STM32F407", resp.CompetitorName)
	assert.NotEmpty(t, resp.CandidateName)
	assert.GreaterOrEqual(t, resp.Percentage, 0.0)
	assert.NotEmpty(t, resp.Category)

	// OCM7-400 is the only part covering every STM32F407 requirement
	assert.Equal(t, "OCM7-400", resp.CandidateName)
}

func TestBestMatchIsDeterministic(t *testing.T) {
	sv := newTestService(t)

	first, err := sv.BestMatch(4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		resp, err := sv.BestMatch(4)
		require.NoError(t, err)
		assert.Equal(t, first.CandidateID, resp.CandidateID)
		assert.Equal(t, first.Percentage, resp.Percentage)
	}
}

func TestCompareWithWeightOverridesBypassesAdjustment(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	cfg := config.Default().Engine
	cfg.Weights = map[string]float64{"max_clock_mhz": 0.5}
	sv := New(s, nil, cfg)

	// OCM7-400 (id 3) clocks well above the dynamic bump threshold; the
	// configured clock weight must be used as given, not rewritten.
	resp, err := sv.Compare(3, 1)
	require.NoError(t, err)

	competitor, err := s.MCUByID(3)
	require.NoError(t, err)
	candidate, err := s.MCUByID(1)
	require.NoError(t, err)

	table := match.DefaultWeights().WithOverrides(cfg.Weights)
	expected, _ := match.WeightedSimilarity(
		match.AttributeSet(competitor), match.AttributeSet(candidate), table)
	assert.InDelta(t, expected, resp.Percentage, 1e-9)

	adjusted, _ := match.WeightedSimilarity(
		match.AttributeSet(competitor), match.AttributeSet(candidate),
		match.AdjustedWeightsFrom(table, match.AttributeSet(competitor)))
	assert.NotEqual(t, adjusted, resp.Percentage,
		"overridden table must not pass through the clock adjustment")
}

func TestForCompetitor(t *testing.T) {
	sv := newTestService(t)

	_, err := sv.Compare(4, 1)
	require.NoError(t, err)
	_, err = sv.Compare(5, 1)
	require.NoError(t, err)

	runs, err := sv.ForCompetitor(4, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "STM32F407", runs[0].CompetitorName)

	runs, err = sv.ForCompetitor(999, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestBestMatchWithConfiguredThresholds(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	cfg := config.Default().Engine
	cfg.BestThreshold = 1
	cfg.PartialThreshold = 0.5
	sv := New(s, nil, cfg)

	resp, err := sv.BestMatch(4)
	require.NoError(t, err)
	assert.Equal(t, "Best Match", resp.Category)
}

func TestAddCompanyAndMCU(t *testing.T) {
	sv := newTestService(t)

	id, err := sv.AddCompany("GigaDevice")
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	_, err = sv.AddCompany("")
	assert.Error(t, err)

	mcuID, err := sv.AddMCU(id, map[string]any{"name": "GD32F103", "core": "ARM Cortex-M3"})
	require.NoError(t, err)
	assert.Greater(t, mcuID, 0)

	_, err = sv.AddMCU(id, map[string]any{"core": "nameless"})
	assert.Error(t, err)

	mcus, err := sv.MCUs(id)
	require.NoError(t, err)
	require.Len(t, mcus, 1)
	assert.Equal(t, "GD32F103", mcus[0].Name())
}
