package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		expected   string
	}{
		{name: "perfect score", percentage: 100.0, expected: "Best Match"},
		{name: "boundary 80", percentage: 80.0, expected: "Best Match"},
		{name: "just below 80", percentage: 79.99, expected: "Partial"},
		{name: "boundary 65", percentage: 65.0, expected: "Partial"},
		{name: "just below 65", percentage: 64.99, expected: "No Match"},
		{name: "zero", percentage: 0.0, expected: "No Match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.percentage))
		})
	}
}

func TestWeightedSimilarity_EquivalentParts(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 100}
	candidate := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 150}

	pct, perFeature := WeightedSimilarity(competitor, candidate, nil)

	// Every required feature is fully covered and unstated requirements are
	// free, so the overall match is 100%.
	assert.InDelta(t, 100.0, pct, 1e-9)
	assert.Equal(t, 1.0, perFeature["core"])
	assert.Equal(t, 1.0, perFeature["fpu"])
	assert.Equal(t, 1.0, perFeature["max_clock_mhz"])
	assert.Equal(t, "Best Match", Categorize(pct))
}

func TestWeightedSimilarity_DynamicClockBump(t *testing.T) {
	competitor := AttributeSet{"max_clock_mhz": 400}
	candidate := AttributeSet{"max_clock_mhz": 200}

	_, perFeature := WeightedSimilarity(competitor, candidate, nil)
	assert.Equal(t, 0.5, perFeature["max_clock_mhz"])

	// The clock shortfall must cost more under the bumped weight than it
	// would under an explicit default table.
	bumpedPct, _ := WeightedSimilarity(competitor, candidate, nil)
	defaultPct, _ := WeightedSimilarity(competitor, candidate, DefaultWeights())
	assert.Less(t, bumpedPct, defaultPct)
}

func TestWeightedSimilarity_FPGADisqualification(t *testing.T) {
	candidate := AttributeSet{
		"core": "ARM Cortex-M7", "fpu": 2, "max_clock_mhz": 480,
		"flash_kb": 2048, "sram_kb": 1024,
	}

	tests := []struct {
		name       string
		competitor AttributeSet
	}{
		{
			name:       "fpga in core string",
			competitor: AttributeSet{"core": "XC7A200T-FPGA"},
		},
		{
			name:       "fpga mixed case",
			competitor: AttributeSet{"core": "Artix-7 Fpga"},
		},
		{
			name:       "explicit numeric flag",
			competitor: AttributeSet{"core": "ARM Cortex-M4", "is_fpga": 1},
		},
		{
			name:       "explicit string flag",
			competitor: AttributeSet{"core": "ARM Cortex-M4", "is_fpga": "yes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, perFeature := WeightedSimilarity(tt.competitor, candidate, nil)
			assert.Equal(t, 0.0, pct)
			require.NotEmpty(t, perFeature)
			for key, s := range perFeature {
				assert.Equal(t, 0.0, s, "feature %s", key)
			}
		})
	}
}

func TestWeightedSimilarity_DSPPenalty(t *testing.T) {
	base := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 100}
	candidate := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 150}

	basePct, _ := WeightedSimilarity(base, candidate, nil)

	flagged := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 100, "is_dsp": "true"}
	penalizedPct, _ := WeightedSimilarity(flagged, candidate, nil)

	assert.InDelta(t, basePct-20.0, penalizedPct, 1e-9)
}

func TestWeightedSimilarity_DSPPenaltyFloorsAtZero(t *testing.T) {
	competitor := AttributeSet{"core": "SHARC", "is_dsp": 1, "fpu": 2, "max_clock_mhz": 500,
		"flash_kb": 4096, "sram_kb": 1024, "gpios": 200, "uarts": 8, "spis": 8, "i2cs": 8,
		"pwms": 32, "timers": 32, "dacs": 8, "adcs": 8, "cans": 4, "ethernet": 1}
	candidate := AttributeSet{"core": "ARM Cortex-M0"}

	pct, _ := WeightedSimilarity(competitor, candidate, nil)
	assert.GreaterOrEqual(t, pct, 0.0)
}

func TestWeightedSimilarity_DSPAlias(t *testing.T) {
	// dsp_core may arrive under the legacy DSP key on either side.
	competitor := AttributeSet{"DSP": 1}
	candidate := AttributeSet{"dsp_core": 1}

	_, perFeature := WeightedSimilarity(competitor, candidate, nil)
	assert.Equal(t, 1.0, perFeature["dsp_core"])

	short := AttributeSet{"DSP": 0}
	_, perFeature = WeightedSimilarity(competitor, short, nil)
	assert.Equal(t, 0.0, perFeature["dsp_core"])
}

func TestWeightedSimilarity_DegenerateWeights(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M4"}
	candidate := AttributeSet{"core": "ARM Cortex-M4"}

	pct, perFeature := WeightedSimilarity(competitor, candidate, Weights{"core": 0.0})
	assert.Equal(t, 0.0, pct)
	assert.Equal(t, 1.0, perFeature["core"], "per-feature scores are still reported")
}

func TestWeightedSimilarity_RangeInvariant(t *testing.T) {
	sets := []AttributeSet{
		{},
		{"core": "ARM Cortex-M4", "fpu": 2, "max_clock_mhz": 600, "flash_kb": 8192},
		{"core": "AVR", "uarts": "not-a-number", "gpios": -5},
		{"core": "PIC", "is_dsp": 1},
		{"is_fpga": "on"},
	}

	for _, comp := range sets {
		for _, cand := range sets {
			pct, perFeature := WeightedSimilarity(comp, cand, nil)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
			for key, s := range perFeature {
				assert.GreaterOrEqual(t, s, 0.0, "feature %s", key)
				assert.LessOrEqual(t, s, 1.0, "feature %s", key)
			}
		}
	}
}

func TestWeightedSimilarity_Idempotent(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M7", "fpu": 2, "max_clock_mhz": 360,
		"flash_kb": 2048, "sram_kb": 512, "uarts": 6, "timers": 14}
	candidate := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 120,
		"flash_kb": 512, "sram_kb": 128, "uarts": 4, "timers": 8}

	firstPct, firstPF := WeightedSimilarity(competitor, candidate, nil)
	for i := 0; i < 50; i++ {
		pct, pf := WeightedSimilarity(competitor, candidate, nil)
		assert.Equal(t, firstPct, pct, "iteration %d", i)
		assert.Equal(t, firstPF, pf, "iteration %d", i)
	}
}

func TestBestMatch(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 168,
		"flash_kb": 1024, "sram_kb": 192}

	weak := AttributeSet{"name": "OCM0-48", "core": "ARM Cortex-M0+", "max_clock_mhz": 48,
		"flash_kb": 128, "sram_kb": 32}
	strong := AttributeSet{"name": "OCM7-400", "core": "ARM Cortex-M7", "fpu": 1,
		"max_clock_mhz": 400, "flash_kb": 2048, "sram_kb": 512}

	best, score, perFeature := BestMatch(competitor, []AttributeSet{weak, strong}, nil)
	require.NotNil(t, best)
	assert.Equal(t, "OCM7-400", best["name"])
	assert.Greater(t, score, 0.0)
	assert.NotEmpty(t, perFeature)

	// Scores must agree with scoring the winner directly.
	direct, _ := WeightedSimilarity(competitor, strong, nil)
	assert.Equal(t, direct, score)
}

func TestBestMatch_FirstWinsOnTie(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1}
	first := AttributeSet{"name": "first", "core": "ARM Cortex-M4", "fpu": 1}
	second := AttributeSet{"name": "second", "core": "ARM Cortex-M4", "fpu": 1}

	best, _, _ := BestMatch(competitor, []AttributeSet{first, second}, nil)
	require.NotNil(t, best)
	assert.Equal(t, "first", best["name"])
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	best, score, perFeature := BestMatch(AttributeSet{"core": "AVR"}, nil, nil)
	assert.Nil(t, best)
	assert.Equal(t, -1.0, score)
	assert.Empty(t, perFeature)
}

func TestBestMatch_SingleZeroScoringCandidateStillSelected(t *testing.T) {
	// A genuine 0.0 match is distinguishable from the empty-list sentinel.
	competitor := AttributeSet{"core": "XC7A200T-FPGA"}
	only := AttributeSet{"name": "only", "core": "ARM Cortex-M4"}

	best, score, _ := BestMatch(competitor, []AttributeSet{only}, nil)
	require.NotNil(t, best)
	assert.Equal(t, 0.0, score)
}

func TestCompare(t *testing.T) {
	competitor := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 100}
	candidate := AttributeSet{"core": "ARM Cortex-M4", "fpu": 1, "max_clock_mhz": 150}

	res := Compare(competitor, candidate, nil)
	assert.InDelta(t, 100.0, res.Percentage, 1e-9)
	assert.Equal(t, "Best Match", res.Category)
	assert.Equal(t, 1.0, res.PerFeature["core"])
}
