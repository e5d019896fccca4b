package match

import (
	"strings"

	"github.com/strivefit/mcu-crossref/internal/catalog"
)

// Flat deduction applied when the competitor is flagged as a DSP: DSP-class
// requirements carry software/tooling risk the attribute table cannot see.
const dspPenaltyPoints = 20.0

const (
	fpgaFlagKey = "is_fpga"
	dspFlagKey  = "is_dsp"
	coreKey     = "core"
)

// category thresholds, descending; the final 0.0 entry guarantees a label.
var categories = []struct {
	Threshold float64
	Label     string
}{
	{80.0, "Best Match"},
	{65.0, "Partial"},
	{0.0, "No Match"},
}

// Categorize maps an overall percentage to its discrete match label.
func Categorize(percentage float64) string {
	for _, c := range categories {
		if percentage >= c.Threshold {
			return c.Label
		}
	}
	return categories[len(categories)-1].Label
}

// CategorizeWith maps a percentage to a label using custom thresholds.
// Callers must pass best >= partial.
func CategorizeWith(percentage, best, partial float64) string {
	switch {
	case percentage >= best:
		return categories[0].Label
	case percentage >= partial:
		return categories[1].Label
	default:
		return categories[2].Label
	}
}

// lookup resolves a feature value honoring catalog aliases: the exact key
// wins, then aliases in declaration order.
func lookup(attrs AttributeSet, key string) any {
	if v, ok := attrs[key]; ok {
		return v
	}
	for _, alias := range catalog.Aliases(key) {
		if v, ok := attrs[alias]; ok {
			return v
		}
	}
	return nil
}

// isFPGA reports whether the competitor part is an FPGA: either the explicit
// flag is truthy or the core name mentions fpga.
func isFPGA(competitor AttributeSet) bool {
	if flag, ok := toBool(competitor[fpgaFlagKey]); ok && flag {
		return true
	}
	core := stringValue(competitor[coreKey])
	return strings.Contains(strings.ToLower(core), "fpga")
}

// isDSP reports whether the competitor carries a truthy DSP flag. Unparsable
// encodings count as false; the penalty is opt-in.
func isDSP(competitor AttributeSet) bool {
	flag, ok := toBool(competitor[dspFlagKey])
	return ok && flag
}

// WeightedSimilarity scores how well the candidate substitutes for the
// competitor. A nil weight table selects the dynamically adjusted default
// derived from the competitor's clock requirement; an explicit table is
// used as given (normalized by its own total during aggregation).
//
// Pure and deterministic: no shared state is read or written, so concurrent
// calls need no synchronization.
func WeightedSimilarity(competitor, candidate AttributeSet, weights Weights) (float64, map[string]float64) {
	if weights == nil {
		weights = AdjustedWeights(competitor)
	}

	// An FPGA can never be substituted by an MCU; short-circuit before any
	// weighted computation.
	if isFPGA(competitor) {
		perFeature := make(map[string]float64, len(weights))
		for k := range weights {
			perFeature[k] = 0.0
		}
		return 0.0, perFeature
	}

	totalWeight := weights.Total()
	score := 0.0
	perFeature := make(map[string]float64, len(weights))
	for _, key := range weights.sortedKeys() {
		s := FeatureSimilarity(key, lookup(competitor, key), lookup(candidate, key))
		perFeature[key] = s
		score += weights[key] * s
	}

	if totalWeight <= 0 {
		return 0.0, perFeature
	}

	percentage := (score / totalWeight) * 100.0
	if isDSP(competitor) {
		percentage -= dspPenaltyPoints
		if percentage < 0 {
			percentage = 0.0
		}
	}
	return percentage, perFeature
}

// Compare scores a pair and bundles the category label.
func Compare(competitor, candidate AttributeSet, weights Weights) Result {
	pct, perFeature := WeightedSimilarity(competitor, candidate, weights)
	return Result{
		Percentage: pct,
		Category:   Categorize(pct),
		PerFeature: perFeature,
	}
}

// BestMatch scores every candidate against the competitor and returns the
// highest-scoring one. Ties resolve to the first-encountered candidate, so
// callers wanting stable tie-breaks must order candidates deterministically.
// An empty candidate list returns (nil, -1, {}): the sentinel score is
// distinguishable from a legitimate 0.0 match.
func BestMatch(competitor AttributeSet, candidates []AttributeSet, weights Weights) (AttributeSet, float64, map[string]float64) {
	var best AttributeSet
	bestScore := -1.0
	bestPerFeature := map[string]float64{}
	for _, c := range candidates {
		s, pf := WeightedSimilarity(competitor, c, weights)
		if s > bestScore {
			best = c
			bestScore = s
			bestPerFeature = pf
		}
	}
	return best, bestScore, bestPerFeature
}
