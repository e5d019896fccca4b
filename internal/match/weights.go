package match

import (
	"math"
	"sort"
)

const clockKey = "max_clock_mhz"

// Clock-weight bump applied when the competitor itself targets high clock
// speeds; headroom becomes disproportionately decisive for substitution.
const (
	fastClockMHz      = 300.0
	mediumClockMHz    = 200.0
	fastClockWeight   = 0.20
	mediumClockWeight = 0.15
)

// defaultWeights holds the base importance of each feature. Raw values need
// not sum to 1; the effective table is normalized before scoring. Never
// mutated: callers always receive a copy.
var defaultWeights = Weights{
	"core":              0.0,
	"core_mark":         0.0,
	"dsp_core":          0.02,
	"fpu":               0.15,
	"max_clock_mhz":     0.10,
	"flash_kb":          0.05,
	"sram_kb":           0.05,
	"eeprom":            0.01,
	"gpios":             0.05,
	"uarts":             0.05,
	"spis":              0.05,
	"i2cs":              0.05,
	"pwms":              0.05,
	"timers":            0.05,
	"dacs":              0.02,
	"adcs":              0.03,
	"cans":              0.03,
	"power_mgmt":        0.03,
	"clock_mgmt":        0.03,
	"qei":               0.04,
	"internal_osc":      0.04,
	"security_features": 0.05,
	"output_compare":    0.02,
	"input_capture":     0.02,
	"qspi":              0.03,
	"ethernet":          0.04,
	"emif":              0.03,
	"spi_slave":         0.02,
	"ext_interrupts":    0.03,
}

// DefaultWeights returns a fresh copy of the base weight table.
func DefaultWeights() Weights {
	w := make(Weights, len(defaultWeights))
	for k, v := range defaultWeights {
		w[k] = v
	}
	return w
}

// WithOverrides returns a copy of w with the given raw weights replacing
// the base values. Keys absent from overrides keep their value in w.
func (w Weights) WithOverrides(overrides map[string]float64) Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// AdjustedWeights derives the effective weight table for a competitor part
// from the default table. See AdjustedWeightsFrom.
func AdjustedWeights(competitor AttributeSet) Weights {
	return AdjustedWeightsFrom(DefaultWeights(), competitor)
}

// AdjustedWeightsFrom derives the effective weight table for a competitor
// part from the given base table. The clock weight is raised from the
// competitor's own clock requirement (>300 MHz -> 0.20, >200 MHz -> 0.15);
// all other weights are scaled down so the pre-normalization total is
// preserved, then the table is normalized to sum to 1.0. The base table
// itself is never touched.
func AdjustedWeightsFrom(base Weights, competitor AttributeSet) Weights {
	w := make(Weights, len(base))
	for k, v := range base {
		w[k] = v
	}

	reqClock, ok := toFloat(competitor[clockKey])
	if !ok {
		reqClock = 0
	}

	target := w[clockKey]
	switch {
	case reqClock > fastClockMHz:
		target = fastClockWeight
	case reqClock > mediumClockMHz:
		target = mediumClockWeight
	}

	if math.Abs(target-w[clockKey]) > 1e-9 {
		total := w.Total()
		remaining := total - w[clockKey]
		scale := 1.0
		if remaining > 0 {
			scale = (total - target) / remaining
		}
		for k, v := range w {
			if k == clockKey {
				w[k] = target
			} else {
				w[k] = v * scale
			}
		}
	}

	return w.Normalized()
}

// sortedKeys returns the table's keys in lexical order. Accumulating in a
// fixed order keeps repeated computations bit-identical; map iteration order
// would perturb the low bits of floating-point sums between calls.
func (w Weights) sortedKeys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	total := 0.0
	for _, k := range w.sortedKeys() {
		total += w[k]
	}
	return total
}

// Normalized returns a copy of w scaled so its sum is 1.0. Tables with a
// non-positive total are returned unscaled; the matcher guards against them.
func (w Weights) Normalized() Weights {
	out := make(Weights, len(w))
	total := w.Total()
	for k, v := range w {
		if total > 0 {
			out[k] = v / total
		} else {
			out[k] = v
		}
	}
	return out
}
