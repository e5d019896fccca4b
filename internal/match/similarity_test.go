package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverage(t *testing.T) {
	tests := []struct {
		name        string
		requirement float64
		offer       float64
		expected    float64
	}{
		{
			name:        "zero requirement is fully satisfied",
			requirement: 0,
			offer:       0,
			expected:    1.0,
		},
		{
			name:        "zero requirement with positive offer",
			requirement: 0,
			offer:       42,
			expected:    1.0,
		},
		{
			name:        "negative requirement treated as unstated",
			requirement: -1,
			offer:       0,
			expected:    1.0,
		},
		{
			name:        "positive requirement with zero offer",
			requirement: 100,
			offer:       0,
			expected:    0.0,
		},
		{
			name:        "offer meets requirement exactly",
			requirement: 100,
			offer:       100,
			expected:    1.0,
		},
		{
			name:        "offer exceeds requirement without bonus",
			requirement: 100,
			offer:       400,
			expected:    1.0,
		},
		{
			name:        "offer falls short proportionally",
			requirement: 400,
			offer:       200,
			expected:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coverage(tt.requirement, tt.offer))
		})
	}
}

func TestCoverageMonotonicity(t *testing.T) {
	// For a fixed positive requirement the score must never decrease as the
	// offer grows, and must saturate at 1.0 once the offer covers it.
	const requirement = 64.0
	prev := -1.0
	for offer := 0.0; offer <= 160.0; offer += 2.0 {
		s := Coverage(requirement, offer)
		assert.GreaterOrEqual(t, s, prev, "offer %v", offer)
		assert.LessOrEqual(t, s, 1.0, "offer %v", offer)
		if offer >= requirement {
			assert.Equal(t, 1.0, s, "offer %v", offer)
		}
		prev = s
	}
}

func TestCoreSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "identical cores",
			a:        "ARM Cortex-M4",
			b:        "ARM Cortex-M4",
			expected: 1.0,
		},
		{
			name:     "same family different cores",
			a:        "ARM Cortex-M4",
			b:        "ARM Cortex-M7",
			expected: 0.8,
		},
		{
			name:     "risc-v family aliases",
			a:        "RISC-V",
			b:        "RV32IMC",
			expected: 0.8,
		},
		{
			name:     "different families",
			a:        "ARM Cortex-M0",
			b:        "AVR",
			expected: 0.0,
		},
		{
			name:     "unknown but identical names",
			a:        "Xtensa LX7",
			b:        "Xtensa LX7",
			expected: 1.0,
		},
		{
			name:     "unknown names act as singleton families",
			a:        "Xtensa LX7",
			b:        "Tensilica HiFi",
			expected: 0.0,
		},
		{
			name:     "empty side never matches",
			a:        "",
			b:        "ARM Cortex-M4",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coreSimilarity(tt.a, tt.b))
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
		ok       bool
	}{
		{name: "nil is false", value: nil, expected: false, ok: true},
		{name: "numeric one", value: 1.0, expected: true, ok: true},
		{name: "numeric zero", value: 0, expected: false, ok: true},
		{name: "yes", value: "yes", expected: true, ok: true},
		{name: "uppercase YES", value: "YES", expected: true, ok: true},
		{name: "on", value: "on", expected: true, ok: true},
		{name: "off", value: "off", expected: false, ok: true},
		{name: "false", value: "false", expected: false, ok: true},
		{name: "empty string is false", value: "", expected: false, ok: true},
		{name: "garbage is unparsable", value: "maybe", expected: false, ok: false},
		{name: "native bool", value: true, expected: true, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toBool(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFeatureSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		compVal  any
		ourVal   any
		expected float64
	}{
		{
			name:     "core exact match",
			key:      "core",
			compVal:  "ARM Cortex-M4",
			ourVal:   "ARM Cortex-M4",
			expected: 1.0,
		},
		{
			name:     "fpu level covered",
			key:      "fpu",
			compVal:  1,
			ourVal:   2,
			expected: 1.0,
		},
		{
			name:     "fpu level short by half",
			key:      "fpu",
			compVal:  2,
			ourVal:   1,
			expected: 0.5,
		},
		{
			name:     "boolean flag required and present",
			key:      "ethernet",
			compVal:  "yes",
			ourVal:   1,
			expected: 1.0,
		},
		{
			name:     "boolean flag required and missing",
			key:      "ethernet",
			compVal:  1,
			ourVal:   0,
			expected: 0.0,
		},
		{
			name:     "boolean flag not required",
			key:      "ethernet",
			compVal:  0,
			ourVal:   0,
			expected: 1.0,
		},
		{
			name:     "count coverage partial",
			key:      "uarts",
			compVal:  4,
			ourVal:   3,
			expected: 0.75,
		},
		{
			name:     "missing values on both sides",
			key:      "cans",
			compVal:  nil,
			ourVal:   nil,
			expected: 1.0,
		},
		{
			name:     "unparsable numeric fails closed",
			key:      "gpios",
			compVal:  "lots",
			ourVal:   80,
			expected: 0.0,
		},
		{
			name:     "unparsable boolean fails closed",
			key:      "qei",
			compVal:  "maybe",
			ourVal:   1,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FeatureSimilarity(tt.key, tt.compVal, tt.ourVal))
		})
	}
}
