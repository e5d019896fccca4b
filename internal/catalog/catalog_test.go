package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysMatchFeatureOrder(t *testing.T) {
	keys := Keys()
	feats := Features()

	assert.Len(t, keys, len(feats))
	for i, f := range feats {
		assert.Equal(t, f.Key, keys[i])
	}

	// identity columns are not features
	assert.NotContains(t, keys, "id")
	assert.NotContains(t, keys, "name")
}

func TestFeaturesReturnsACopy(t *testing.T) {
	a := Features()
	a[0].Key = "mutated"
	assert.Equal(t, "core", Features()[0].Key)
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("fpu")
	assert.True(t, ok)
	assert.Equal(t, KindOrdinal, f.Kind)
	assert.Equal(t, "FPU", f.Label)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{"core", KindCategorical},
		{"core_mark", KindOrdinal},
		{"fpu", KindOrdinal},
		{"dsp_core", KindBoolean},
		{"ethernet", KindBoolean},
		{"max_clock_mhz", KindCount},
		{"uarts", KindCount},
		{"unknown_key", KindCount},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.key), tt.key)
	}
}

func TestAliases(t *testing.T) {
	assert.Equal(t, []string{"DSP"}, Aliases("dsp_core"))
	assert.Empty(t, Aliases("fpu"))
}

func TestCoreFamily(t *testing.T) {
	assert.Equal(t, "ARM_Cortex_M", CoreFamily("ARM Cortex-M0+"))
	assert.Equal(t, "ARM_Cortex_M", CoreFamily("ARM Cortex-M7"))
	assert.Equal(t, "RISC_V", CoreFamily("RV32IMC"))
	assert.Equal(t, "C51", CoreFamily("8051"))

	// unknown cores are their own family
	assert.Equal(t, "Xtensa LX7", CoreFamily("Xtensa LX7"))
	assert.Equal(t, "", CoreFamily(""))
}
