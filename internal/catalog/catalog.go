package catalog

// Kind classifies how a feature's values are compared.
type Kind int

const (
	// KindCategorical values are short labels matched by core family.
	KindCategorical Kind = iota
	// KindOrdinal values are integer levels where higher is strictly better.
	KindOrdinal
	// KindBoolean values are 0/1 flags, tolerant of textual encodings.
	KindBoolean
	// KindCount values are non-negative counts or magnitudes.
	KindCount
)

// Feature describes one recognized attribute key.
type Feature struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
}

// features is the ordered list of recognized attribute keys. The order is the
// canonical display/column order used by the store, importer and output
// layers; the engine only consults Kind and aliases.
var features = []Feature{
	{Key: "core", Label: "Core", Kind: KindCategorical},
	{Key: "core_mark", Label: "CoreMark", Kind: KindOrdinal},
	{Key: "dsp_core", Label: "DSP Core", Kind: KindBoolean},
	{Key: "fpu", Label: "FPU", Kind: KindOrdinal},
	{Key: "max_clock_mhz", Label: "Max Clock (MHz)", Kind: KindCount},
	{Key: "flash_kb", Label: "Flash (KB)", Kind: KindCount},
	{Key: "sram_kb", Label: "SRAM (KB)", Kind: KindCount},
	{Key: "eeprom", Label: "EEPROM", Kind: KindBoolean},
	{Key: "gpios", Label: "GPIOs", Kind: KindCount},
	{Key: "uarts", Label: "UARTs", Kind: KindCount},
	{Key: "spis", Label: "SPIs", Kind: KindCount},
	{Key: "i2cs", Label: "I2Cs", Kind: KindCount},
	{Key: "pwms", Label: "PWMs", Kind: KindCount},
	{Key: "timers", Label: "Timers", Kind: KindCount},
	{Key: "dacs", Label: "DACs", Kind: KindCount},
	{Key: "adcs", Label: "ADCs", Kind: KindCount},
	{Key: "cans", Label: "CANs", Kind: KindCount},
	{Key: "power_mgmt", Label: "Power Management", Kind: KindBoolean},
	{Key: "clock_mgmt", Label: "Clock Management", Kind: KindBoolean},
	{Key: "qei", Label: "QEI", Kind: KindBoolean},
	{Key: "internal_osc", Label: "Internal Oscillator", Kind: KindBoolean},
	{Key: "security_features", Label: "Security Features", Kind: KindBoolean},
	{Key: "output_compare", Label: "Output Compare", Kind: KindCount},
	{Key: "input_capture", Label: "Input Capture", Kind: KindBoolean},
	{Key: "qspi", Label: "QSPI", Kind: KindCount},
	{Key: "ethernet", Label: "Ethernet", Kind: KindBoolean},
	{Key: "emif", Label: "EMIF", Kind: KindBoolean},
	{Key: "spi_slave", Label: "SPI Slave", Kind: KindBoolean},
	{Key: "ext_interrupts", Label: "External Interrupts", Kind: KindCount},
}

var byKey = func() map[string]Feature {
	m := make(map[string]Feature, len(features))
	for _, f := range features {
		m[f.Key] = f
	}
	return m
}()

// aliases maps a feature key to alternate key names found in source data.
// Resolution order is exact key first, then aliases in slice order.
var aliases = map[string][]string{
	"dsp_core": {"DSP"},
}

// coreFamilies groups architecturally related core names for partial-credit
// matching. Names absent from the table act as their own singleton family.
var coreFamilies = map[string]string{
	"ARM Cortex-M0":  "ARM_Cortex_M",
	"ARM Cortex-M0+": "ARM_Cortex_M",
	"ARM Cortex-M3":  "ARM_Cortex_M",
	"ARM Cortex-M4":  "ARM_Cortex_M",
	"ARM Cortex-M7":  "ARM_Cortex_M",
	"ARM Cortex-M23": "ARM_Cortex_M",
	"ARM Cortex-M33": "ARM_Cortex_M",
	"ARM Cortex-M55": "ARM_Cortex_M",
	"RISC-V":         "RISC_V",
	"RV32IMC":        "RISC_V",
	"RV32I":          "RISC_V",
	"RV64I":          "RISC_V",
	"FREE-RISC":      "RISC_V",
	"AVR":            "AVR",
	"8051":           "C51",
	"PIC":            "PIC",
}

// Features returns the ordered feature list as a copy.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// Keys returns the ordered feature keys.
func Keys() []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.Key
	}
	return out
}

// Lookup returns the feature definition for a key.
func Lookup(key string) (Feature, bool) {
	f, ok := byKey[key]
	return f, ok
}

// KindOf returns the comparison kind for a key. Unknown keys are treated as
// counts, the loosest numeric class.
func KindOf(key string) Kind {
	if f, ok := byKey[key]; ok {
		return f.Kind
	}
	return KindCount
}

// Aliases returns alternate key names under which a feature's value may be
// supplied in source data.
func Aliases(key string) []string {
	return aliases[key]
}

// CoreFamily maps a core name to its family. Unknown names map to themselves.
func CoreFamily(name string) string {
	if fam, ok := coreFamilies[name]; ok {
		return fam
	}
	return name
}
