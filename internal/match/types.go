package match

// AttributeSet maps feature keys to raw values as they arrive from the store
// or an import: numbers, 0/1 flags, or short strings such as a core name.
type AttributeSet map[string]any

// Weights maps feature keys to non-negative importance weights.
type Weights map[string]float64

// Result is the outcome of scoring one candidate against a competitor part.
type Result struct {
	Percentage float64            `json:"percentage"`
	Category   string             `json:"category"`
	PerFeature map[string]float64 `json:"per_feature"`
}
