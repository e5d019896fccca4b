package match

import (
	"strconv"
	"strings"

	"github.com/strivefit/mcu-crossref/internal/catalog"
)

// Family-level partial credit when two different cores share an architecture
// family (e.g. Cortex-M4 vs Cortex-M7).
const familyScore = 0.8

// toFloat coerces a raw attribute value to a float64. Missing values (nil)
// coerce to 0. The second return is false for values that cannot be parsed;
// the engine fails closed to 0.0 similarity on those.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toBool coerces a raw flag value to a boolean, accepting common textual
// truthy/falsy encodings. The second return is false for unparsable values
// rather than silently defaulting, so callers keep the fail-closed contract.
func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case nil:
		return false, true
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "true", "1", "y", "on":
			return true, true
		case "no", "false", "0", "n", "off", "":
			return false, true
		default:
			return false, false
		}
	default:
		f, ok := toFloat(v)
		if !ok {
			return false, false
		}
		return f > 0, true
	}
}

// Coverage scores how well an offer covers a requirement. Directional on
// purpose: exceeding the requirement is capped at 1.0 with no bonus, falling
// short is penalized proportionally, and a zero requirement is always fully
// satisfied.
func Coverage(requirement, offer float64) float64 {
	if requirement <= 0 {
		return 1.0
	}
	if offer <= 0 {
		return 0.0
	}
	if offer >= requirement {
		return 1.0
	}
	return offer / requirement
}

// coreSimilarity compares two core names categorically: exact match scores
// 1.0, same family 0.8, anything else 0.0. Empty names never match.
func coreSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	if catalog.CoreFamily(a) == catalog.CoreFamily(b) {
		return familyScore
	}
	return 0.0
}

// FeatureSimilarity scores one feature for a competitor/candidate value pair,
// dispatching on the feature's catalog kind. Unparsable values on either side
// score 0.0 for that feature only.
func FeatureSimilarity(key string, compVal, ourVal any) float64 {
	switch catalog.KindOf(key) {
	case catalog.KindCategorical:
		return coreSimilarity(stringValue(compVal), stringValue(ourVal))
	case catalog.KindBoolean:
		req, okA := toBool(compVal)
		off, okB := toBool(ourVal)
		if !okA || !okB {
			return 0.0
		}
		return Coverage(boolTo01(req), boolTo01(off))
	default: // ordinal levels and counts share directional coverage
		req, okA := toFloat(compVal)
		off, okB := toFloat(ourVal)
		if !okA || !okB {
			return 0.0
		}
		return Coverage(req, off)
	}
}

func boolTo01(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
