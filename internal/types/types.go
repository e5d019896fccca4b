package types

// Company is one vendor in the store; exactly one company is ours.
type Company struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	IsOurs int    `json:"is_ours"`
}

// MCU is a flat part record: identity keys (id, company_id, name) plus the
// raw feature attributes keyed by catalog feature keys. Records stay as maps
// because competitor sheets carry ragged, loosely typed columns.
type MCU map[string]any

// ID returns the record id, tolerating the float64 that encoding/json
// produces for numbers.
func (m MCU) ID() int {
	return intValue(m["id"])
}

// CompanyID returns the owning company id.
func (m MCU) CompanyID() int {
	return intValue(m["company_id"])
}

// Name returns the part name.
func (m MCU) Name() string {
	if s, ok := m["name"].(string); ok {
		return s
	}
	return ""
}

func intValue(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

// CompareRequest asks the API to score one candidate against a competitor.
type CompareRequest struct {
	CompetitorID int `json:"competitor_id" binding:"required"`
	CandidateID  int `json:"candidate_id" binding:"required"`
}

// BestMatchRequest asks the API for the best of our parts for a competitor.
type BestMatchRequest struct {
	CompetitorID int `json:"competitor_id" binding:"required"`
}

// MatchResponse is the API shape for a scored comparison.
type MatchResponse struct {
	CompetitorID   int                `json:"competitor_id"`
	CompetitorName string             `json:"competitor_name"`
	CandidateID    int                `json:"candidate_id,omitempty"`
	CandidateName  string             `json:"candidate_name,omitempty"`
	Percentage     float64            `json:"percentage"`
	Category       string             `json:"category"`
	PerFeature     map[string]float64 `json:"per_feature"`
}
