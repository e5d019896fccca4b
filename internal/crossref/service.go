package crossref

import (
	"log/slog"

	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/database"
	apperrors "github.com/strivefit/mcu-crossref/internal/errors"
	"github.com/strivefit/mcu-crossref/internal/importer"
	"github.com/strivefit/mcu-crossref/internal/match"
	"github.com/strivefit/mcu-crossref/internal/store"
	"github.com/strivefit/mcu-crossref/internal/types"
)

// Service bundles the part store, the scoring engine configuration and the
// comparison history into the operations the API and CLI expose.
type Service struct {
	store   *store.Store
	history *database.History
	base    match.Weights
	// explicit marks a caller-supplied weight table, which is used as
	// given instead of being dynamically adjusted per competitor.
	explicit bool
	best     float64
	partial  float64
}

// New creates a service. history may be nil; comparisons then go unrecorded.
func New(s *store.Store, history *database.History, engineCfg config.EngineConfig) *Service {
	best := engineCfg.BestThreshold
	partial := engineCfg.PartialThreshold
	if best <= 0 && partial <= 0 {
		best, partial = 80, 65
	}
	return &Service{
		store:    s,
		history:  history,
		base:     match.DefaultWeights().WithOverrides(engineCfg.Weights),
		explicit: len(engineCfg.Weights) > 0,
		best:     best,
		partial:  partial,
	}
}

// Companies lists companies, optionally filtered by a search string.
func (sv *Service) Companies(search string) ([]types.Company, error) {
	return sv.store.ListCompanies(search)
}

// AddCompany registers a competitor company.
func (sv *Service) AddCompany(name string) (int, error) {
	if name == "" {
		return 0, apperrors.NewValidationError("company name is required")
	}
	return sv.store.EnsureCompany(name, 0)
}

// MCUs lists the parts of one company.
func (sv *Service) MCUs(companyID int) ([]types.MCU, error) {
	return sv.store.MCUsByCompany(companyID)
}

// AddMCU stores a part under the given company.
func (sv *Service) AddMCU(companyID int, attrs map[string]any) (int, error) {
	name, _ := attrs["name"].(string)
	if name == "" {
		return 0, apperrors.NewValidationError("part name is required")
	}
	return sv.store.InsertMCU(companyID, attrs)
}

// mcuOrNotFound loads a part by id, mapping absence to a not-found error.
func (sv *Service) mcuOrNotFound(id int) (types.MCU, error) {
	m, err := sv.store.MCUByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("mcu", id)
	}
	return m, nil
}

// weightsFor derives the effective weight table for a competitor part.
// Configured overrides bypass the dynamic clock adjustment entirely; only
// the default table is rebalanced per competitor.
func (sv *Service) weightsFor(competitor types.MCU) match.Weights {
	if sv.explicit {
		return sv.base
	}
	return match.AdjustedWeightsFrom(sv.base, match.AttributeSet(competitor))
}

// Compare scores one candidate part against a competitor part and records
// the outcome in the history.
func (sv *Service) Compare(competitorID, candidateID int) (*types.MatchResponse, error) {
	competitor, err := sv.mcuOrNotFound(competitorID)
	if err != nil {
		return nil, err
	}
	candidate, err := sv.mcuOrNotFound(candidateID)
	if err != nil {
		return nil, err
	}

	pct, perFeature := match.WeightedSimilarity(
		match.AttributeSet(competitor), match.AttributeSet(candidate), sv.weightsFor(competitor))

	resp := &types.MatchResponse{
		CompetitorID:   competitorID,
		CompetitorName: competitor.Name(),
		CandidateID:    candidateID,
		CandidateName:  candidate.Name(),
		Percentage:     pct,
		Category:       match.CategorizeWith(pct, sv.best, sv.partial),
		PerFeature:     perFeature,
	}

	sv.record("compare", resp)
	return resp, nil
}

// BestMatch scores every one of our parts against the competitor and returns
// the best. Candidates arrive name-sorted from the store, so ties resolve to
// the alphabetically first part. With no parts of our own the response has
// percentage -1 and no candidate.
func (sv *Service) BestMatch(competitorID int) (*types.MatchResponse, error) {
	competitor, err := sv.mcuOrNotFound(competitorID)
	if err != nil {
		return nil, err
	}

	ours, err := sv.store.OurMCUs()
	if err != nil {
		return nil, err
	}

	candidates := make([]match.AttributeSet, len(ours))
	for i, m := range ours {
		candidates[i] = match.AttributeSet(m)
	}

	best, score, perFeature := match.BestMatch(
		match.AttributeSet(competitor), candidates, sv.weightsFor(competitor))

	resp := &types.MatchResponse{
		CompetitorID:   competitorID,
		CompetitorName: competitor.Name(),
		Percentage:     score,
		PerFeature:     perFeature,
	}
	if best != nil {
		bestMCU := types.MCU(best)
		resp.CandidateID = bestMCU.ID()
		resp.CandidateName = bestMCU.Name()
		resp.Category = match.CategorizeWith(score, sv.best, sv.partial)
		sv.record("best_match", resp)
	}
	return resp, nil
}

// ImportParts loads competitor parts from a CSV or XLSX sheet.
func (sv *Service) ImportParts(path, companyName string) (importer.Summary, error) {
	if companyName == "" {
		return importer.Summary{}, apperrors.NewValidationError("company name is required")
	}
	return importer.New(sv.store).ImportParts(path, companyName)
}

// CheckCoverage reports which parts of a sheet already exist in the store.
func (sv *Service) CheckCoverage(path string) (importer.Coverage, error) {
	return importer.New(sv.store).CheckCoverage(path)
}

// Recent returns the most recent recorded comparisons.
func (sv *Service) Recent(limit int) ([]database.Comparison, error) {
	if sv.history == nil {
		return nil, nil
	}
	return sv.history.Recent(limit)
}

// ForCompetitor returns past comparisons recorded against one competitor
// part, most recent first.
func (sv *Service) ForCompetitor(competitorID, limit int) ([]database.Comparison, error) {
	if sv.history == nil {
		return nil, nil
	}
	return sv.history.ForCompetitor(competitorID, limit)
}

// record persists a scored comparison. Failures are logged, not returned;
// the score itself is still valid.
func (sv *Service) record(kind string, resp *types.MatchResponse) {
	if sv.history == nil {
		return
	}
	c := database.Comparison{
		CompetitorID:   resp.CompetitorID,
		CompetitorName: resp.CompetitorName,
		CandidateID:    resp.CandidateID,
		CandidateName:  resp.CandidateName,
		Percentage:     resp.Percentage,
		Category:       resp.Category,
		Breakdown:      resp.PerFeature,
		Kind:           kind,
	}
	if err := sv.history.Record(c); err != nil {
		slog.Warn("Failed to record comparison", "kind", kind, "error", err)
	}
}
