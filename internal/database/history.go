package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comparison is one recorded scoring run.
type Comparison struct {
	ID             string             `json:"id"`
	CompetitorID   int                `json:"competitor_id"`
	CompetitorName string             `json:"competitor_name"`
	CandidateID    int                `json:"candidate_id"`
	CandidateName  string             `json:"candidate_name"`
	Percentage     float64            `json:"percentage"`
	Category       string             `json:"category"`
	Breakdown      map[string]float64 `json:"breakdown,omitempty"`
	Kind           string             `json:"kind"`
	CreatedAt      time.Time          `json:"created_at"`
}

// History records and queries scored comparisons.
type History struct {
	db *DB
}

// NewHistory creates a history repository over the database.
func NewHistory(db *DB) *History {
	return &History{db: db}
}

// Record stores one comparison outcome. Kind distinguishes direct compares
// from best-match selections.
func (h *History) Record(c Comparison) error {
	stmt, err := h.db.stmt("insert_comparison")
	if err != nil {
		return err
	}

	breakdown, err := json.Marshal(c.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode breakdown: %w", err)
	}

	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = stmt.Exec(id, c.CompetitorID, c.CompetitorName, c.CandidateID,
		c.CandidateName, c.Percentage, c.Category, string(breakdown), c.Kind, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert comparison: %w", err)
	}
	return nil
}

// Recent returns the newest comparisons, most recent first.
func (h *History) Recent(limit int) ([]Comparison, error) {
	stmt, err := h.db.stmt("recent_comparisons")
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent comparisons: %w", err)
	}
	defer rows.Close()
	return scanComparisons(rows)
}

// ForCompetitor returns past comparisons for one competitor part.
func (h *History) ForCompetitor(competitorID, limit int) ([]Comparison, error) {
	stmt, err := h.db.stmt("comparisons_for_competitor")
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(competitorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()
	return scanComparisons(rows)
}

func scanComparisons(rows *sql.Rows) ([]Comparison, error) {
	var out []Comparison
	for rows.Next() {
		var c Comparison
		var candidateID sql.NullInt64
		var candidateName sql.NullString
		var breakdown sql.NullString

		if err := rows.Scan(&c.ID, &c.CompetitorID, &c.CompetitorName, &candidateID,
			&candidateName, &c.Percentage, &c.Category, &breakdown, &c.Kind, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		c.CandidateID = int(candidateID.Int64)
		c.CandidateName = candidateName.String
		if breakdown.Valid && breakdown.String != "" && breakdown.String != "null" {
			if err := json.Unmarshal([]byte(breakdown.String), &c.Breakdown); err != nil {
				return nil, fmt.Errorf("failed to decode breakdown: %w", err)
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
