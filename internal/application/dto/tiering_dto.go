package dto

import (
	"time"

	"github.com/quantgov/mrm/internal/domain/models"
)

// TieringResult is the API shape of one tiering assessment.
type TieringResult struct {
	TieringID string      `json:"tiering_id"`
	ModelID   string      `json:"model_id"`
	Timestamp time.Time   `json:"timestamp"`
	RiskScore float64     `json:"risk_score"`
	RiskTier  models.Tier `json:"risk_tier"`
	Rationale string      `json:"rationale"`
	Controls  []string    `json:"controls"`
}

// NewTieringResult converts a domain record.
func NewTieringResult(record *models.TieringRecord) TieringResult {
	return TieringResult{
		TieringID: record.TieringID,
		ModelID:   record.ModelID,
		Timestamp: record.Timestamp,
		RiskScore: record.Score,
		RiskTier:  record.Tier,
		Rationale: record.Rationale,
		Controls:  record.Controls,
	}
}

// NewTieringResults converts a slice of domain records, newest first.
func NewTieringResults(records []models.TieringRecord) []TieringResult {
	out := make([]TieringResult, 0, len(records))
	for i := range records {
		out = append(out, NewTieringResult(&records[i]))
	}
	return out
}
