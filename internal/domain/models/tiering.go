package models

import "time"

// FactorContribution is one line of a score breakdown. Value is "N/A" and
// Contribution is 0 when the model does not declare the factor.
type FactorContribution struct {
	Factor       string  `json:"factor"`
	Value        string  `json:"value"`
	UnitScore    float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ScoreBreakdown itemizes a risk score in rubric factor order.
type ScoreBreakdown []FactorContribution

// Total sums the contributions.
func (b ScoreBreakdown) Total() float64 {
	var total float64
	for _, c := range b {
		total += c.Contribution
	}
	return total
}

// TieringRecord is one immutable risk-tiering assessment. Records are only
// ever appended; re-running tiering for a model produces a new record with
// a fresh TieringID. Seq is assigned by storage and breaks timestamp ties
// when selecting the latest record.
type TieringRecord struct {
	TieringID string    `json:"tiering_id"`
	ModelID   string    `json:"model_id"`
	Seq       int64     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"risk_score"`
	Tier      Tier      `json:"risk_tier"`
	Rationale string    `json:"rationale"`
	Controls  []string  `json:"controls"`
}
