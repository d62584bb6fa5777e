// Package service contains the pure domain logic of risk tiering: scoring,
// tier classification, rationale rendering, and control resolution. Nothing
// in this package touches storage or the network; every operation is a
// deterministic function of the model and the rubric it is handed.
package service

import (
	"context"

	"github.com/quantgov/mrm/internal/domain/models"
)

// TieringEngine computes risk-tiering results from a model and a rubric.
// Implementations are stateless: the same inputs always yield the same
// outputs, and no call mutates the model or the rubric.
type TieringEngine interface {
	// ComputeScore returns the weighted total risk score and its per-factor
	// breakdown, itemized in rubric factor order.
	ComputeScore(model *models.Model, rubric *models.Rubric) (float64, models.ScoreBreakdown)

	// AssignTier maps a score to the first tier whose inclusive minimum it
	// meets, scanning from most to least severe.
	AssignTier(score float64, rubric *models.Rubric) models.Tier

	// RenderRationale produces the human-readable assessment narrative for
	// a scored model.
	RenderRationale(model *models.Model, score float64, tier models.Tier, breakdown models.ScoreBreakdown, rubric *models.Rubric) string

	// ResolveControls returns the control expectations for the tier, verbatim
	// from the rubric. Unknown tiers yield an empty list.
	ResolveControls(tier models.Tier, rubric *models.Rubric) []string
}

// AuditService records governance audit trail events. Implementations may
// write to a database table or publish to a message broker; callers treat
// audit failures as best effort and never fail the underlying operation.
type AuditService interface {
	LogEvent(ctx context.Context, event *models.AuditEvent) error
}
