package service

import (
	"github.com/quantgov/mrm/internal/domain/models"
)

// ResolveControls returns the rubric's control expectations for the tier,
// verbatim and in rubric order. A tier without a mapping yields an empty
// list rather than an error: tiering still succeeds, the checklist is
// simply empty.
func (e *tieringEngine) ResolveControls(tier models.Tier, rubric *models.Rubric) []string {
	controls, ok := rubric.ControlMapping[tier.Label]
	if !ok {
		return []string{}
	}
	out := make([]string, len(controls))
	copy(out, controls)
	return out
}
