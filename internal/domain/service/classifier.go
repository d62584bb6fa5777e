package service

import (
	"github.com/quantgov/mrm/internal/domain/models"
)

// AssignTier scans thresholds from most to least severe and returns the
// first tier whose inclusive minimum the score meets. A validated rubric
// anchors the least severe tier at 0, so every non-negative score lands
// in exactly one band; the final tier is returned as a safety net either way.
func (e *tieringEngine) AssignTier(score float64, rubric *models.Rubric) models.Tier {
	for _, th := range rubric.Thresholds {
		if score >= th.MinScore {
			return th.Tier
		}
	}
	return rubric.Thresholds[len(rubric.Thresholds)-1].Tier
}
