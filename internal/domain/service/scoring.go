package service

import (
	"github.com/quantgov/mrm/internal/domain/models"
)

// tieringEngine is the stateless implementation of TieringEngine.
type tieringEngine struct{}

// NewTieringEngine creates the standard tiering engine.
func NewTieringEngine() TieringEngine {
	return &tieringEngine{}
}

// ComputeScore walks the rubric's weights in order and accumulates
// contribution = unit score x weight per factor. A factor the model does
// not declare contributes 0 and is recorded as "N/A" so the breakdown
// always itemizes every weighted factor. An attribute value missing from
// the score table also scores 0; rubric validation keeps that case rare.
func (e *tieringEngine) ComputeScore(model *models.Model, rubric *models.Rubric) (float64, models.ScoreBreakdown) {
	breakdown := make(models.ScoreBreakdown, 0, len(rubric.Weights))
	var total float64

	for _, fw := range rubric.Weights {
		tableKey := models.ScoreTableKey(fw.Factor)
		value, declared := model.FactorValue(tableKey)
		if !declared {
			breakdown = append(breakdown, models.FactorContribution{
				Factor:       tableKey,
				Value:        "N/A",
				UnitScore:    0,
				Weight:       fw.Weight,
				Contribution: 0,
			})
			continue
		}

		unitScore := rubric.AttributeScores[tableKey][value]
		contribution := unitScore * fw.Weight
		total += contribution
		breakdown = append(breakdown, models.FactorContribution{
			Factor:       tableKey,
			Value:        value,
			UnitScore:    unitScore,
			Weight:       fw.Weight,
			Contribution: contribution,
		})
	}

	return total, breakdown
}
