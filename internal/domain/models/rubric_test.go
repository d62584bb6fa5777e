package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/pkg/errors"
)

func TestDefaultRubricIsValid(t *testing.T) {
	require.NoError(t, DefaultRubric().Validate())
}

func TestRubricValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rubric)
		reason string
	}{
		{
			name:   "no weights",
			mutate: func(r *Rubric) { r.Weights = nil },
			reason: "at least one factor weight",
		},
		{
			name: "negative weight",
			mutate: func(r *Rubric) {
				r.Weights[0].Weight = -1
			},
			reason: "negative weight",
		},
		{
			name: "duplicate factor",
			mutate: func(r *Rubric) {
				r.Weights = append(r.Weights, r.Weights[0])
			},
			reason: "duplicate factor",
		},
		{
			name: "weight without score table",
			mutate: func(r *Rubric) {
				r.Weights = append(r.Weights, FactorWeight{Factor: "vendor_exposure", Weight: 2})
			},
			reason: "no score table",
		},
		{
			name: "negative attribute score",
			mutate: func(r *Rubric) {
				r.AttributeScores["data_sensitivity"]["Public"] = -3
			},
			reason: "negative score",
		},
		{
			name:   "no thresholds",
			mutate: func(r *Rubric) { r.Thresholds = nil },
			reason: "at least one tier threshold",
		},
		{
			name: "non-decreasing thresholds",
			mutate: func(r *Rubric) {
				r.Thresholds[1].MinScore = 22
			},
			reason: "strictly decrease",
		},
		{
			name: "non-increasing ranks",
			mutate: func(r *Rubric) {
				r.Thresholds[1].Tier.Rank = 1
			},
			reason: "ranks must strictly increase",
		},
		{
			name: "duplicate tier label",
			mutate: func(r *Rubric) {
				r.Thresholds[1].Tier.Label = "Tier 1"
			},
			reason: "duplicate tier label",
		},
		{
			name: "floor above zero leaves a gap",
			mutate: func(r *Rubric) {
				r.Thresholds[2].MinScore = 1
			},
			reason: "must be exactly 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rubric := DefaultRubric()
			tt.mutate(rubric)

			err := rubric.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRubric(err))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestRubricCloneIsDeep(t *testing.T) {
	original := DefaultRubric()
	clone := original.Clone()

	clone.Weights[0].Weight = 99
	clone.AttributeScores["decision_criticality"]["High"] = 99
	clone.Thresholds[0].MinScore = 99
	clone.ControlMapping["Tier 1"][0] = "tampered"

	assert.Equal(t, 5.0, original.Weights[0].Weight)
	assert.Equal(t, 5.0, original.AttributeScores["decision_criticality"]["High"])
	assert.Equal(t, 22.0, original.Thresholds[0].MinScore)
	assert.Equal(t, "Independent Validation Required", original.ControlMapping["Tier 1"][0])
}

func TestScoreTableKey(t *testing.T) {
	assert.Equal(t, "model_type", ScoreTableKey("model_type_factor"))
	assert.Equal(t, "data_sensitivity", ScoreTableKey("data_sensitivity"))
}
