package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/domain/models"
)

func creditRiskModel() *models.Model {
	return &models.Model{
		ModelID:               "m-credit-risk",
		ModelName:             "Credit Risk Scoring Model",
		Domain:                "finance",
		BusinessUse:           "Assess creditworthiness for loan applications",
		ModelType:             models.ModelTypeML,
		DecisionCriticality:   models.CriticalityHigh,
		DataSensitivity:       models.SensitivityRegulatedPII,
		AutomationLevel:       models.AutomationHumanApproval,
		RegulatoryMateriality: models.MaterialityHigh,
	}
}

func TestComputeScore(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()

	tests := []struct {
		name      string
		model     *models.Model
		wantScore float64
		wantTier  string
	}{
		{
			name:      "high criticality regulated model",
			model:     creditRiskModel(),
			wantScore: 79, // 5x5 + 4x5 + 3x3 + 5x5 + 2x0
			wantTier:  "Tier 1",
		},
		{
			name: "moderate LLM assistant",
			model: &models.Model{
				ModelID:               "m-llm",
				ModelName:             "Policy Drafting Assistant",
				ModelType:             models.ModelTypeLLM,
				DecisionCriticality:   models.CriticalityMedium,
				DataSensitivity:       models.SensitivityInternal,
				AutomationLevel:       models.AutomationAdvisory,
				RegulatoryMateriality: models.MaterialityModerate,
			},
			wantScore: 45, // 5x3 + 4x2 + 3x1 + 5x3 + 2x2
			wantTier:  "Tier 1",
		},
		{
			name: "low materiality advisory model",
			model: &models.Model{
				ModelID:               "m-advisory",
				ModelName:             "Churn Forecaster",
				ModelType:             models.ModelTypeML,
				DecisionCriticality:   models.CriticalityMedium,
				DataSensitivity:       models.SensitivityInternal,
				AutomationLevel:       models.AutomationAdvisory,
				RegulatoryMateriality: models.MaterialityNone,
			},
			wantScore: 31, // 5x3 + 4x2 + 3x1 + 5x1 + 2x0
			wantTier:  "Tier 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, breakdown := engine.ComputeScore(tt.model, rubric)

			assert.Equal(t, tt.wantScore, score)
			assert.Len(t, breakdown, len(rubric.Weights))
			assert.Equal(t, score, breakdown.Total())

			tier := engine.AssignTier(score, rubric)
			assert.Equal(t, tt.wantTier, tier.Label)
		})
	}
}

func TestComputeScoreUndeclaredFactors(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()

	// Only criticality declared; every other factor must appear as N/A
	// with a zero contribution.
	model := &models.Model{
		ModelID:             "m-partial",
		ModelName:           "Partial Model",
		DecisionCriticality: models.CriticalityLow,
	}

	score, breakdown := engine.ComputeScore(model, rubric)
	assert.Equal(t, 5.0, score) // 5x1

	require.Len(t, breakdown, 5)
	for _, c := range breakdown[1:] {
		assert.Equal(t, "N/A", c.Value)
		assert.Zero(t, c.Contribution)
	}
}

func TestComputeScoreUnknownOptionScoresZero(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()

	model := creditRiskModel()
	model.DecisionCriticality = "Extreme" // not in the score table

	score, _ := engine.ComputeScore(model, rubric)
	assert.Equal(t, 54.0, score) // 79 minus the 25-point criticality contribution
}

func TestComputeScoreIsPure(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()
	model := creditRiskModel()

	first, _ := engine.ComputeScore(model, rubric)
	second, _ := engine.ComputeScore(model, rubric)
	assert.Equal(t, first, second)
	assert.NoError(t, rubric.Validate(), "scoring must not mutate the rubric")
}

func TestAssignTierBoundaries(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()

	tests := []struct {
		score float64
		want  string
	}{
		{score: 22, want: "Tier 1"}, // inclusive minimum
		{score: 21.999, want: "Tier 2"},
		{score: 15, want: "Tier 2"},
		{score: 14.999, want: "Tier 3"},
		{score: 0, want: "Tier 3"},
		{score: 500, want: "Tier 1"},
	}

	for _, tt := range tests {
		tier := engine.AssignTier(tt.score, rubric)
		assert.Equal(t, tt.want, tier.Label, "score %v", tt.score)
	}
}

func TestAssignTierArbitraryScale(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()
	rubric.Thresholds = []models.TierThreshold{
		{Tier: models.Tier{Rank: 1, Label: "Critical"}, MinScore: 50},
		{Tier: models.Tier{Rank: 2, Label: "Elevated"}, MinScore: 30},
		{Tier: models.Tier{Rank: 3, Label: "Standard"}, MinScore: 10},
		{Tier: models.Tier{Rank: 4, Label: "Minimal"}, MinScore: 0},
	}
	require.NoError(t, rubric.Validate())

	assert.Equal(t, "Critical", engine.AssignTier(50, rubric).Label)
	assert.Equal(t, "Elevated", engine.AssignTier(49.5, rubric).Label)
	assert.Equal(t, "Standard", engine.AssignTier(10, rubric).Label)
	assert.Equal(t, "Minimal", engine.AssignTier(3, rubric).Label)
}

func TestRenderRationale(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()
	model := creditRiskModel()

	score, breakdown := engine.ComputeScore(model, rubric)
	tier := engine.AssignTier(score, rubric)
	rationale := engine.RenderRationale(model, score, tier, breakdown, rubric)

	assert.Contains(t, rationale, "Model: Credit Risk Scoring Model")
	assert.Contains(t, rationale, "Calculated Risk Score: 79.00")
	assert.Contains(t, rationale, "Assigned Risk Tier: Tier 1")
	assert.Contains(t, rationale, "- Decision Criticality: 'High' (Score: 5, Weight: 5) -> Contribution: 25.00")
	assert.Contains(t, rationale, "- Data Sensitivity: 'Regulated-PII' (Score: 5, Weight: 4) -> Contribution: 20.00")
	assert.Contains(t, rationale, "**Reasoning for Tier 1:**")

	// The ML model type contributes zero and must be omitted from the itemized lines.
	assert.NotContains(t, rationale, "Model Type")
}

func TestRenderRationaleReasoningBySeverity(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()
	model := creditRiskModel()

	tests := []struct {
		tier models.Tier
		want string
	}{
		{tier: models.Tier{Rank: 1, Label: "Tier 1"}, want: "very high inherent risk"},
		{tier: models.Tier{Rank: 2, Label: "Tier 2"}, want: "moderate inherent risk"},
		{tier: models.Tier{Rank: 3, Label: "Tier 3"}, want: "relatively low inherent risk"},
	}

	for _, tt := range tests {
		r := engine.RenderRationale(model, 10, tt.tier, nil, rubric)
		assert.Contains(t, r, tt.want)
		assert.True(t, strings.Contains(r, "**Reasoning for "+tt.tier.Label+":**"))
	}
}

func TestResolveControls(t *testing.T) {
	engine := NewTieringEngine()
	rubric := models.DefaultRubric()

	controls := engine.ResolveControls(models.Tier{Rank: 1, Label: "Tier 1"}, rubric)
	assert.Equal(t, []string{
		"Independent Validation Required",
		"Comprehensive Documentation (Model Requirement Doc, Model Specification Doc, Model Validation Doc)",
		"Automated Performance Monitoring with Alerting",
		"Annual Model Review by MRM Committee",
	}, controls)

	// Unknown tier yields an empty checklist, not an error.
	assert.Empty(t, engine.ResolveControls(models.Tier{Rank: 9, Label: "Tier 9"}, rubric))

	// Returned slice is a copy; mutating it must not corrupt the rubric.
	controls[0] = "tampered"
	again := engine.ResolveControls(models.Tier{Rank: 1, Label: "Tier 1"}, rubric)
	assert.Equal(t, "Independent Validation Required", again[0])
}
