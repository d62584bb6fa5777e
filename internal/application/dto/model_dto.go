package dto

import (
	"time"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
)

// RegisterModelRequest is the payload for adding a model to the inventory.
// ModelID is optional; a random identifier is assigned when absent.
type RegisterModelRequest struct {
	ModelID               string            `json:"model_id"`
	ModelName             string            `json:"model_name" validate:"required"`
	Domain                string            `json:"domain" validate:"omitempty,oneof=finance healthcare engineering other"`
	BusinessUse           string            `json:"business_use"`
	OwnerRole             string            `json:"owner_role"`
	ModelType             string            `json:"model_type" validate:"omitempty,oneof=ML LLM AGENT"`
	DecisionCriticality   string            `json:"decision_criticality" validate:"omitempty,oneof=Low Medium High"`
	DataSensitivity       string            `json:"data_sensitivity" validate:"omitempty,oneof=Public Internal Confidential Regulated-PII"`
	AutomationLevel       string            `json:"automation_level" validate:"omitempty,oneof=Advisory Human-Approval Fully-Automated"`
	RegulatoryMateriality string            `json:"regulatory_materiality" validate:"omitempty,oneof=None Moderate High"`
	DeploymentMode        string            `json:"deployment_mode" validate:"omitempty,oneof=Internal-only Batch Human-in-loop Real-time"`
	ExternalDependencies  string            `json:"external_dependencies"`
	ControlStatus         string            `json:"control_status"`
	Extensions            map[string]string `json:"extensions"`
}

// ToDomain converts the request to an inventory record. ModelID and
// CreatedAt are filled in by the inventory service.
func (r *RegisterModelRequest) ToDomain() *models.Model {
	return &models.Model{
		ModelID:               r.ModelID,
		ModelName:             r.ModelName,
		Domain:                r.Domain,
		BusinessUse:           r.BusinessUse,
		OwnerRole:             r.OwnerRole,
		ModelType:             models.ModelType(r.ModelType),
		DecisionCriticality:   models.DecisionCriticality(r.DecisionCriticality),
		DataSensitivity:       models.DataSensitivity(r.DataSensitivity),
		AutomationLevel:       models.AutomationLevel(r.AutomationLevel),
		RegulatoryMateriality: models.RegulatoryMateriality(r.RegulatoryMateriality),
		DeploymentMode:        models.DeploymentMode(r.DeploymentMode),
		ExternalDependencies:  r.ExternalDependencies,
		ControlStatus:         r.ControlStatus,
		Extensions:            r.Extensions,
	}
}

// ModelSummary is one row of the inventory listing. The tiering fields are
// nil for models that have never been assessed.
type ModelSummary struct {
	Model        models.Model `json:"model"`
	RiskScore    *float64     `json:"risk_score"`
	RiskTier     *models.Tier `json:"risk_tier"`
	LastTieredAt *time.Time   `json:"last_tiered_at"`
}

// NewModelSummary builds a listing row from a repository join result.
func NewModelSummary(row repository.ModelWithTiering) ModelSummary {
	summary := ModelSummary{Model: row.Model}
	if row.Latest != nil {
		score := row.Latest.Score
		tier := row.Latest.Tier
		at := row.Latest.Timestamp
		summary.RiskScore = &score
		summary.RiskTier = &tier
		summary.LastTieredAt = &at
	}
	return summary
}
