// Package models defines the domain entities of the MRM Governance Service:
// the model inventory record, the risk rubric, and the tiering results.
package models

import (
	"time"

	"github.com/quantgov/mrm/pkg/constants"
)

// ModelType classifies the kind of AI/ML system under governance.
type ModelType string

const (
	ModelTypeML    ModelType = "ML"
	ModelTypeLLM   ModelType = "LLM"
	ModelTypeAgent ModelType = "AGENT"
)

// DecisionCriticality describes how consequential the model's decisions are.
type DecisionCriticality string

const (
	CriticalityLow    DecisionCriticality = "Low"
	CriticalityMedium DecisionCriticality = "Medium"
	CriticalityHigh   DecisionCriticality = "High"
)

// DataSensitivity describes the classification of data the model consumes.
type DataSensitivity string

const (
	SensitivityPublic       DataSensitivity = "Public"
	SensitivityInternal     DataSensitivity = "Internal"
	SensitivityConfidential DataSensitivity = "Confidential"
	SensitivityRegulatedPII DataSensitivity = "Regulated-PII"
)

// AutomationLevel describes how much human oversight sits between the model
// and the decision it influences.
type AutomationLevel string

const (
	AutomationAdvisory       AutomationLevel = "Advisory"
	AutomationHumanApproval  AutomationLevel = "Human-Approval"
	AutomationFullyAutomated AutomationLevel = "Fully-Automated"
)

// RegulatoryMateriality describes the model's exposure to regulatory scrutiny.
type RegulatoryMateriality string

const (
	MaterialityNone     RegulatoryMateriality = "None"
	MaterialityModerate RegulatoryMateriality = "Moderate"
	MaterialityHigh     RegulatoryMateriality = "High"
)

// DeploymentMode describes how the model is served.
type DeploymentMode string

const (
	DeploymentInternalOnly DeploymentMode = "Internal-only"
	DeploymentBatch        DeploymentMode = "Batch"
	DeploymentHumanInLoop  DeploymentMode = "Human-in-loop"
	DeploymentRealTime     DeploymentMode = "Real-time"
)

// Model is an inventory record describing a governed AI/ML system.
// The enumerated fields cover the factors the default rubric scores;
// Extensions carries free-form attributes so a replacement rubric can
// introduce new factors without a schema change.
type Model struct {
	ModelID               string                `json:"model_id"`
	ModelName             string                `json:"model_name"`
	Domain                string                `json:"domain,omitempty"`
	BusinessUse           string                `json:"business_use,omitempty"`
	OwnerRole             string                `json:"owner_role,omitempty"`
	ModelType             ModelType             `json:"model_type,omitempty"`
	DecisionCriticality   DecisionCriticality   `json:"decision_criticality,omitempty"`
	DataSensitivity       DataSensitivity       `json:"data_sensitivity,omitempty"`
	AutomationLevel       AutomationLevel       `json:"automation_level,omitempty"`
	RegulatoryMateriality RegulatoryMateriality `json:"regulatory_materiality,omitempty"`
	DeploymentMode        DeploymentMode        `json:"deployment_mode,omitempty"`
	ExternalDependencies  string                `json:"external_dependencies,omitempty"`
	ControlStatus         string                `json:"control_status,omitempty"`
	Extensions            map[string]string     `json:"extensions,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
}

// FactorValue resolves a rubric factor name to the model's declared value.
// It is the single place where attribute lookup and absence are decided:
// the second return is false when the model does not declare the factor,
// and callers treat that as a zero-score contribution.
func (m *Model) FactorValue(factor string) (string, bool) {
	var v string
	switch factor {
	case "decision_criticality":
		v = string(m.DecisionCriticality)
	case "data_sensitivity":
		v = string(m.DataSensitivity)
	case "automation_level":
		v = string(m.AutomationLevel)
	case "regulatory_materiality":
		v = string(m.RegulatoryMateriality)
	case constants.ScoreTableModelType, constants.FactorModelType:
		v = string(m.ModelType)
	case "domain":
		v = m.Domain
	case "deployment_mode":
		v = string(m.DeploymentMode)
	default:
		v = m.Extensions[factor]
	}
	if v == "" {
		return "", false
	}
	return v, true
}
