package models

import (
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/errors"
)

// FactorWeight pairs a rubric factor with its multiplier. Order is
// significant: scoring iterates weights in rubric order so breakdowns
// and rationales are reproducible.
type FactorWeight struct {
	Factor string  `json:"factor" yaml:"factor"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// TierThreshold binds a tier to the inclusive minimum score that reaches it.
// Thresholds are ordered most severe first.
type TierThreshold struct {
	Tier     Tier    `json:"tier" yaml:"tier"`
	MinScore float64 `json:"min_score" yaml:"min_score"`
}

// Rubric is the complete, self-contained scoring configuration: factor
// weights, attribute score tables, the ordered tier scale, and the
// controls each tier requires. A rubric is validated once at load or
// replace time; scoring assumes a valid rubric and never re-checks.
type Rubric struct {
	Weights         []FactorWeight                `json:"weights" yaml:"weights"`
	AttributeScores map[string]map[string]float64 `json:"attribute_scores" yaml:"attribute_scores"`
	Thresholds      []TierThreshold               `json:"tier_thresholds" yaml:"tier_thresholds"`
	ControlMapping  map[string][]string           `json:"control_mapping" yaml:"control_mapping"`
}

// ScoreTableKey maps a weight factor to its score-table name. The reserved
// model-type factor is scored from the model_type table; every other factor
// uses its own name.
func ScoreTableKey(factor string) string {
	if factor == constants.FactorModelType {
		return constants.ScoreTableModelType
	}
	return factor
}

// Validate checks the structural invariants of the rubric. A rubric that
// passes guarantees every score is a finite non-negative number and every
// non-negative score falls into exactly one tier band.
func (r *Rubric) Validate() error {
	if len(r.Weights) == 0 {
		return errors.ErrRubricInvalid("rubric must define at least one factor weight")
	}
	seenFactor := make(map[string]bool, len(r.Weights))
	for _, fw := range r.Weights {
		if fw.Factor == "" {
			return errors.ErrRubricInvalid("factor name must not be empty")
		}
		if seenFactor[fw.Factor] {
			return errors.ErrRubricInvalid("duplicate factor weight: " + fw.Factor)
		}
		seenFactor[fw.Factor] = true
		if fw.Weight < 0 {
			return errors.ErrRubricInvalid("negative weight for factor: " + fw.Factor)
		}
		table, ok := r.AttributeScores[ScoreTableKey(fw.Factor)]
		if !ok {
			return errors.ErrRubricInvalid("no score table for factor: " + fw.Factor)
		}
		for option, score := range table {
			if score < 0 {
				return errors.ErrRubricInvalid("negative score for option '" + option + "' of factor " + fw.Factor)
			}
		}
	}

	if len(r.Thresholds) == 0 {
		return errors.ErrRubricInvalid("rubric must define at least one tier threshold")
	}
	seenLabel := make(map[string]bool, len(r.Thresholds))
	for i, th := range r.Thresholds {
		if th.Tier.Label == "" {
			return errors.ErrRubricInvalid("tier label must not be empty")
		}
		if seenLabel[th.Tier.Label] {
			return errors.ErrRubricInvalid("duplicate tier label: " + th.Tier.Label)
		}
		seenLabel[th.Tier.Label] = true
		if i > 0 {
			prev := r.Thresholds[i-1]
			if th.Tier.Rank <= prev.Tier.Rank {
				return errors.ErrRubricInvalid("tier ranks must strictly increase from most to least severe")
			}
			if th.MinScore >= prev.MinScore {
				return errors.ErrRubricInvalid("tier thresholds must strictly decrease from most to least severe")
			}
		}
	}
	// The least severe tier anchors the scale: every non-negative score must
	// land in some band.
	if r.Thresholds[len(r.Thresholds)-1].MinScore != 0 {
		return errors.ErrRubricInvalid("least severe tier threshold must be exactly 0")
	}

	return nil
}

// Clone returns a deep copy. Replace hands callers clones so a held rubric
// snapshot never changes under a concurrent edit.
func (r *Rubric) Clone() *Rubric {
	cp := &Rubric{
		Weights:         make([]FactorWeight, len(r.Weights)),
		AttributeScores: make(map[string]map[string]float64, len(r.AttributeScores)),
		Thresholds:      make([]TierThreshold, len(r.Thresholds)),
		ControlMapping:  make(map[string][]string, len(r.ControlMapping)),
	}
	copy(cp.Weights, r.Weights)
	copy(cp.Thresholds, r.Thresholds)
	for factor, table := range r.AttributeScores {
		t := make(map[string]float64, len(table))
		for option, score := range table {
			t[option] = score
		}
		cp.AttributeScores[factor] = t
	}
	for label, controls := range r.ControlMapping {
		cs := make([]string, len(controls))
		copy(cs, controls)
		cp.ControlMapping[label] = cs
	}
	return cp
}

// DefaultRubric returns the standard MRM rubric: five weighted factors,
// a three-tier scale, and the control expectations per tier.
func DefaultRubric() *Rubric {
	return &Rubric{
		Weights: []FactorWeight{
			{Factor: "decision_criticality", Weight: 5},
			{Factor: "data_sensitivity", Weight: 4},
			{Factor: "automation_level", Weight: 3},
			{Factor: "regulatory_materiality", Weight: 5},
			{Factor: constants.FactorModelType, Weight: 2},
		},
		AttributeScores: map[string]map[string]float64{
			"decision_criticality": {
				"Low":    1,
				"Medium": 3,
				"High":   5,
			},
			"data_sensitivity": {
				"Public":        1,
				"Internal":      2,
				"Confidential":  3,
				"Regulated-PII": 5,
			},
			"automation_level": {
				"Advisory":        1,
				"Human-Approval":  3,
				"Fully-Automated": 5,
			},
			"regulatory_materiality": {
				"None":     1,
				"Moderate": 3,
				"High":     5,
			},
			constants.ScoreTableModelType: {
				"ML":    0,
				"LLM":   2,
				"AGENT": 3,
			},
		},
		Thresholds: []TierThreshold{
			{Tier: Tier{Rank: 1, Label: "Tier 1"}, MinScore: 22},
			{Tier: Tier{Rank: 2, Label: "Tier 2"}, MinScore: 15},
			{Tier: Tier{Rank: 3, Label: "Tier 3"}, MinScore: 0},
		},
		ControlMapping: map[string][]string{
			"Tier 1": {
				"Independent Validation Required",
				"Comprehensive Documentation (Model Requirement Doc, Model Specification Doc, Model Validation Doc)",
				"Automated Performance Monitoring with Alerting",
				"Annual Model Review by MRM Committee",
			},
			"Tier 2": {
				"Internal Peer Review/Challenger Model Validation",
				"Detailed Documentation (Model Requirement Doc, Model Specification Doc)",
				"Regular Performance Monitoring",
				"Biennial Model Review by MRM Committee",
			},
			"Tier 3": {
				"Self-Attestation by Model Owner",
				"Basic Documentation (Model Description)",
				"Ad-hoc Performance Checks",
			},
		},
	}
}
