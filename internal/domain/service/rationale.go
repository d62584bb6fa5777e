package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantgov/mrm/internal/domain/models"
)

// Fixed justification paragraphs, selected by the tier's position on the
// rubric's scale rather than by label so they generalize to any tier list.
const (
	reasoningMostSevere  = "This model exhibits very high inherent risk due to its significant impact on critical decisions, handling of regulated and sensitive data, and/or high level of automation, requiring the most stringent governance and validation."
	reasoningMiddle      = "This model presents moderate inherent risk, likely involving important business decisions, sensitive internal data, or a degree of automation that warrants substantial governance and validation efforts."
	reasoningLeastSevere = "This model has relatively low inherent risk, typically advisory in nature, using public or internal data, and with minimal automation. It requires foundational governance with lighter validation."
)

// RenderRationale produces the assessment narrative: a header with name,
// score, and tier, the non-zero contribution lines in breakdown order, and
// a closing justification paragraph matched to the tier's severity.
func (e *tieringEngine) RenderRationale(model *models.Model, score float64, tier models.Tier, breakdown models.ScoreBreakdown, rubric *models.Rubric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Model: %s\n", model.ModelName)
	fmt.Fprintf(&b, "Calculated Risk Score: %.2f\n", score)
	fmt.Fprintf(&b, "Assigned Risk Tier: %s\n\n", tier.Label)
	b.WriteString("Contribution Breakdown:\n")

	for _, c := range breakdown {
		if c.Contribution <= 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: '%s' (Score: %s, Weight: %s) -> Contribution: %.2f\n",
			factorDisplayName(c.Factor), c.Value, formatNumber(c.UnitScore), formatNumber(c.Weight), c.Contribution)
	}

	fmt.Fprintf(&b, "\n**Reasoning for %s:** %s", tier.Label, reasoningFor(tier, rubric))

	return b.String()
}

// reasoningFor picks the justification paragraph by scale position: the
// most severe tier, the least severe tier, or anything in between.
func reasoningFor(tier models.Tier, rubric *models.Rubric) string {
	n := len(rubric.Thresholds)
	switch {
	case tier.Rank <= rubric.Thresholds[0].Tier.Rank:
		return reasoningMostSevere
	case tier.Rank >= rubric.Thresholds[n-1].Tier.Rank:
		return reasoningLeastSevere
	default:
		return reasoningMiddle
	}
}

// factorDisplayName turns a snake_case factor into a title-cased label,
// e.g. "decision_criticality" -> "Decision Criticality".
func factorDisplayName(factor string) string {
	words := strings.Split(factor, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatNumber renders integral scores and weights without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
