package models

// Tier is one level of the ordered risk scale. Rank orders tiers by
// severity, lower rank means more severe. Label is display-only and is
// never parsed for ordering.
type Tier struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Label string `json:"label" yaml:"label"`
}

// String returns the display label.
func (t Tier) String() string {
	return t.Label
}

// MoreSevereThan reports whether t outranks other on the risk scale.
func (t Tier) MoreSevereThan(other Tier) bool {
	return t.Rank < other.Rank
}
