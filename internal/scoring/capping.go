package scoring

// CapSummary records how the bonus cap was evaluated for a row set.
type CapSummary struct {
	CorePoints  float64 `json:"core_points" yaml:"core_points"`
	BonusPoints float64 `json:"bonus_points" yaml:"bonus_points"`
	Allowed     float64 `json:"allowed" yaml:"allowed"`
	Factor      float64 `json:"factor" yaml:"factor"`
	Applied     bool    `json:"applied" yaml:"applied"`
}

// CapBonus limits the combined raw score of bonus rows (Desirable, Implicit)
// to BonusCap times the core rows' raw score. When the limit is exceeded every
// bonus row is scaled by the same factor, so their ranking is preserved.
// The input slice is not modified.
func (c Config) CapBonus(rows []RowResult) ([]RowResult, CapSummary) {
	out := make([]RowResult, len(rows))
	copy(out, rows)

	summary := CapSummary{Factor: 1}
	for _, row := range out {
		if row.Classification.IsCore() {
			summary.CorePoints += row.RawScore
		} else {
			summary.BonusPoints += row.RawScore
		}
	}
	summary.Allowed = summary.CorePoints * c.BonusCap

	if summary.BonusPoints <= summary.Allowed || summary.BonusPoints <= 0 {
		return out, summary
	}

	summary.Factor = summary.Allowed / summary.BonusPoints
	summary.Applied = true

	for i := range out {
		if out[i].Classification.IsCore() {
			continue
		}
		out[i].RawScore *= summary.Factor
		out[i].NormalizedScore = c.normalize(out[i].RawScore)
		out[i].Capped = true
	}

	return out, summary
}
