package scoring

import (
	"fmt"
	"sort"
)

// Severity ranks how far below its threshold a core gap sits.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	}
	return 2
}

// CoreGapSkill is a requirement whose self-score is at or below its
// classification's gap threshold.
type CoreGapSkill struct {
	Requirement    string         `json:"requirement" yaml:"requirement"`
	Classification Classification `json:"classification" yaml:"classification"`
	SelfScore      int            `json:"self_score" yaml:"self_score"`
	Threshold      int            `json:"threshold" yaml:"threshold"`
	Severity       Severity       `json:"severity" yaml:"severity"`
}

// SeverityOf grades a gap: Essential at 0-1 is High and at 2 Medium,
// Important at 0 is Medium, anything else Low.
func SeverityOf(c Classification, selfScore int) Severity {
	switch {
	case c == Essential && selfScore <= 1:
		return SeverityHigh
	case c == Essential && selfScore == 2:
		return SeverityMedium
	case c == Important && selfScore == 0:
		return SeverityMedium
	}
	return SeverityLow
}

// DetectGaps returns the core gaps of reqs in input order. It looks at the
// clamped self-score only, so bonus capping never affects it.
func (c Config) DetectGaps(reqs []Requirement) ([]CoreGapSkill, error) {
	gaps := make([]CoreGapSkill, 0)
	for i, req := range reqs {
		if !req.Classification.Valid() {
			return nil, fmt.Errorf("requirement %d: %w", i+1, invalidClassification(req.Classification))
		}

		threshold := c.GapThresholds.Of(req.Classification)
		if threshold <= 0 {
			continue
		}

		score := c.ClampSelfScore(req.SelfScore)
		if score > threshold {
			continue
		}

		gaps = append(gaps, CoreGapSkill{
			Requirement:    req.Text,
			Classification: req.Classification,
			SelfScore:      score,
			Threshold:      threshold,
			Severity:       SeverityOf(req.Classification, score),
		})
	}
	return gaps, nil
}

// SortBySeverity returns a copy of gaps ordered High, Medium, Low. Gaps of
// equal severity keep their relative order.
func SortBySeverity(gaps []CoreGapSkill) []CoreGapSkill {
	sorted := make([]CoreGapSkill, len(gaps))
	copy(sorted, gaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.rank() < sorted[j].Severity.rank()
	})
	return sorted
}

// CountByClassification tallies gaps per classification.
func CountByClassification(gaps []CoreGapSkill) map[Classification]int {
	counts := make(map[Classification]int)
	for _, gap := range gaps {
		counts[gap.Classification]++
	}
	return counts
}
