// Package report turns a scoring result into a verdict with next steps and
// exports it as JSON or YAML.
package report

import (
	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/utils"
)

// Tier is the overall verdict of a scoring run.
type Tier string

const (
	TierCriticalGap Tier = "Critical gap"
	TierExcellent   Tier = "Excellent match"
	TierGood        Tier = "Good match (minor gaps)"
	TierPossible    Tier = "Possible match"
	TierSignificant Tier = "Significant gaps"
)

const (
	excellentFit = 0.80
	goodFit      = 0.65
	possibleFit  = 0.50
)

// Verdict picks the tier for a result from the fit rounded the way the report
// displays it. A core gap overrides the fit percentage.
func Verdict(res *scoring.Result) Tier {
	if res == nil {
		return TierSignificant
	}
	if res.CoreGap {
		return TierCriticalGap
	}

	switch pct := utils.Round(res.PctFit, precision); {
	case pct >= excellentFit:
		return TierExcellent
	case pct >= goodFit:
		return TierGood
	case pct >= possibleFit:
		return TierPossible
	default:
		return TierSignificant
	}
}

// Guidance is a one-line recommendation for the tier.
func (t Tier) Guidance() string {
	switch t {
	case TierCriticalGap:
		return "Address the core gaps before applying; the fit percentage is misleading while they remain."
	case TierExcellent:
		return "Excellent overall fit: apply immediately and emphasize strengths."
	case TierGood:
		return "Good fit with minor gaps: apply and line up examples or quick up-skilling."
	case TierPossible:
		return "Possible fit with several gaps: decide whether to apply now or build skills first."
	default:
		return "Significant gaps: up-skill before investing in an application."
	}
}

// NextSteps lists concrete actions for the tier.
func (t Tier) NextSteps() []string {
	switch t {
	case TierCriticalGap:
		return []string{
			"Focus on closing the core gap skills listed in this report.",
			"Re-evaluate after addressing these critical skills.",
		}
	case TierExcellent:
		return []string{
			"Apply immediately.",
			"Prepare to highlight your strengths in these areas.",
		}
	case TierGood:
		return []string{
			"Apply with confidence.",
			"Prepare interview examples that address the minor gaps.",
		}
	case TierPossible:
		return []string{
			"Consider whether to apply now or build skills first.",
			"If applying now, be prepared to discuss your development plan.",
		}
	default:
		return []string{
			"Focus on skill development before applying.",
			"Target the Essential and Important items with low self-scores.",
		}
	}
}
