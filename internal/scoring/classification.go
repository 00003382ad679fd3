// Package scoring computes a requirement-by-requirement fit score for a skill
// matrix: classification weights, emphasis detection, bonus capping, core gap
// detection and aggregation into a percentage fit.
package scoring

import (
	"strings"

	"github.com/spigell/fit-scorer/internal/validation"
)

// Classification describes how critical a requirement is for the role.
type Classification string

const (
	Essential Classification = "Essential"
	Important Classification = "Important"
	Desirable Classification = "Desirable"
	Implicit  Classification = "Implicit"
)

// Classifications lists every valid classification, most critical first.
func Classifications() []Classification {
	return []Classification{Essential, Important, Desirable, Implicit}
}

// ParseClassification accepts a classification name in any letter case.
func ParseClassification(s string) (Classification, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Classifications() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", invalidClassification(Classification(s))
}

func (c Classification) Valid() bool {
	switch c {
	case Essential, Important, Desirable, Implicit:
		return true
	}
	return false
}

// IsCore reports whether rows of this classification count as core points.
// Everything else is bonus and subject to the bonus cap.
func (c Classification) IsCore() bool {
	return c == Essential || c == Important
}

// Emphasis is a manual override for the emphasis detected from requirement text.
type Emphasis string

const (
	EmphasisAuto Emphasis = ""
	EmphasisHigh Emphasis = "high"
	EmphasisLow  Emphasis = "low"
	EmphasisNone Emphasis = "none"
)

// ParseEmphasis maps an override value to an Emphasis. Blank means detect from text.
func ParseEmphasis(s string) (Emphasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return EmphasisAuto, nil
	case "high":
		return EmphasisHigh, nil
	case "low":
		return EmphasisLow, nil
	case "none", "neutral":
		return EmphasisNone, nil
	}
	return "", validation.New("emphasis override", s, "must be one of high, low, none")
}

// Requirement is one row of the skill matrix.
type Requirement struct {
	Text             string         `json:"requirement" yaml:"requirement"`
	Classification   Classification `json:"classification" yaml:"classification"`
	SelfScore        int            `json:"self_score" yaml:"self_score"`
	Notes            string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	EmphasisOverride Emphasis       `json:"emphasis_override,omitempty" yaml:"emphasis_override,omitempty"`
}

func invalidClassification(c Classification) error {
	return validation.New("classification", string(c), "must be one of Essential, Important, Desirable, Implicit")
}
