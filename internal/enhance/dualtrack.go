package enhance

import (
	"strings"

	"github.com/spigell/fit-scorer/internal/validation"
)

// RoleType is the executive/individual-contributor flavour of a role or requirement.
type RoleType string

const (
	Executive RoleType = "executive"
	IC        RoleType = "ic"
	Hybrid    RoleType = "hybrid"
)

// ParseRoleType accepts executive, ic or hybrid in any letter case.
func ParseRoleType(s string) (RoleType, error) {
	switch RoleType(strings.ToLower(strings.TrimSpace(s))) {
	case Executive:
		return Executive, nil
	case IC:
		return IC, nil
	case Hybrid:
		return Hybrid, nil
	}
	return "", validation.New("target role type", s, "must be one of executive, ic, hybrid")
}

// DualTrackConfig configures requirement-type detection and mismatch penalties.
// Dominance is how many times more indicator matches one side needs over the
// other before the requirement is typed as that side.
type DualTrackConfig struct {
	ExecutiveIndicators Keywords `mapstructure:"executive-indicators" validate:"dive,required"`
	ICIndicators        Keywords `mapstructure:"ic-indicators" validate:"dive,required"`
	Dominance           float64  `mapstructure:"dominance" validate:"gte=1"`
	AlignedMultiplier   float64  `mapstructure:"aligned-multiplier" validate:"gt=0"`
	ICForExecutive      float64  `mapstructure:"ic-for-executive" validate:"gt=0,lte=1"`
	ExecutiveForIC      float64  `mapstructure:"executive-for-ic" validate:"gt=0,lte=1"`
}

// ClassifyRequirement decides whether a requirement reads as executive work,
// IC work, or neither dominates.
func ClassifyRequirement(text string, cfg DualTrackConfig) RoleType {
	execCount := float64(cfg.ExecutiveIndicators.Count(text))
	icCount := float64(cfg.ICIndicators.Count(text))

	switch {
	case execCount > icCount*cfg.Dominance:
		return Executive
	case icCount > execCount*cfg.Dominance:
		return IC
	default:
		return Hybrid
	}
}

// DualTrackModifier de-emphasises requirements whose type contradicts the
// target role. Aligned and hybrid combinations are neutral.
func DualTrackModifier(requirement, target RoleType, cfg DualTrackConfig) float64 {
	switch {
	case requirement == IC && target == Executive:
		return cfg.ICForExecutive
	case requirement == Executive && target == IC:
		return cfg.ExecutiveForIC
	default:
		return cfg.AlignedMultiplier
	}
}
