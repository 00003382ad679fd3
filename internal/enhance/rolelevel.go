package enhance

import (
	"strings"

	"github.com/spigell/fit-scorer/internal/validation"
)

// RoleLevel is the seniority of the target position.
type RoleLevel string

const (
	CSuite          RoleLevel = "c_suite"
	SeniorExecutive RoleLevel = "senior_executive"
	DirectorVP      RoleLevel = "director_vp"
	SeniorIC        RoleLevel = "senior_ic"
)

// ParseRoleLevel accepts one of the four known role levels.
func ParseRoleLevel(s string) (RoleLevel, error) {
	switch RoleLevel(strings.ToLower(strings.TrimSpace(s))) {
	case CSuite:
		return CSuite, nil
	case SeniorExecutive:
		return SeniorExecutive, nil
	case DirectorVP:
		return DirectorVP, nil
	case SeniorIC:
		return SeniorIC, nil
	}
	return "", validation.New("target role level", s, "must be one of c_suite, senior_executive, director_vp, senior_ic")
}

// CategoryWeights is a per-category multiplier vector.
type CategoryWeights struct {
	BasicTechnical    float64 `mapstructure:"basic-technical" validate:"gt=0"`
	Leadership        float64 `mapstructure:"leadership" validate:"gt=0"`
	StrategicThinking float64 `mapstructure:"strategic-thinking" validate:"gt=0"`
	Communication     float64 `mapstructure:"communication" validate:"gt=0"`
	DomainExpertise   float64 `mapstructure:"domain-expertise" validate:"gt=0"`
}

// Of returns the weight for cat, or 1.0 for an unknown category.
func (w CategoryWeights) Of(cat SkillCategory) float64 {
	switch cat {
	case BasicTechnical:
		return w.BasicTechnical
	case Leadership:
		return w.Leadership
	case StrategicThinking:
		return w.StrategicThinking
	case Communication:
		return w.Communication
	case DomainExpertise:
		return w.DomainExpertise
	}
	return 1.0
}

// RoleLevelConfig holds one weight vector per role level.
type RoleLevelConfig struct {
	CSuite          CategoryWeights `mapstructure:"c-suite"`
	SeniorExecutive CategoryWeights `mapstructure:"senior-executive"`
	DirectorVP      CategoryWeights `mapstructure:"director-vp"`
	SeniorIC        CategoryWeights `mapstructure:"senior-ic"`
}

// Weights returns the vector for level. Unknown levels get the senior executive vector.
func (c RoleLevelConfig) Weights(level RoleLevel) CategoryWeights {
	switch level {
	case CSuite:
		return c.CSuite
	case DirectorVP:
		return c.DirectorVP
	case SeniorIC:
		return c.SeniorIC
	default:
		return c.SeniorExecutive
	}
}

// RoleLevelModifier looks up the category weight for the target level.
// Uncategorised skills are neutral.
func RoleLevelModifier(cat SkillCategory, categorized bool, level RoleLevel, cfg RoleLevelConfig) float64 {
	if !categorized {
		return 1.0
	}
	return cfg.Weights(level).Of(cat)
}
