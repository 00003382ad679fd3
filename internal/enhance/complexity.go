package enhance

import "strings"

// Level is the cross-functional complexity of a requirement.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ComplexityConfig configures cross-functional indicator detection. The level
// multipliers replace the neutral 1.0; the bonuses are added on top.
type ComplexityConfig struct {
	Collaboration       Keywords `mapstructure:"collaboration" validate:"dive,required"`
	DomainBridging      Keywords `mapstructure:"domain-bridging" validate:"dive,required"`
	Translation         Keywords `mapstructure:"translation" validate:"dive,required"`
	Integration         Keywords `mapstructure:"integration" validate:"dive,required"`
	HighThreshold       int      `mapstructure:"high-threshold" validate:"gte=1,lte=4"`
	MediumThreshold     int      `mapstructure:"medium-threshold" validate:"gte=1,lte=4"`
	MediumMultiplier    float64  `mapstructure:"medium-multiplier" validate:"gt=0"`
	HighMultiplier      float64  `mapstructure:"high-multiplier" validate:"gt=0"`
	ProvenStrengthBonus float64  `mapstructure:"proven-strength-bonus" validate:"gte=0"`
	ExecutiveRoleBonus  float64  `mapstructure:"executive-role-bonus" validate:"gte=0"`
}

// AssessComplexity counts how many indicator categories occur in text (0-4)
// and maps the count to a level.
func AssessComplexity(text string, cfg ComplexityConfig) (Level, int) {
	count := 0
	for _, set := range []Keywords{cfg.Collaboration, cfg.DomainBridging, cfg.Translation, cfg.Integration} {
		if set.Any(text) {
			count++
		}
	}

	switch {
	case count >= cfg.HighThreshold:
		return LevelHigh, count
	case count >= cfg.MediumThreshold:
		return LevelMedium, count
	default:
		return LevelLow, count
	}
}

// ComplexityModifier returns the level multiplier plus the proven-strength and
// executive-role bonuses. The result is not clamped.
func ComplexityModifier(level Level, provenStrength, executiveRole bool, cfg ComplexityConfig) float64 {
	multiplier := 1.0
	switch level {
	case LevelHigh:
		multiplier = cfg.HighMultiplier
	case LevelMedium:
		multiplier = cfg.MediumMultiplier
	}

	if provenStrength {
		multiplier += cfg.ProvenStrengthBonus
	}
	if executiveRole {
		multiplier += cfg.ExecutiveRoleBonus
	}
	return multiplier
}

// MatchesProvenStrength reports whether any caller-supplied strength occurs in text.
func MatchesProvenStrength(text string, strengths []string) bool {
	lower := strings.ToLower(text)
	for _, s := range strengths {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
