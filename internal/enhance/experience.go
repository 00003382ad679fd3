package enhance

// SkillCategory groups requirements for experience and role-level calibration.
type SkillCategory string

const (
	BasicTechnical    SkillCategory = "basic_technical"
	Leadership        SkillCategory = "leadership"
	StrategicThinking SkillCategory = "strategic_thinking"
	Communication     SkillCategory = "communication"
	DomainExpertise   SkillCategory = "domain_expertise"
)

// CategoryRule ties a category to the keywords that select it.
type CategoryRule struct {
	Category SkillCategory `mapstructure:"category" validate:"oneof=basic_technical leadership strategic_thinking communication domain_expertise"`
	Keywords Keywords      `mapstructure:"keywords" validate:"dive,required"`
}

// CategoryBaselines is the self-score a senior candidate is expected to reach
// in each category.
type CategoryBaselines struct {
	BasicTechnical    int `mapstructure:"basic-technical" validate:"gte=0"`
	Leadership        int `mapstructure:"leadership" validate:"gte=0"`
	StrategicThinking int `mapstructure:"strategic-thinking" validate:"gte=0"`
	Communication     int `mapstructure:"communication" validate:"gte=0"`
	DomainExpertise   int `mapstructure:"domain-expertise" validate:"gte=0"`
}

// Of returns the baseline for cat.
func (b CategoryBaselines) Of(cat SkillCategory) int {
	switch cat {
	case BasicTechnical:
		return b.BasicTechnical
	case Leadership:
		return b.Leadership
	case StrategicThinking:
		return b.StrategicThinking
	case Communication:
		return b.Communication
	case DomainExpertise:
		return b.DomainExpertise
	}
	return 0
}

// ExperienceConfig configures skill categorisation and seniority calibration.
// Categories are tried in order and the first rule with a matching keyword wins.
type ExperienceConfig struct {
	Categories           []CategoryRule    `mapstructure:"categories" validate:"dive"`
	Baselines            CategoryBaselines `mapstructure:"baselines"`
	MinYears             int               `mapstructure:"min-years" validate:"gte=0"`
	BelowBaselinePenalty float64           `mapstructure:"below-baseline-penalty" validate:"gt=0,lte=1"`
	BonusRate            float64           `mapstructure:"bonus-rate" validate:"gte=0"`
}

// CategorizeSkill returns the first category whose keywords occur in text.
func CategorizeSkill(text string, cfg ExperienceConfig) (SkillCategory, bool) {
	for _, rule := range cfg.Categories {
		if rule.Keywords.Any(text) {
			return rule.Category, true
		}
	}
	return "", false
}

// ExperienceModifier calibrates a self-score against the senior baseline of
// its category. Candidates below MinYears and uncategorised skills are left
// untouched.
func ExperienceModifier(cat SkillCategory, categorized bool, selfScore, years int, cfg ExperienceConfig) float64 {
	if !categorized || years < cfg.MinYears {
		return 1.0
	}

	baseline := cfg.Baselines.Of(cat)
	if selfScore < baseline {
		return cfg.BelowBaselinePenalty
	}
	return 1.0 + float64(selfScore-baseline)*cfg.BonusRate
}
