package enhance

import "github.com/spigell/fit-scorer/internal/validation"

// Config bundles the four modifier configurations.
type Config struct {
	DualTrack  DualTrackConfig  `mapstructure:"dual-track"`
	Experience ExperienceConfig `mapstructure:"experience"`
	Complexity ComplexityConfig `mapstructure:"complexity"`
	RoleLevel  RoleLevelConfig  `mapstructure:"role-level"`
}

// Options describes the candidate and the position being targeted.
type Options struct {
	TargetRoleType  RoleType  `validate:"oneof=executive ic hybrid"`
	TargetRoleLevel RoleLevel `validate:"oneof=c_suite senior_executive director_vp senior_ic"`
	YearsExperience int       `validate:"gte=0"`
	ProvenStrengths []string
}

// DefaultOptions targets a senior executive role for a candidate with 20 years
// of experience.
func DefaultOptions() Options {
	return Options{
		TargetRoleType:  Executive,
		TargetRoleLevel: SeniorExecutive,
		YearsExperience: 20,
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	return validation.Struct(o)
}

// Validate checks every modifier configuration.
func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.Complexity.MediumThreshold > c.Complexity.HighThreshold {
		return validation.New("complexity thresholds", "", "medium threshold must not exceed high threshold")
	}
	return nil
}

// DefaultConfig returns a fresh copy of the standard modifier configuration.
func DefaultConfig() Config {
	return Config{
		DualTrack: DualTrackConfig{
			ExecutiveIndicators: Keywords{
				"lead", "strategic", "strategy", "vision", "manage", "oversee",
				"direct", "executive", "board", "stakeholder", "cross-functional",
				"organization", "budget", "p&l", "partnership",
			},
			ICIndicators: Keywords{
				"develop", "implement", "algorithm", "novel", "code", "coding",
				"programming", "build", "design", "hands-on", "analyze", "analysis",
				"research", "experiment", "optimize", "debug",
			},
			Dominance:         1.5,
			AlignedMultiplier: 1.0,
			ICForExecutive:    0.9,
			ExecutiveForIC:    0.8,
		},
		Experience: ExperienceConfig{
			Categories: []CategoryRule{
				{Category: BasicTechnical, Keywords: Keywords{
					"programming", "python", "sql", "coding", "software", "data analysis",
					"statistical", "algorithm", "modeling", "database", "technical",
					"machine learning", "analytics",
				}},
				{Category: Leadership, Keywords: Keywords{
					"lead", "manage", "team", "mentor", "coach", "people", "hire",
					"direct reports", "supervise",
				}},
				{Category: StrategicThinking, Keywords: Keywords{
					"strategic", "strategy", "vision", "roadmap", "planning", "long-term",
				}},
				{Category: Communication, Keywords: Keywords{
					"communicat", "present", "stakeholder", "negotiat", "writing",
					"public speaking", "influence",
				}},
				{Category: DomainExpertise, Keywords: Keywords{
					"domain", "industry", "regulatory", "clinical", "biotech", "pharma",
					"scientific", "bioinformatics", "compliance",
				}},
			},
			Baselines: CategoryBaselines{
				BasicTechnical:    3,
				Leadership:        4,
				StrategicThinking: 4,
				Communication:     4,
				DomainExpertise:   3,
			},
			MinYears:             15,
			BelowBaselinePenalty: 0.7,
			BonusRate:            0.1,
		},
		Complexity: ComplexityConfig{
			Collaboration: Keywords{
				"cross-functional", "collaborat", "coordinat", "partner", "matrix",
				"interdepartmental", "work with",
			},
			DomainBridging: Keywords{
				"chemistry", "biology", "clinical", "multidisciplinary",
				"interdisciplinary", "across disciplines", "business and technical",
				"science and business",
			},
			Translation: Keywords{
				"translat", "bridge", "interpret", "communicate findings",
				"explain complex", "non-technical",
			},
			Integration: Keywords{
				"integrat", "align", "unify", "synthesiz", "harmoniz", "end-to-end",
			},
			HighThreshold:       3,
			MediumThreshold:     1,
			MediumMultiplier:    1.15,
			HighMultiplier:      1.3,
			ProvenStrengthBonus: 0.1,
			ExecutiveRoleBonus:  0.05,
		},
		RoleLevel: RoleLevelConfig{
			CSuite: CategoryWeights{
				BasicTechnical:    0.6,
				Leadership:        1.3,
				StrategicThinking: 1.4,
				Communication:     1.2,
				DomainExpertise:   1.0,
			},
			SeniorExecutive: CategoryWeights{
				BasicTechnical:    0.8,
				Leadership:        1.2,
				StrategicThinking: 1.3,
				Communication:     1.2,
				DomainExpertise:   1.1,
			},
			DirectorVP: CategoryWeights{
				BasicTechnical:    1.2,
				Leadership:        1.1,
				StrategicThinking: 1.0,
				Communication:     1.1,
				DomainExpertise:   1.2,
			},
			SeniorIC: CategoryWeights{
				BasicTechnical:    1.3,
				Leadership:        0.8,
				StrategicThinking: 0.8,
				Communication:     1.0,
				DomainExpertise:   1.4,
			},
		},
	}
}
