package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/fit-scorer/internal/validation"
)

// ClassWeights maps every classification to its weight.
type ClassWeights struct {
	Essential float64 `mapstructure:"essential" validate:"gte=0"`
	Important float64 `mapstructure:"important" validate:"gte=0"`
	Desirable float64 `mapstructure:"desirable" validate:"gte=0"`
	Implicit  float64 `mapstructure:"implicit" validate:"gte=0"`
}

// Of returns the weight for c.
func (w ClassWeights) Of(c Classification) (float64, error) {
	switch c {
	case Essential:
		return w.Essential, nil
	case Important:
		return w.Important, nil
	case Desirable:
		return w.Desirable, nil
	case Implicit:
		return w.Implicit, nil
	}
	return 0, validation.New("classification", string(c), "has no weight")
}

// Max returns the largest weight in the table.
func (w ClassWeights) Max() float64 {
	return max(w.Essential, w.Important, w.Desirable, w.Implicit)
}

// GapThresholds holds the self-score at or below which a requirement is a core gap.
// Zero disables gap detection for that classification.
type GapThresholds struct {
	Essential int `mapstructure:"essential" validate:"gte=0"`
	Important int `mapstructure:"important" validate:"gte=0"`
	Desirable int `mapstructure:"desirable" validate:"gte=0"`
	Implicit  int `mapstructure:"implicit" validate:"gte=0"`
}

// Of returns the gap threshold for c.
func (t GapThresholds) Of(c Classification) int {
	switch c {
	case Essential:
		return t.Essential
	case Important:
		return t.Important
	case Desirable:
		return t.Desirable
	case Implicit:
		return t.Implicit
	}
	return 0
}

// EmphasisConfig holds the keyword cues and the modifier each one triggers.
type EmphasisConfig struct {
	High         []string `mapstructure:"high" validate:"dive,required"`
	Low          []string `mapstructure:"low" validate:"dive,required"`
	HighModifier float64  `mapstructure:"high-modifier" validate:"gte=0"`
	LowModifier  float64  `mapstructure:"low-modifier" validate:"lte=0,gte=-1"`
}

// Config is the immutable scoring configuration. Callers obtain one from
// DefaultConfig and adjust fields before passing it to NewEngine.
type Config struct {
	Weights       ClassWeights   `mapstructure:"weights"`
	GapThresholds GapThresholds  `mapstructure:"gap-thresholds"`
	Emphasis      EmphasisConfig `mapstructure:"emphasis"`
	BonusCap      float64        `mapstructure:"bonus-cap" validate:"gte=0,lte=1"`
	MaxSelfScore  int            `mapstructure:"max-self-score" validate:"gt=0"`
}

// DefaultConfig returns a fresh copy of the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: ClassWeights{
			Essential: 3.0,
			Important: 2.0,
			Desirable: 1.0,
			Implicit:  0.5,
		},
		GapThresholds: GapThresholds{
			Essential: 2,
			Important: 1,
		},
		Emphasis: EmphasisConfig{
			High: []string{
				"expert", "extensive", "strong", "proven", "deep", "comprehensive",
				"advanced", "thorough", "significant", "considerable", "demonstrated",
				"extensively", "expertise", "mastery", "proficiency", "fluent",
			},
			Low: []string{
				"basic", "familiarity", "familiar", "awareness", "aware", "some",
				"knowledge of", "understanding of", "exposure to", "introduction",
				"fundamental", "beginner", "novice", "entry-level", "basic understanding",
			},
			HighModifier: 0.5,
			LowModifier:  -0.5,
		},
		BonusCap:     0.25,
		MaxSelfScore: 5,
	}
}

// Validate rejects internally inconsistent configuration values.
func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.GapThresholds.Essential > c.MaxSelfScore || c.GapThresholds.Important > c.MaxSelfScore {
		return validation.New("gap thresholds", "", fmt.Sprintf("must not exceed max self-score %d", c.MaxSelfScore))
	}
	return nil
}

// clone returns a copy that shares no keyword slices with c.
func (c Config) clone() Config {
	c.Emphasis.High = slices.Clone(c.Emphasis.High)
	c.Emphasis.Low = slices.Clone(c.Emphasis.Low)
	return c
}

// TheoreticalMaxRowScore is the raw score of a top-weighted, high-emphasis row
// at the maximum self-score. Normalized scores are relative to it.
func (c Config) TheoreticalMaxRowScore() float64 {
	return c.Weights.Max() * (1 + c.Emphasis.HighModifier) * float64(c.MaxSelfScore)
}

// ClampSelfScore forces a self-assessment into [0, MaxSelfScore].
func (c Config) ClampSelfScore(score int) int {
	return min(max(score, 0), c.MaxSelfScore)
}

// EmphasisOf detects the emphasis modifier of a requirement text.
// High emphasis wins when both high and low cues are present.
func (c Config) EmphasisOf(text string) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}
	if containsAny(lower, c.Emphasis.High) {
		return c.Emphasis.HighModifier
	}
	if containsAny(lower, c.Emphasis.Low) {
		return c.Emphasis.LowModifier
	}
	return 0
}

// ResolveEmphasis applies the requirement's manual override, falling back to
// text detection.
func (c Config) ResolveEmphasis(req Requirement) float64 {
	switch req.EmphasisOverride {
	case EmphasisHigh:
		return c.Emphasis.HighModifier
	case EmphasisLow:
		return c.Emphasis.LowModifier
	case EmphasisNone:
		return 0
	}
	return c.EmphasisOf(req.Text)
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
