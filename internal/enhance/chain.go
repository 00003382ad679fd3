package enhance

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier names accepted by Chain.Disable.
const (
	NameDualTrack       = "dual_track"
	NameExperienceLevel = "experience_level"
	NameCrossFunctional = "cross_functional"
	NameRoleLevel       = "role_level"
)

// Input is what every modifier sees: the requirement text and its clamped,
// unadjusted self-score.
type Input struct {
	Text      string
	SelfScore int
}

// Breakdown records the factors applied to one requirement and the
// classifications that produced them. Disabled modifiers leave their factor at 1.
type Breakdown struct {
	RequirementType  RoleType      `json:"requirement_type,omitempty" yaml:"requirement_type,omitempty"`
	Category         SkillCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Complexity       Level         `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	IndicatorCount   int           `json:"indicator_count" yaml:"indicator_count"`
	ProvenStrength   bool          `json:"proven_strength,omitempty" yaml:"proven_strength,omitempty"`
	DualTrackFactor  float64       `json:"dual_track_factor" yaml:"dual_track_factor"`
	ExperienceFactor float64       `json:"experience_factor" yaml:"experience_factor"`
	ComplexityFactor float64       `json:"complexity_factor" yaml:"complexity_factor"`
	RoleLevelFactor  float64       `json:"role_level_factor" yaml:"role_level_factor"`
}

// Product multiplies the four factors.
func (b Breakdown) Product() float64 {
	return b.DualTrackFactor * b.ExperienceFactor * b.ComplexityFactor * b.RoleLevelFactor
}

// Modifier is one enhancement step applied to every requirement.
type Modifier interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(in Input, b *Breakdown)
}

// Status represents runtime information about a modifier.
type Status struct {
	Name    string            `json:"name" yaml:"name"`
	Enabled bool              `json:"enabled" yaml:"enabled"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// Chain applies the four modifiers in a fixed order. Disable modifiers before
// sharing a chain; Evaluate itself is read-only and safe for concurrent use.
type Chain struct {
	steps []Modifier
}

// NewChain validates the configuration and options and builds the modifier chain.
func NewChain(cfg Config, opts Options) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	strengths := make([]string, 0, len(opts.ProvenStrengths))
	for _, s := range opts.ProvenStrengths {
		if s = strings.TrimSpace(s); s != "" {
			strengths = append(strengths, s)
		}
	}

	return &Chain{steps: []Modifier{
		&dualTrackModifier{cfg: cfg.DualTrack, target: opts.TargetRoleType},
		&experienceModifier{cfg: cfg.Experience, years: opts.YearsExperience},
		&crossFunctionalModifier{cfg: cfg.Complexity, strengths: strengths, executive: opts.TargetRoleType == Executive},
		&roleLevelModifier{cfg: cfg.RoleLevel, categories: cfg.Experience, level: opts.TargetRoleLevel},
	}}, nil
}

// Modifiers returns the chain's steps in application order.
func (c *Chain) Modifiers() []Modifier {
	return append([]Modifier(nil), c.steps...)
}

// Disable switches off the named modifier.
func (c *Chain) Disable(name, reason string) error {
	name = strings.TrimSpace(name)
	for _, step := range c.steps {
		if step.Name() == name {
			DisableByName(c.steps, name, reason)
			return nil
		}
	}
	return fmt.Errorf("unknown modifier %q (known: %s)", name, strings.Join(ModifierNames(), ", "))
}

// Evaluate runs every enabled modifier against in.
func (c *Chain) Evaluate(in Input) Breakdown {
	b := Breakdown{
		DualTrackFactor:  1,
		ExperienceFactor: 1,
		ComplexityFactor: 1,
		RoleLevelFactor:  1,
	}
	for _, step := range c.steps {
		if step.IsEnabled() {
			step.Apply(in, &b)
		}
	}
	return b
}

// Describe returns status entries for the chain's modifiers.
func (c *Chain) Describe() []Status {
	return Describe(c.steps)
}

// ModifierNames lists the modifier names in application order.
func ModifierNames() []string {
	return []string{NameDualTrack, NameExperienceLevel, NameCrossFunctional, NameRoleLevel}
}

// DisableByName marks a modifier with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Modifier, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided modifiers.
func Describe(steps []Modifier) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle carries the enabled state shared by every modifier.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

type dualTrackModifier struct {
	toggle
	cfg    DualTrackConfig
	target RoleType
}

func (m *dualTrackModifier) Name() string { return NameDualTrack }

func (m *dualTrackModifier) Apply(in Input, b *Breakdown) {
	b.RequirementType = ClassifyRequirement(in.Text, m.cfg)
	b.DualTrackFactor = DualTrackModifier(b.RequirementType, m.target, m.cfg)
}

func (m *dualTrackModifier) Status() Status {
	return m.status(m.Name(), map[string]string{"target_role_type": string(m.target)})
}

type experienceModifier struct {
	toggle
	cfg   ExperienceConfig
	years int
}

func (m *experienceModifier) Name() string { return NameExperienceLevel }

func (m *experienceModifier) Apply(in Input, b *Breakdown) {
	cat, ok := CategorizeSkill(in.Text, m.cfg)
	b.Category = cat
	b.ExperienceFactor = ExperienceModifier(cat, ok, in.SelfScore, m.years, m.cfg)
}

func (m *experienceModifier) Status() Status {
	details := map[string]string{
		"years_experience": strconv.Itoa(m.years),
		"min_years":        strconv.Itoa(m.cfg.MinYears),
	}
	st := m.status(m.Name(), details)
	if st.Enabled && m.years < m.cfg.MinYears {
		st.Reason = "below minimum years, factor stays neutral"
	}
	return st
}

type crossFunctionalModifier struct {
	toggle
	cfg       ComplexityConfig
	strengths []string
	executive bool
}

func (m *crossFunctionalModifier) Name() string { return NameCrossFunctional }

func (m *crossFunctionalModifier) Apply(in Input, b *Breakdown) {
	level, count := AssessComplexity(in.Text, m.cfg)
	proven := MatchesProvenStrength(in.Text, m.strengths)
	b.Complexity = level
	b.IndicatorCount = count
	b.ProvenStrength = proven
	b.ComplexityFactor = ComplexityModifier(level, proven, m.executive, m.cfg)
}

func (m *crossFunctionalModifier) Status() Status {
	details := map[string]string{"executive_role": strconv.FormatBool(m.executive)}
	if len(m.strengths) > 0 {
		details["proven_strengths"] = strings.Join(m.strengths, ",")
	}
	return m.status(m.Name(), details)
}

type roleLevelModifier struct {
	toggle
	cfg        RoleLevelConfig
	categories ExperienceConfig
	level      RoleLevel
}

func (m *roleLevelModifier) Name() string { return NameRoleLevel }

func (m *roleLevelModifier) Apply(in Input, b *Breakdown) {
	cat, ok := CategorizeSkill(in.Text, m.categories)
	if ok {
		b.Category = cat
	}
	b.RoleLevelFactor = RoleLevelModifier(cat, ok, m.level, m.cfg)
}

func (m *roleLevelModifier) Status() Status {
	return m.status(m.Name(), map[string]string{"target_role_level": string(m.level)})
}
