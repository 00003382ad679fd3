package scoring

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/fit-scorer/internal/enhance"
)

// Result is the outcome of scoring one skill matrix.
type Result struct {
	CoreGap       bool           `json:"core_gap" yaml:"core_gap"`
	CoreGapSkills []CoreGapSkill `json:"core_gap_skills" yaml:"core_gap_skills"`
	ActualPoints  float64        `json:"actual_points" yaml:"actual_points"`
	MaxPoints     float64        `json:"max_points" yaml:"max_points"`
	PctFit        float64        `json:"pct_fit" yaml:"pct_fit"`
	Rows          []RowResult    `json:"rows" yaml:"rows"`
	Capping       CapSummary     `json:"capping" yaml:"capping"`
}

// Engine scores skill matrices against an immutable configuration. It is
// safe for concurrent use.
type Engine struct {
	cfg   Config
	chain *enhance.Chain
}

// NewEngine validates cfg and returns an engine. A nil chain disables the
// enhancement modifiers and produces baseline scores.
func NewEngine(cfg Config, chain *enhance.Chain) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg.clone(), chain: chain}, nil
}

// Config returns a copy of the engine's scoring configuration.
func (e *Engine) Config() Config { return e.cfg.clone() }

// Enhanced reports whether the engine applies enhancement modifiers.
func (e *Engine) Enhanced() bool { return e.chain != nil }

// Score runs the full pipeline. Rows are scored independently in parallel;
// bonus capping and aggregation run once every row is done.
func (e *Engine) Score(reqs []Requirement) (*Result, error) {
	for i, req := range reqs {
		if !req.Classification.Valid() {
			return nil, fmt.Errorf("requirement %d: %w", i+1, invalidClassification(req.Classification))
		}
	}

	rows := make([]RowResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reqs {
		g.Go(func() error {
			row, err := e.cfg.ScoreRowEnhanced(reqs[i], e.chain)
			if err != nil {
				return fmt.Errorf("requirement %d: %w", i+1, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	capped, summary := e.cfg.CapBonus(rows)

	gaps, err := e.cfg.DetectGaps(reqs)
	if err != nil {
		return nil, err
	}

	actual, maxPoints := Aggregate(capped)

	return &Result{
		CoreGap:       len(gaps) > 0,
		CoreGapSkills: gaps,
		ActualPoints:  actual,
		MaxPoints:     maxPoints,
		PctFit:        PctFit(actual, maxPoints),
		Rows:          capped,
		Capping:       summary,
	}, nil
}

// Aggregate sums normalized row scores. Each row contributes at most 1.0 to
// the maximum, so maxPoints equals the row count.
func Aggregate(rows []RowResult) (actual, maxPoints float64) {
	for _, row := range rows {
		actual += row.NormalizedScore
	}
	return actual, float64(len(rows))
}

// PctFit divides actual by maximum points, returning 0 for an empty matrix.
func PctFit(actual, maxPoints float64) float64 {
	if maxPoints <= 0 {
		return 0
	}
	return actual / maxPoints
}
