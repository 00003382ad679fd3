package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/spigell/fit-scorer/internal/enhance"
	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/utils"
	"github.com/spigell/fit-scorer/internal/validation"
)

const precision = 2

// Format is an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", validation.New("output format", s, "must be one of text, json, yaml")
}

// Meta carries run context that the engine does not know about.
type Meta struct {
	RunID        string
	Source       string
	GeneratedAt  time.Time
	Enhancements []enhance.Status
	IncludeRows  bool
}

// Metrics are the headline numbers, rounded for display.
type Metrics struct {
	ActualPoints float64 `json:"actual_points" yaml:"actual_points"`
	MaxPoints    float64 `json:"max_points" yaml:"max_points"`
	PctFit       float64 `json:"pct_fit" yaml:"pct_fit"`
	Percent      float64 `json:"percent" yaml:"percent"`
}

// Report is the exported form of one scoring run.
type Report struct {
	RunID        string                         `json:"run_id" yaml:"run_id"`
	Source       string                         `json:"source,omitempty" yaml:"source,omitempty"`
	GeneratedAt  time.Time                      `json:"generated_at" yaml:"generated_at"`
	Verdict      Tier                           `json:"verdict" yaml:"verdict"`
	Guidance     string                         `json:"guidance" yaml:"guidance"`
	NextSteps    []string                       `json:"next_steps" yaml:"next_steps"`
	CoreGap      bool                           `json:"core_gap" yaml:"core_gap"`
	Metrics      Metrics                        `json:"metrics" yaml:"metrics"`
	GapCounts    map[scoring.Classification]int `json:"gap_counts,omitempty" yaml:"gap_counts,omitempty"`
	Gaps         []scoring.CoreGapSkill         `json:"gaps" yaml:"gaps"`
	Capping      scoring.CapSummary             `json:"capping" yaml:"capping"`
	Enhancements []enhance.Status               `json:"enhancements,omitempty" yaml:"enhancements,omitempty"`
	Rows         []scoring.RowResult            `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Build assembles a report. Gaps are ordered by severity and metrics rounded
// to two decimals. Missing run id and timestamp are filled in.
func Build(res *scoring.Result, meta Meta) (*Report, error) {
	if res == nil {
		return nil, fmt.Errorf("build report: nil result")
	}

	if meta.RunID == "" {
		meta.RunID = NewRunID()
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}

	tier := Verdict(res)
	r := &Report{
		RunID:       meta.RunID,
		Source:      meta.Source,
		GeneratedAt: meta.GeneratedAt,
		Verdict:     tier,
		Guidance:    tier.Guidance(),
		NextSteps:   tier.NextSteps(),
		CoreGap:     res.CoreGap,
		Metrics: Metrics{
			ActualPoints: utils.Round(res.ActualPoints, precision),
			MaxPoints:    utils.Round(res.MaxPoints, precision),
			PctFit:       utils.Round(res.PctFit, precision),
			Percent:      utils.Round(res.PctFit*100, 1),
		},
		Gaps: scoring.SortBySeverity(res.CoreGapSkills),
		Capping: scoring.CapSummary{
			CorePoints:  utils.Round(res.Capping.CorePoints, precision),
			BonusPoints: utils.Round(res.Capping.BonusPoints, precision),
			Allowed:     utils.Round(res.Capping.Allowed, precision),
			Factor:      utils.Round(res.Capping.Factor, precision),
			Applied:     res.Capping.Applied,
		},
		Enhancements: meta.Enhancements,
	}

	if len(res.CoreGapSkills) > 0 {
		r.GapCounts = scoring.CountByClassification(res.CoreGapSkills)
	}
	if meta.IncludeRows {
		r.Rows = res.Rows
	}

	return r, nil
}

// Summary is a single human-readable line for logs.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %.1f%% fit (%.2f / %.2f points), %d core gap(s)",
		r.Verdict, r.Metrics.Percent, r.Metrics.ActualPoints, r.Metrics.MaxPoints, len(r.Gaps))
}

// Write encodes the report to w. Text format is rejected because text output
// goes through the logger.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return validation.New("output format", string(format), "report can only be written as json or yaml")
}

// ToFile writes the report to path, replacing any existing content.
func (r *Report) ToFile(path string, format Format) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.Write(file, format)
}

// DumpToTmpFile writes the report to a new temporary file and returns its name.
func (r *Report) DumpToTmpFile(format Format) (string, error) {
	file, err := os.CreateTemp("", "fit-report_*."+string(format))
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.Write(file, format); err != nil {
		return "", err
	}
	return file.Name(), nil
}
