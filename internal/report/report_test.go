package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/fit-scorer/internal/enhance"
	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/validation"
)

func TestVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  *scoring.Result
		want Tier
	}{
		{name: "core gap overrides fit", res: &scoring.Result{CoreGap: true, PctFit: 0.95}, want: TierCriticalGap},
		{name: "excellent boundary", res: &scoring.Result{PctFit: 0.80}, want: TierExcellent},
		{name: "good", res: &scoring.Result{PctFit: 0.7}, want: TierGood},
		{name: "possible boundary", res: &scoring.Result{PctFit: 0.50}, want: TierPossible},
		{name: "significant", res: &scoring.Result{PctFit: 0.49}, want: TierSignificant},
		{name: "rounds up to excellent", res: &scoring.Result{PctFit: 0.7996}, want: TierExcellent},
		{name: "rounds up to good", res: &scoring.Result{PctFit: 0.6496}, want: TierGood},
		{name: "rounds up to possible", res: &scoring.Result{PctFit: 0.4996}, want: TierPossible},
		{name: "stays below excellent", res: &scoring.Result{PctFit: 0.7949}, want: TierGood},
		{name: "nil", res: nil, want: TierSignificant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Verdict(tt.res)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.Guidance())
			assert.Len(t, got.NextSteps(), 2)
		})
	}
}

func TestBuildVerdictMatchesDisplayedFit(t *testing.T) {
	t.Parallel()

	r, err := Build(&scoring.Result{PctFit: 0.7996, CoreGapSkills: []scoring.CoreGapSkill{}}, Meta{})
	require.NoError(t, err)

	assert.InDelta(t, 0.80, r.Metrics.PctFit, 1e-9)
	assert.Equal(t, TierExcellent, r.Verdict)
}

func sampleResult() *scoring.Result {
	return &scoring.Result{
		CoreGap: true,
		CoreGapSkills: []scoring.CoreGapSkill{
			{Requirement: "Go", Classification: scoring.Important, SelfScore: 0, Threshold: 1, Severity: scoring.SeverityMedium},
			{Requirement: "Kubernetes", Classification: scoring.Essential, SelfScore: 1, Threshold: 2, Severity: scoring.SeverityHigh},
		},
		ActualPoints: 1.23456,
		MaxPoints:    3,
		PctFit:       0.41152,
		Rows: []scoring.RowResult{
			{Requirement: "Go", Classification: scoring.Important},
		},
		Capping: scoring.CapSummary{CorePoints: 4.444, BonusPoints: 0.5, Allowed: 1.111, Factor: 1},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	statuses := []enhance.Status{{Name: enhance.NameDualTrack, Enabled: true}}

	r, err := Build(sampleResult(), Meta{RunID: "run-1", Source: "skills.csv", GeneratedAt: at, Enhancements: statuses})
	require.NoError(t, err)

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, at, r.GeneratedAt)
	assert.Equal(t, TierCriticalGap, r.Verdict)
	assert.InDelta(t, 1.23, r.Metrics.ActualPoints, 1e-9)
	assert.InDelta(t, 0.41, r.Metrics.PctFit, 1e-9)
	assert.InDelta(t, 41.2, r.Metrics.Percent, 1e-9)
	assert.InDelta(t, 4.44, r.Capping.CorePoints, 1e-9)
	assert.Equal(t, "Kubernetes", r.Gaps[0].Requirement, "gaps are ordered by severity")
	assert.Equal(t, map[scoring.Classification]int{scoring.Essential: 1, scoring.Important: 1}, r.GapCounts)
	assert.Equal(t, statuses, r.Enhancements)
	assert.Nil(t, r.Rows)
	assert.Contains(t, r.Summary(), "Critical gap")
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	r, err := Build(&scoring.Result{CoreGapSkills: []scoring.CoreGapSkill{}}, Meta{IncludeRows: true})
	require.NoError(t, err)

	_, err = uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Nil(t, r.GapCounts)
	assert.NotNil(t, r.Gaps)
	assert.Equal(t, TierSignificant, r.Verdict)

	_, err = Build(nil, Meta{})
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	r, err := Build(sampleResult(), Meta{RunID: "run-json", IncludeRows: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-json", decoded["run_id"])
	assert.Equal(t, string(TierCriticalGap), decoded["verdict"])
	assert.Len(t, decoded["rows"], 1)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	r, err := Build(sampleResult(), Meta{RunID: "run-yaml"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatYAML))
	assert.True(t, strings.Contains(buf.String(), "run_id: run-yaml"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["core_gap"])
}

func TestWriteRejectsText(t *testing.T) {
	t.Parallel()

	r, err := Build(sampleResult(), Meta{})
	require.NoError(t, err)

	err = r.Write(&bytes.Buffer{}, FormatText)
	assert.True(t, errors.Is(err, validation.ErrInvalid))
}

func TestToFileAndDump(t *testing.T) {
	t.Parallel()

	r, err := Build(sampleResult(), Meta{RunID: "run-file"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 10000), 0o600))
	require.NoError(t, r.ToFile(path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data), "existing content is replaced")

	name, err := r.DumpToTmpFile(FormatYAML)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })
	assert.True(t, strings.HasSuffix(name, ".yaml"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, validation.ErrInvalid)
}
