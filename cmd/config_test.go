package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fit-scorer/internal/enhance"
	"github.com/spigell/fit-scorer/internal/report"
	"github.com/spigell/fit-scorer/internal/validation"
)

func newViper(t *testing.T, yamlConfig string) *viper.Viper {
	t.Helper()

	v := viper.New()
	setupEnv(v)
	setDefaults(v)

	if yamlConfig != "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(yamlConfig)); err != nil {
			t.Fatalf("reading config: %v", err)
		}
	}
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(newViper(t, ""))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if config.Scoring.Weights.Essential != 3 || config.Scoring.BonusCap != 0.25 {
		t.Fatalf("unexpected scoring defaults: %+v", config.Scoring)
	}
	if len(config.Scoring.Emphasis.High) == 0 {
		t.Fatalf("expected default emphasis keywords")
	}
	if config.Enhancements.Enabled {
		t.Fatalf("enhancements must be off by default")
	}
	if config.Enhancements.TargetRoleLevel != "senior_executive" || config.Enhancements.YearsExperience != 20 {
		t.Fatalf("unexpected enhancement defaults: %+v", config.Enhancements)
	}
	if config.Output.Format != "text" {
		t.Fatalf("unexpected output format %q", config.Output.Format)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	config, err := loadConfig(newViper(t, `
matrix: skills.csv
scoring:
  bonus-cap: 0.3
  weights:
    implicit: 0.25
  emphasis:
    high: [expert]
enhancements:
  enabled: true
  target-role-type: ic
  target-role-level: senior_ic
  proven-strengths: [chemistry]
  disable: [role_level]
output:
  format: yaml
`))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if config.Matrix != "skills.csv" || config.Scoring.BonusCap != 0.3 || config.Scoring.Weights.Implicit != 0.25 {
		t.Fatalf("unexpected config: %+v", config)
	}
	if config.Scoring.Weights.Essential != 3 {
		t.Fatalf("unset weights must keep defaults, got %+v", config.Scoring.Weights)
	}
	if got := config.Scoring.Emphasis.High; len(got) != 1 || got[0] != "expert" {
		t.Fatalf("unexpected high keywords %v", got)
	}

	chain, err := config.Enhancements.chain()
	if err != nil {
		t.Fatalf("chain returned error: %v", err)
	}
	for _, st := range chain.Describe() {
		if st.Name == enhance.NameRoleLevel && st.Enabled {
			t.Fatalf("role_level should be disabled")
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FIT_SCORER_SCORING_BONUS_CAP", "0.1")
	t.Setenv("FIT_SCORER_ENHANCEMENTS_TARGET_ROLE_TYPE", "hybrid")
	t.Setenv("FIT_SCORER_OUTPUT_FORMAT", "json")

	config, err := loadConfig(newViper(t, ""))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if config.Scoring.BonusCap != 0.1 {
		t.Fatalf("expected bonus cap from env, got %v", config.Scoring.BonusCap)
	}
	if config.Enhancements.TargetRoleType != "hybrid" || config.Output.Format != "json" {
		t.Fatalf("unexpected config: %+v %+v", config.Enhancements, config.Output)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{name: "bonus cap", config: "scoring:\n  bonus-cap: 1.5\n"},
		{name: "role type", config: "enhancements:\n  target-role-type: manager\n"},
		{name: "disable", config: "enhancements:\n  disable: [everything]\n"},
		{name: "format", config: "output:\n  format: xml\n"},
		{name: "threshold", config: "scoring:\n  gap-thresholds:\n    essential: 9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(newViper(t, tt.config))
			if !errors.Is(err, validation.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestEnhancementsChainDisabled(t *testing.T) {
	chain, err := (&EnhancementsConfig{Enabled: false}).chain()
	if err != nil || chain != nil {
		t.Fatalf("expected nil chain and no error, got %v, %v", chain, err)
	}
}

func writeMatrix(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skills.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write matrix: %v", err)
	}
	return path
}

func TestExecuteText(t *testing.T) {
	config, err := loadConfig(newViper(t, ""))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	path := writeMatrix(t, "Requirement,Classification,SelfScore\nKubernetes,Essential,1\nGo,Important,4\n")

	core, observed := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer

	rep, err := execute(config, path, &out, zap.New(core))
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	if rep.Verdict != report.TierCriticalGap {
		t.Fatalf("expected critical gap, got %s", rep.Verdict)
	}
	if out.Len() != 0 {
		t.Fatalf("text format must not write to out, got %q", out.String())
	}

	gaps := observed.FilterMessage("core gap").All()
	if len(gaps) != 1 {
		t.Fatalf("expected 1 core gap entry, got %d", len(gaps))
	}
	if gaps[0].ContextMap()["requirement"] != "Kubernetes" {
		t.Fatalf("unexpected gap entry: %v", gaps[0].ContextMap())
	}

	summary := observed.FilterMessage("scorecard").All()
	if len(summary) != 1 || summary[0].ContextMap()["run_id"] != rep.RunID {
		t.Fatalf("expected scorecard entry with run id, got %v", summary)
	}
}

func TestExecuteJSONEnhanced(t *testing.T) {
	config, err := loadConfig(newViper(t, "enhancements:\n  enabled: true\noutput:\n  format: json\n  rows: true\n"))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	path := writeMatrix(t, "Requirement,Classification,SelfScore\nLead cross-functional teams,Essential,5\n")

	var out bytes.Buffer
	rep, err := execute(config, path, &out, zap.NewNop())
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	if len(rep.Enhancements) != 4 {
		t.Fatalf("expected 4 enhancement statuses, got %d", len(rep.Enhancements))
	}
	if len(rep.Rows) != 1 || rep.Rows[0].Enhancement == nil {
		t.Fatalf("expected enhanced row in report, got %+v", rep.Rows)
	}
	if !strings.Contains(out.String(), `"run_id": "`+rep.RunID+`"`) {
		t.Fatalf("expected json report on out, got %s", out.String())
	}
}

func TestExecuteOutputFile(t *testing.T) {
	config, err := loadConfig(newViper(t, "output:\n  format: yaml\n"))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	config.Output.File = filepath.Join(t.TempDir(), "report.yaml")

	path := writeMatrix(t, "Skill,Classification,SelfScore\nGo,Essential,4\n")

	var out bytes.Buffer
	if _, err := execute(config, path, &out, zap.NewNop()); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	data, err := os.ReadFile(config.Output.File)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), "verdict:") || out.Len() != 0 {
		t.Fatalf("expected yaml report in file only")
	}
}

func TestExecuteTextWithOutputFile(t *testing.T) {
	config, err := loadConfig(newViper(t, ""))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	config.Output.File = filepath.Join(t.TempDir(), "report.json")

	path := writeMatrix(t, "Requirement,Classification,SelfScore\nGo,Essential,4\n")

	core, observed := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	rep, err := execute(config, path, &out, zap.New(core))
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	data, err := os.ReadFile(config.Output.File)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !json.Valid(data) || !strings.Contains(string(data), rep.RunID) {
		t.Fatalf("expected json report in file, got %s", data)
	}
	if out.Len() != 0 {
		t.Fatalf("text format must not write to out, got %q", out.String())
	}
	if len(observed.FilterMessage("report written").All()) != 1 {
		t.Fatalf("expected report written log entry")
	}
}

func TestExecuteErrors(t *testing.T) {
	config, err := loadConfig(newViper(t, ""))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if _, err := execute(config, filepath.Join(t.TempDir(), "missing.csv"), &bytes.Buffer{}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing matrix")
	}

	path := writeMatrix(t, "Requirement,Classification,SelfScore\nGo,Critical,4\n")
	if _, err := execute(config, path, &bytes.Buffer{}, zap.NewNop()); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), app+" version: ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
