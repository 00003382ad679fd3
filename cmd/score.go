package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fit-scorer/internal/logger"
	"github.com/spigell/fit-scorer/internal/matrix"
	"github.com/spigell/fit-scorer/internal/report"
	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/utils"
)

const maxLogLength = 80

var scoreCmd = &cobra.Command{
	Use:   "score [matrix.csv]",
	Short: "Score a skill matrix and print the verdict",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		score(args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	defaults := scoring.DefaultConfig()

	scoreCmd.Flags().Float64P("cap", "c", defaults.BonusCap, "bonus cap as a fraction of core points")
	scoreCmd.Flags().BoolP("enhanced", "e", false, "apply the strategic positioning modifiers")
	scoreCmd.Flags().String("role-type", "executive", "target role type: executive, ic or hybrid")
	scoreCmd.Flags().String("role-level", "senior_executive", "target role level: c_suite, senior_executive, director_vp or senior_ic")
	scoreCmd.Flags().Int("years", 20, "years of professional experience")
	scoreCmd.Flags().StringSlice("strength", nil, "proven strength keyword, repeatable")
	scoreCmd.Flags().StringSlice("disable", nil, "enhancement modifier to switch off, repeatable")
	scoreCmd.Flags().StringP("format", "o", "text", "output format: text, json or yaml")
	scoreCmd.Flags().String("output-file", "", "write the report to this file instead of stdout")
	scoreCmd.Flags().Bool("rows", false, "include per-row scores in json/yaml output")
	scoreCmd.Flags().Bool("dump", false, "also dump the report to a temporary file")

	viper.BindPFlag("scoring.bonus-cap", scoreCmd.Flags().Lookup("cap"))
	viper.BindPFlag("enhancements.enabled", scoreCmd.Flags().Lookup("enhanced"))
	viper.BindPFlag("enhancements.target-role-type", scoreCmd.Flags().Lookup("role-type"))
	viper.BindPFlag("enhancements.target-role-level", scoreCmd.Flags().Lookup("role-level"))
	viper.BindPFlag("enhancements.years-experience", scoreCmd.Flags().Lookup("years"))
	viper.BindPFlag("enhancements.proven-strengths", scoreCmd.Flags().Lookup("strength"))
	viper.BindPFlag("enhancements.disable", scoreCmd.Flags().Lookup("disable"))
	viper.BindPFlag("output.format", scoreCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.file", scoreCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("output.rows", scoreCmd.Flags().Lookup("rows"))
	viper.BindPFlag("output.dump", scoreCmd.Flags().Lookup("dump"))
}

// score is the main command for the cli.
func score(args []string) {
	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %s", err)
	}

	// Encoded reports own stdout, so logs move to stderr.
	logOutput := "stdout"
	if config.Output.Format != string(report.FormatText) && config.Output.File == "" {
		logOutput = "stderr"
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logOutput)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	logger.Info("starting the fit-scorer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	path := config.Matrix
	if len(args) > 0 {
		path = args[0]
	}
	if strings.TrimSpace(path) == "" {
		logger.Fatal("matrix file is required", zap.String("hint", "pass it as an argument or set 'matrix' in the configuration file"))
	}

	if _, err := execute(config, path, os.Stdout, logger); err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}
}

// execute loads the matrix, scores it and emits the report.
func execute(config *Config, path string, out io.Writer, log *zap.Logger) (*report.Report, error) {
	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		return nil, err
	}

	reqs, err := matrix.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading matrix: %w", err)
	}
	log.Info("loaded the matrix", zap.String("file", path), zap.Int("requirements", len(reqs)))

	chain, err := config.Enhancements.chain()
	if err != nil {
		return nil, fmt.Errorf("preparing enhancements: %w", err)
	}

	engine, err := scoring.NewEngine(config.Scoring, chain)
	if err != nil {
		return nil, fmt.Errorf("preparing engine: %w", err)
	}

	res, err := engine.Score(reqs)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	meta := report.Meta{
		RunID:       report.NewRunID(),
		Source:      path,
		IncludeRows: config.Output.Rows,
	}
	roleType, roleLevel := "", ""
	if chain != nil {
		meta.Enhancements = chain.Describe()
		roleType = config.Enhancements.TargetRoleType
		roleLevel = config.Enhancements.TargetRoleLevel
	}

	rep, err := report.Build(res, meta)
	if err != nil {
		return nil, err
	}

	log = logger.WithRunFields(log, rep.RunID, roleType, roleLevel)
	logResult(log, rep, res)

	switch {
	case config.Output.File != "":
		// Text output goes to the log, so a report file falls back to json.
		fileFormat := format
		if fileFormat == report.FormatText {
			fileFormat = report.FormatJSON
		}
		if err := rep.ToFile(config.Output.File, fileFormat); err != nil {
			return nil, fmt.Errorf("writing report: %w", err)
		}
		log.Info("report written", zap.String("filename", config.Output.File))
	case format != report.FormatText:
		if err := rep.Write(out, format); err != nil {
			return nil, fmt.Errorf("writing report: %w", err)
		}
	}

	if config.Output.Dump {
		dumpFormat := format
		if dumpFormat == report.FormatText {
			dumpFormat = report.FormatJSON
		}
		filename, err := rep.DumpToTmpFile(dumpFormat)
		if err != nil {
			return nil, fmt.Errorf("dump report to file: %w", err)
		}
		log.Info("dumping report to file", zap.String("filename", filename))
	}

	return rep, nil
}

func logResult(log *zap.Logger, rep *report.Report, res *scoring.Result) {
	for _, row := range res.Rows {
		fields := []zap.Field{
			zap.String("requirement", utils.TruncateForLog(row.Requirement, maxLogLength)),
			zap.String("classification", string(row.Classification)),
			zap.Int("self_score", row.SelfScore),
			zap.Float64("raw_score", utils.Round(row.RawScore, 2)),
			zap.Float64("normalized_score", utils.Round(row.NormalizedScore, 2)),
		}
		if row.Enhancement != nil {
			fields = append(fields, zap.Float64("enhancement_factor", utils.Round(row.Enhancement.Product(), 3)))
		}
		log.Debug("scored requirement", fields...)
	}

	for _, st := range rep.Enhancements {
		log.Debug("enhancement modifier",
			zap.String("name", st.Name),
			zap.Bool("enabled", st.Enabled),
			zap.String("reason", st.Reason),
			zap.Any("details", st.Details),
		)
	}

	if rep.Capping.Applied {
		log.Info("bonus rows capped",
			zap.Float64("bonus_points", rep.Capping.BonusPoints),
			zap.Float64("allowed", rep.Capping.Allowed),
			zap.Float64("factor", rep.Capping.Factor),
		)
	}

	log.Info("scorecard",
		zap.String("verdict", string(rep.Verdict)),
		zap.Bool("core_gap", rep.CoreGap),
		zap.Float64("actual_points", rep.Metrics.ActualPoints),
		zap.Float64("max_points", rep.Metrics.MaxPoints),
		zap.Float64("pct_fit", rep.Metrics.PctFit),
	)

	for _, gap := range rep.Gaps {
		log.Warn("core gap",
			zap.String("requirement", utils.TruncateForLog(gap.Requirement, maxLogLength)),
			zap.String("classification", string(gap.Classification)),
			zap.Int("self_score", gap.SelfScore),
			zap.Int("threshold", gap.Threshold),
			zap.String("severity", string(gap.Severity)),
		)
	}

	log.Info(rep.Guidance)
	for i, step := range rep.NextSteps {
		log.Info("next step", zap.Int("n", i+1), zap.String("action", step))
	}
}
