package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/fit-scorer/internal/enhance"
	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/validation"
)

const (
	app       = "fit-scorer"
	envPrefix = "FIT_SCORER"
)

type Config struct {
	Matrix       string              `mapstructure:"matrix"`
	Scoring      scoring.Config      `mapstructure:"scoring"`
	Enhancements *EnhancementsConfig `mapstructure:"enhancements" validate:"required"`
	Output       *OutputConfig       `mapstructure:"output" validate:"required"`
}

type EnhancementsConfig struct {
	Enabled         bool           `mapstructure:"enabled"`
	TargetRoleType  string         `mapstructure:"target-role-type" validate:"oneof=executive ic hybrid"`
	TargetRoleLevel string         `mapstructure:"target-role-level" validate:"oneof=c_suite senior_executive director_vp senior_ic"`
	YearsExperience int            `mapstructure:"years-experience" validate:"gte=0"`
	ProvenStrengths []string       `mapstructure:"proven-strengths"`
	Disable         []string       `mapstructure:"disable" validate:"dive,oneof=dual_track experience_level cross_functional role_level"`
	Modifiers       enhance.Config `mapstructure:"modifiers"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text json yaml yml"`
	File   string `mapstructure:"file"`
	Rows   bool   `mapstructure:"rows"`
	Dump   bool   `mapstructure:"dump"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fit-scorer scores a self-assessed skill matrix against a job's requirements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fit-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setupEnv(viper.GetViper())
	setDefaults(viper.GetViper())
}

func setupEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every scalar key so env variables reach Unmarshal.
func setDefaults(v *viper.Viper) {
	sc := scoring.DefaultConfig()
	opts := enhance.DefaultOptions()

	v.SetDefault("matrix", "")

	v.SetDefault("scoring.weights.essential", sc.Weights.Essential)
	v.SetDefault("scoring.weights.important", sc.Weights.Important)
	v.SetDefault("scoring.weights.desirable", sc.Weights.Desirable)
	v.SetDefault("scoring.weights.implicit", sc.Weights.Implicit)
	v.SetDefault("scoring.gap-thresholds.essential", sc.GapThresholds.Essential)
	v.SetDefault("scoring.gap-thresholds.important", sc.GapThresholds.Important)
	v.SetDefault("scoring.gap-thresholds.desirable", sc.GapThresholds.Desirable)
	v.SetDefault("scoring.gap-thresholds.implicit", sc.GapThresholds.Implicit)
	v.SetDefault("scoring.emphasis.high", sc.Emphasis.High)
	v.SetDefault("scoring.emphasis.low", sc.Emphasis.Low)
	v.SetDefault("scoring.emphasis.high-modifier", sc.Emphasis.HighModifier)
	v.SetDefault("scoring.emphasis.low-modifier", sc.Emphasis.LowModifier)
	v.SetDefault("scoring.bonus-cap", sc.BonusCap)
	v.SetDefault("scoring.max-self-score", sc.MaxSelfScore)

	v.SetDefault("enhancements.enabled", false)
	v.SetDefault("enhancements.target-role-type", string(opts.TargetRoleType))
	v.SetDefault("enhancements.target-role-level", string(opts.TargetRoleLevel))
	v.SetDefault("enhancements.years-experience", opts.YearsExperience)
	v.SetDefault("enhancements.proven-strengths", []string{})
	v.SetDefault("enhancements.disable", []string{})

	v.SetDefault("output.format", "text")
	v.SetDefault("output.file", "")
	v.SetDefault("output.rows", false)
	v.SetDefault("output.dump", false)
}

func initConfig() {
	// Config is needed only for the score command. Without it we can skip initialization.
	if scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

// loadConfig unmarshals v and validates the result. Modifier tables are not
// registered as viper defaults and start from enhance.DefaultConfig.
func loadConfig(v *viper.Viper) (*Config, error) {
	// Every scoring key has a registered default, so Scoring starts empty.
	config := &Config{
		Enhancements: &EnhancementsConfig{
			Modifiers: enhance.DefaultConfig(),
		},
		Output: &OutputConfig{},
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	if err := validation.Struct(config); err != nil {
		return nil, err
	}
	if err := config.Scoring.Validate(); err != nil {
		return nil, err
	}
	if config.Enhancements.Enabled {
		if err := config.Enhancements.Modifiers.Validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// options converts the enhancement section into enhance.Options.
func (e *EnhancementsConfig) options() (enhance.Options, error) {
	roleType, err := enhance.ParseRoleType(e.TargetRoleType)
	if err != nil {
		return enhance.Options{}, err
	}
	roleLevel, err := enhance.ParseRoleLevel(e.TargetRoleLevel)
	if err != nil {
		return enhance.Options{}, err
	}

	return enhance.Options{
		TargetRoleType:  roleType,
		TargetRoleLevel: roleLevel,
		YearsExperience: e.YearsExperience,
		ProvenStrengths: e.ProvenStrengths,
	}, nil
}

// chain builds the enhancement chain, or nil when enhancements are off.
func (e *EnhancementsConfig) chain() (*enhance.Chain, error) {
	if !e.Enabled {
		return nil, nil
	}

	opts, err := e.options()
	if err != nil {
		return nil, err
	}

	chain, err := enhance.NewChain(e.Modifiers, opts)
	if err != nil {
		return nil, err
	}

	for _, name := range e.Disable {
		if err := chain.Disable(name, "disabled by configuration"); err != nil {
			return nil, err
		}
	}

	return chain, nil
}
