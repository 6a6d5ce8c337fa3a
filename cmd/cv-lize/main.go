// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cv-lize CLI, the
// resume-vs-job-posting compatibility analysis engine.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mu7ammad-3li/cv-lize/internal/lexicon"
	"github.com/mu7ammad-3li/cv-lize/internal/report"
	"github.com/mu7ammad-3li/cv-lize/internal/semantic"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cv-lize CLI.
var rootCmd = &cobra.Command{
	Use:   "cv-lize",
	Short: "Resume and job-posting compatibility analysis",
	Long: `cv-lize analyzes a resume against a job posting: keyword coverage and
density, missing keywords ranked by importance, semantic alignment, and
structural ATS hazards, aggregated into one compatibility report.

Each operation is a subcommand: analyze runs the full pipeline, filter
and sections work on heading-delimited documents, and reports manages
the local report store.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cv-lize.yaml or ~/.config/cv-lize/cv-lize.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cv-lize")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cv-lize"))
		}
	}

	viper.SetEnvPrefix("CVLIZE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the engine configuration from the config file
// and environment. Flags on individual commands override these values.
func engineConfig() types.EngineConfig {
	var cfg types.EngineConfig

	cfg.Analysis = types.AnalysisConfig{
		MaxTextChars:            viper.GetInt("analysis.max_text_chars"),
		MaxContextSnippets:      viper.GetInt("analysis.max_context_snippets"),
		StuffingDensity:         viper.GetFloat64("analysis.stuffing_density"),
		UnderRepresentedDensity: viper.GetFloat64("analysis.under_represented_density"),
		CriticalFrequency:       viper.GetInt("analysis.critical_frequency"),
		HighFrequency:           viper.GetInt("analysis.high_frequency"),
		ProminentZoneWords:      viper.GetInt("analysis.prominent_zone_words"),
	}.Normalize()
	cfg.Semantic.ModelPath = viper.GetString("semantic.model_path")
	cfg.Lexicon.Path = viper.GetString("lexicon.path")
	cfg.Store.ReportsDir = viper.GetString("store.reports_dir")
	cfg.Store.MaxResults = viper.GetInt("store.max_results")

	return cfg
}

// buildEngine constructs the analysis engine from the resolved
// configuration. Lexicon and model problems are startup errors.
func buildEngine(cfg types.EngineConfig) (*report.Engine, error) {
	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return nil, err
	}

	var model *semantic.Model
	if cfg.Semantic.ModelPath != "" {
		model, err = semantic.LoadModel(cfg.Semantic.ModelPath)
		if err != nil {
			return nil, err
		}
	}

	return report.NewEngine(lex, semantic.NewScorer(model), cfg.Analysis), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
