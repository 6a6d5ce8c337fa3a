// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/report"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file> <job-file>",
	Short: "Analyze a resume against a job posting",
	Long: `Analyze runs the full pipeline over a resume and a job posting: keyword
extraction and density, missing keywords, semantic similarity, and
structural validation. Layout hints from an upstream extraction step can
be supplied via --columns, --tables, and --images.

Pass --save to persist the report to the local report store.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	resumeText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}
	jobText, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading job posting: %w", err)
	}

	cfg := engineConfig()
	if path, _ := cmd.Flags().GetString("lexicon"); path != "" {
		cfg.Lexicon.Path = path
	}
	if path, _ := cmd.Flags().GetString("model"); path != "" {
		cfg.Semantic.ModelPath = path
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	columns, _ := cmd.Flags().GetInt("columns")
	tables, _ := cmd.Flags().GetInt("tables")
	images, _ := cmd.Flags().GetInt("images")

	r := engine.Build(report.Input{
		Resume: string(resumeText),
		Job:    string(jobText),
		Hints: types.LayoutHints{
			ColumnRegions: columns,
			Tables:        tables,
			Images:        images,
		},
	})

	for _, warning := range r.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, err := report.NewStore(storeConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		id, replaced, err := store.Save(context.Background(), string(resumeText), string(jobText), r)
		if err != nil {
			return err
		}
		if replaced {
			fmt.Fprintf(os.Stderr, "replaced stored report %d for this pair\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "saved report %d\n", id)
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	report.WriteTable(os.Stdout, r)
	return nil
}

func init() {
	analyzeCmd.Flags().String("lexicon", "", "custom lexicon YAML file (default: built-in)")
	analyzeCmd.Flags().String("model", "", "word-vector model file for semantic similarity")
	analyzeCmd.Flags().Int("columns", 0, "detected multi-column regions from upstream extraction")
	analyzeCmd.Flags().Int("tables", 0, "detected table regions from upstream extraction")
	analyzeCmd.Flags().Int("images", 0, "detected embedded images from upstream extraction")
	analyzeCmd.Flags().Bool("json", false, "output the report as JSON")
	analyzeCmd.Flags().Bool("save", false, "persist the report to the report store")
	analyzeCmd.Flags().String("reports-dir", "", "base directory for the report store")

	rootCmd.AddCommand(analyzeCmd)
}
