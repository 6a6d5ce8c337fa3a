// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/report"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage the local report store (list, search, show, export)",
	Long: `Reports manages the SQLite store of persisted analysis reports. Use
subcommands to list stored reports, search their source texts, show a
single report, or export the store.`,
}

// --- list subcommand ---

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	RunE:  runReportsList,
}

func runReportsList(cmd *cobra.Command, args []string) error {
	store, err := report.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	summaries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSummaries(summaries, jsonOutput)
}

// --- search subcommand ---

var reportsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over stored resume and job texts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReportsSearch,
}

func runReportsSearch(cmd *cobra.Command, args []string) error {
	store, err := report.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	summaries, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSummaries(summaries, jsonOutput)
}

// --- show subcommand ---

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid report ID %q", args[0])
	}

	store, err := report.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	report.WriteTable(os.Stdout, r)
	return nil
}

// --- export subcommand ---

var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored reports to YAML or JSON",
	RunE:  runReportsExport,
}

func runReportsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := storeConfig(cmd)
	store, err := report.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	reportsDir := cfg.ReportsDir
	if reportsDir == "" {
		reportsDir = "reports"
	}

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.yaml\n", reportsDir)
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.json\n", reportsDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	cfg := engineConfig().Store
	if dir, _ := cmd.Flags().GetString("reports-dir"); dir != "" {
		cfg.ReportsDir = dir
	}
	return cfg
}

func formatSummaries(summaries []report.Summary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No reports found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-5s  %-5s  %-5s  %-10s  %s\n",
		"ID", "Created", "Score", "ATS", "Match", "Method", "Similarity")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 66))

	for _, s := range summaries {
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-5d  %-5d  %-5d  %-10s  %.2f\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"),
			s.OverallScore, s.ATSCompatibility, s.MatchPercentage,
			s.SimilarityMethod, s.Similarity)
	}

	fmt.Fprintf(os.Stdout, "\n%d reports\n", len(summaries))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	reportsCmd.PersistentFlags().String("reports-dir", "", "base directory for the report store (contains index/)")
	reportsCmd.PersistentFlags().Int("limit", 0, "maximum results (0 = use default)")
	reportsCmd.PersistentFlags().Bool("json", false, "output as JSON")

	// Export flags.
	reportsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsSearchCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsExportCmd)

	rootCmd.AddCommand(reportsCmd)
}
