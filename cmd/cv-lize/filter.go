// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/sections"
)

var filterCmd = &cobra.Command{
	Use:   "filter <document-file>",
	Short: "Filter a heading-delimited document to selected sections",
	Long: `Filter parses a heading-delimited document ("## Heading" grammar) and
reconstructs it with only the sections named via --sections. The leading
identity block (name and contact details) is always retained. Section
names match case-insensitively and bidirectionally on substrings, so
"skills" selects a "Technical Skills" heading and vice versa.

An empty --sections list keeps every section.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	desired, _ := cmd.Flags().GetStringSlice("sections")
	doc := sections.Parse(string(data))
	out := doc.Filter(desired)

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		fmt.Println(out)
		return nil
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing filtered document: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outputPath)
	return nil
}

func init() {
	filterCmd.Flags().StringSlice("sections", nil, "section names to keep (comma-separated; empty = all)")
	filterCmd.Flags().String("output", "", "write the filtered document to a file instead of stdout")

	rootCmd.AddCommand(filterCmd)
}
