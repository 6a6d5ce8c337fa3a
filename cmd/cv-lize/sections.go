// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/sections"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <document-file>",
	Short: "List the section names of a heading-delimited document",
	Long: `Sections parses a heading-delimited document and prints its section
names in document order. A document with no headings has no sections;
its whole content is the identity block.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	names := sections.Parse(string(data)).Names()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}

	if len(names) == 0 {
		fmt.Println("No sections found.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func init() {
	sectionsCmd.Flags().Bool("json", false, "output section names as JSON")

	rootCmd.AddCommand(sectionsCmd)
}
