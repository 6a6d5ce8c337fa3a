// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// ExportEntry is one stored report with its identifying metadata, as
// written to the export files.
type ExportEntry struct {
	ID         int64        `json:"id" yaml:"id"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
	ResumeHash string       `json:"resume_hash" yaml:"resume_hash"`
	JobHash    string       `json:"job_hash" yaml:"job_hash"`
	Report     types.Report `json:"report" yaml:"report"`
}

const exportLimit = 100000

// ExportYAML writes all stored reports to reportsDir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.reportsDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes all stored reports to reportsDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.reportsDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, created_at, resume_hash, job_hash, report_json
		 FROM reports ORDER BY created_at DESC LIMIT ?`, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var (
			entry      ExportEntry
			createdAt  string
			reportJSON sql.NullString
		)
		if err := rows.Scan(&entry.ID, &createdAt, &entry.ResumeHash, &entry.JobHash, &reportJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = t
		}
		if reportJSON.Valid {
			if err := json.Unmarshal([]byte(reportJSON.String), &entry.Report); err != nil {
				return nil, fmt.Errorf("parsing stored report %d: %w", entry.ID, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
