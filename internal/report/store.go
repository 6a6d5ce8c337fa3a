// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "cvlize.db"
)

// Store persists analysis reports in a local SQLite database. Reports
// are deduplicated per (resume, job) text pair: re-analyzing the same
// pair replaces the stored report.
type Store struct {
	db         *sql.DB
	reportsDir string
	maxResults int
}

// NewStore opens or creates the report database at
// reportsDir/index/cvlize.db, creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	reportsDir := cfg.ReportsDir
	if reportsDir == "" {
		reportsDir = "reports"
	}
	dbDir := filepath.Join(reportsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		reportsDir: reportsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			resume_hash TEXT NOT NULL,
			job_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			ats_compatibility INTEGER NOT NULL,
			match_percentage INTEGER NOT NULL,
			similarity REAL NOT NULL,
			similarity_method TEXT NOT NULL,
			resume_text TEXT NOT NULL,
			job_text TEXT NOT NULL,
			report_json TEXT NOT NULL,
			UNIQUE(resume_hash, job_hash)
		)`,
		`CREATE TABLE IF NOT EXISTS report_keywords (
			report_id INTEGER NOT NULL REFERENCES reports(rowid) ON DELETE CASCADE,
			term TEXT NOT NULL,
			category TEXT NOT NULL,
			frequency INTEGER NOT NULL,
			density REAL NOT NULL,
			in_other_document INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_keywords_report_id ON report_keywords(report_id)`,
		`CREATE INDEX IF NOT EXISTS idx_report_keywords_term ON report_keywords(term)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='reports_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE reports_fts USING fts5(resume_text, job_text, content=reports, content_rowid=rowid)`,
			`CREATE TRIGGER reports_ai AFTER INSERT ON reports BEGIN
				INSERT INTO reports_fts(rowid, resume_text, job_text) VALUES (new.rowid, new.resume_text, new.job_text);
			END`,
			`CREATE TRIGGER reports_ad AFTER DELETE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, resume_text, job_text) VALUES('delete', old.rowid, old.resume_text, old.job_text);
			END`,
			`CREATE TRIGGER reports_au AFTER UPDATE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, resume_text, job_text) VALUES('delete', old.rowid, old.resume_text, old.job_text);
				INSERT INTO reports_fts(rowid, resume_text, job_text) VALUES (new.rowid, new.resume_text, new.job_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Summary is the stored-report listing row.
type Summary struct {
	ID               int64     `json:"id" yaml:"id"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
	OverallScore     int       `json:"score" yaml:"score"`
	ATSCompatibility int       `json:"ats_compatibility" yaml:"ats_compatibility"`
	MatchPercentage  int       `json:"match_percentage" yaml:"match_percentage"`
	Similarity       float64   `json:"semantic_similarity" yaml:"semantic_similarity"`
	SimilarityMethod string    `json:"similarity_method" yaml:"similarity_method"`
	ResumeHash       string    `json:"resume_hash" yaml:"resume_hash"`
	JobHash          string    `json:"job_hash" yaml:"job_hash"`
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

// Save stores a report for the given input texts, replacing any
// previous report for the same pair. It returns the row ID and whether
// an existing report was replaced.
func (s *Store) Save(ctx context.Context, resumeText, jobText string, r types.Report) (int64, bool, error) {
	resumeHash := textHash(resumeText)
	jobHash := textHash(jobText)

	reportJSON, err := json.Marshal(r)
	if err != nil {
		return 0, false, fmt.Errorf("marshaling report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace any previous report for the same pair.
	var oldID int64
	err = tx.QueryRowContext(ctx,
		`SELECT rowid FROM reports WHERE resume_hash = ? AND job_hash = ?`,
		resumeHash, jobHash,
	).Scan(&oldID)
	replaced := err == nil
	if err != nil && err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("checking existing report: %w", err)
	}
	if replaced {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE rowid = ?`, oldID); err != nil {
			return 0, false, fmt.Errorf("deleting old report: %w", err)
		}
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reports (resume_hash, job_hash, created_at, score,
			ats_compatibility, match_percentage, similarity, similarity_method,
			resume_text, job_text, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resumeHash, jobHash, createdAt.Format(time.RFC3339Nano),
		r.OverallScore, r.ATSCompatibility, r.MatchPercentage,
		r.Similarity.Score, string(r.Similarity.Method),
		resumeText, jobText, string(reportJSON),
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading report ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO report_keywords (report_id, term, category, frequency, density, in_other_document)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, false, fmt.Errorf("preparing keyword insert: %w", err)
	}
	defer stmt.Close()

	for _, ka := range r.KeywordAnalyses {
		if _, err := stmt.ExecContext(ctx,
			id, ka.Term, string(ka.Category), ka.Frequency, ka.Density, ka.InOtherDocument,
		); err != nil {
			return 0, false, fmt.Errorf("inserting keyword %s: %w", ka.Term, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("committing report: %w", err)
	}
	return id, replaced, nil
}

// Get loads a stored report by ID.
func (s *Store) Get(ctx context.Context, id int64) (types.Report, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM reports WHERE rowid = ?`, id,
	).Scan(&reportJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Report{}, fmt.Errorf("report %d not found", id)
		}
		return types.Report{}, fmt.Errorf("looking up report: %w", err)
	}

	var r types.Report
	if err := json.Unmarshal([]byte(reportJSON), &r); err != nil {
		return types.Report{}, fmt.Errorf("parsing stored report: %w", err)
	}
	return r, nil
}

// List returns stored report summaries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, created_at, score, ats_compatibility, match_percentage,
			similarity, similarity_method, resume_hash, job_hash
		 FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Search runs an FTS5 full-text query over the stored resume and job
// texts and returns matching report summaries by relevance.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.rowid, r.created_at, r.score, r.ats_compatibility, r.match_percentage,
			r.similarity, r.similarity_method, r.resume_hash, r.job_hash
		 FROM reports_fts
		 JOIN reports r ON r.rowid = reports_fts.rowid
		 WHERE reports_fts MATCH ?
		 ORDER BY reports_fts.rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching reports: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]Summary, error) {
	var summaries []Summary
	for rows.Next() {
		var (
			sum       Summary
			createdAt string
		)
		if err := rows.Scan(
			&sum.ID, &createdAt, &sum.OverallScore, &sum.ATSCompatibility,
			&sum.MatchPercentage, &sum.Similarity, &sum.SimilarityMethod,
			&sum.ResumeHash, &sum.JobHash,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			sum.CreatedAt = t
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
