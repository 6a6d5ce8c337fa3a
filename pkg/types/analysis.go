// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared value objects exchanged between the
// analysis stages. All types are immutable after construction; analyses
// never share mutable state across concurrent requests.
package types

import "time"

// KeywordCategory classifies a canonical phrase in the lexicon.
type KeywordCategory string

const (
	CategoryLanguages      KeywordCategory = "languages"
	CategoryFrameworks     KeywordCategory = "frameworks"
	CategoryInfrastructure KeywordCategory = "infrastructure"
	CategoryDatabases      KeywordCategory = "databases"
	CategoryTools          KeywordCategory = "tools"
	CategoryMethodologies  KeywordCategory = "methodologies"
	CategoryAIML           KeywordCategory = "ai_ml"

	// CategoryUncategorized marks terms recovered by the generic entity
	// pass rather than the static lexicon.
	CategoryUncategorized KeywordCategory = "uncategorized"
)

// Importance ranks how badly a missing keyword hurts the candidate.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// Rank orders importance levels, most important first (0).
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 0
	case ImportanceHigh:
		return 1
	case ImportanceMedium:
		return 2
	default:
		return 3
	}
}

// Severity grades a formatting issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities, most severe first (0).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// KeywordOccurrence is a single located match of a canonical phrase or
// entity in a text. Produced per extraction call, never persisted.
type KeywordOccurrence struct {
	// Term is the canonical phrase as registered in the lexicon, or the
	// surface form for entity-pass terms.
	Term string `json:"term" yaml:"term"`

	// Category is the lexicon category, or CategoryUncategorized for
	// terms recovered only by the entity pass.
	Category KeywordCategory `json:"category" yaml:"category"`

	// Start and End delimit the match in bytes within the source text.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// KeywordAnalysis merges all occurrences of one (term, category) pair.
type KeywordAnalysis struct {
	Term     string          `json:"term" yaml:"term"`
	Category KeywordCategory `json:"category" yaml:"category"`

	// Frequency counts case-insensitive, phrase-boundary-aware matches.
	Frequency int `json:"frequency" yaml:"frequency"`

	// Density is 100 * Frequency / token count of the source text.
	Density float64 `json:"density" yaml:"density"`

	// InOtherDocument reports whether the term also appears in the
	// paired document (the job description when analyzing a resume).
	InOtherDocument bool `json:"in_other_document" yaml:"in_other_document"`

	// ContextSnippets holds up to a configured cap of sentences
	// containing the term, in document order.
	ContextSnippets []string `json:"context_snippets,omitempty" yaml:"context_snippets,omitempty"`
}

// MissingKeyword is a reference-document term absent from the candidate.
type MissingKeyword struct {
	Term       string          `json:"term" yaml:"term"`
	Category   KeywordCategory `json:"category" yaml:"category"`
	Importance Importance      `json:"importance" yaml:"importance"`
	Suggestion string          `json:"suggestion" yaml:"suggestion"`
}

// IssueType names a structural validation check.
type IssueType string

const (
	IssueMultiColumn        IssueType = "multi_column"
	IssueTable              IssueType = "table"
	IssueGraphics           IssueType = "graphics"
	IssueNonStandardHeaders IssueType = "non_standard_headers"
	IssueContactPlacement   IssueType = "contact_placement"
	IssueContactMissing     IssueType = "contact_info_missing"
	IssueDateFormat         IssueType = "date_format"
	IssueKeywordStuffing    IssueType = "keyword_stuffing"
	IssueLowKeywordDensity  IssueType = "low_keyword_density"
	IssueUnusualCharacters  IssueType = "unusual_characters"
	IssueLongLines          IssueType = "long_lines"
)

// FormattingIssue is one machine-readability hazard found by the
// structural validator. Repeated structural patterns yield repeated
// issues; there is no deduplication.
type FormattingIssue struct {
	Type           IssueType `json:"issue_type" yaml:"issue_type"`
	Severity       Severity  `json:"severity" yaml:"severity"`
	Description    string    `json:"description" yaml:"description"`
	Recommendation string    `json:"recommendation" yaml:"recommendation"`
}

// SimilarityMethod records how a similarity score was computed.
type SimilarityMethod string

const (
	// MethodVector is cosine similarity over averaged word vectors.
	MethodVector SimilarityMethod = "vector"

	// MethodFallback is the token-overlap ratio used when no vector
	// model is loaded. Callers must not compare fallback scores against
	// vector scores numerically.
	MethodFallback SimilarityMethod = "fallback"
)

// Similarity is a semantic alignment score between two documents.
type Similarity struct {
	// Score is in [0.0, 1.0]. Negative cosine values are clamped to 0.
	Score float64 `json:"score" yaml:"score"`

	Method SimilarityMethod `json:"method" yaml:"method"`
}

// LayoutHints carries opaque structural signals from the upstream
// extraction step. The validator consumes these as-is and never
// recomputes them.
type LayoutHints struct {
	// ColumnRegions is the number of detected multi-column regions.
	ColumnRegions int `json:"column_regions" yaml:"column_regions"`

	// Tables is the number of detected table regions.
	Tables int `json:"tables" yaml:"tables"`

	// Images is the number of embedded graphics.
	Images int `json:"images" yaml:"images"`
}

// ContactInfo is the identity data recovered from a candidate document.
type ContactInfo struct {
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// Report aggregates one full analysis of a (candidate, reference) pair.
// It is produced once per pair and handed to the persistence layer
// unchanged.
type Report struct {
	// OverallScore blends match, ATS compatibility, and semantic
	// similarity into a single 0-100 grade.
	OverallScore int `json:"score" yaml:"score"`

	// ATSCompatibility grades structural machine-readability, 0-100.
	ATSCompatibility int `json:"ats_compatibility" yaml:"ats_compatibility"`

	// MatchPercentage is the share of reference keywords covered by the
	// candidate, 0-100.
	MatchPercentage int `json:"match_percentage" yaml:"match_percentage"`

	Similarity Similarity `json:"semantic_similarity" yaml:"semantic_similarity"`

	KeywordAnalyses  []KeywordAnalysis `json:"keyword_analysis" yaml:"keyword_analysis"`
	MissingKeywords  []MissingKeyword  `json:"missing_keywords" yaml:"missing_keywords"`
	FormattingIssues []FormattingIssue `json:"formatting_issues" yaml:"formatting_issues"`

	// Warnings records non-fatal degradations (e.g. input truncation).
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
