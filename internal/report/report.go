// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report aggregates the analysis stages into a single
// compatibility report and persists reports to a local SQLite store.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mu7ammad-3li/cv-lize/internal/atscheck"
	"github.com/mu7ammad-3li/cv-lize/internal/keywords"
	"github.com/mu7ammad-3li/cv-lize/internal/lexicon"
	"github.com/mu7ammad-3li/cv-lize/internal/semantic"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// Score blend weights. Keyword coverage dominates because it is what
// an ATS screens on; structure and topical alignment refine the grade.
const (
	weightMatch      = 0.4
	weightATS        = 0.3
	weightSimilarity = 0.3
)

// ATS-compatibility deductions per issue severity.
const (
	deductCritical = 25
	deductHigh     = 15
	deductMedium   = 8
	deductLow      = 3
)

// Engine runs the full analysis pipeline over a (resume, job) pair.
// Construct once and share across requests; all stages are read-only
// after construction.
type Engine struct {
	extractor *keywords.Extractor
	analyzer  *keywords.Analyzer
	detector  *keywords.Detector
	scorer    *semantic.Scorer
	validator *atscheck.Validator
	cfg       types.AnalysisConfig
}

// NewEngine wires the analysis stages around a shared lexicon and
// similarity scorer. A nil scorer is valid and selects the overlap
// fallback for every request.
func NewEngine(lex *lexicon.Lexicon, scorer *semantic.Scorer, cfg types.AnalysisConfig) *Engine {
	cfg = cfg.Normalize()
	if scorer == nil {
		scorer = semantic.NewScorer(nil)
	}
	return &Engine{
		extractor: keywords.NewExtractor(lex, cfg),
		analyzer:  keywords.NewAnalyzer(cfg),
		detector:  keywords.NewDetector(cfg),
		scorer:    scorer,
		validator: atscheck.NewValidator(cfg),
		cfg:       cfg,
	}
}

// Input is one analysis request. Hints carries structural signals from
// the upstream extraction layer; the zero value means no hints.
type Input struct {
	Resume string
	Job    string
	Hints  types.LayoutHints
}

// Build runs extraction, density analysis, missing-keyword detection,
// similarity scoring, and structural validation, and folds the results
// into one report. Degenerate inputs produce an empty but well-formed
// report, never an error.
func (e *Engine) Build(in Input) types.Report {
	resume := e.extractor.Extract(in.Resume)
	job := e.extractor.Extract(in.Job)

	analyses := e.analyzer.Analyze(resume, &job)
	missing := e.detector.Missing(job, resume)
	similarity := e.scorer.Score(resume.Text, job.Text)
	issues := e.validator.Validate(resume.Text, in.Hints, analyses)

	var warnings []string
	if resume.Truncated {
		warnings = append(warnings, fmt.Sprintf(
			"resume text truncated to %d characters", e.cfg.MaxTextChars))
	}
	if job.Truncated {
		warnings = append(warnings, fmt.Sprintf(
			"job text truncated to %d characters", e.cfg.MaxTextChars))
	}

	match := matchPercentage(job, resume)
	ats := atsScore(issues)

	return types.Report{
		OverallScore:     overallScore(match, ats, similarity.Score),
		ATSCompatibility: ats,
		MatchPercentage:  match,
		Similarity:       similarity,
		KeywordAnalyses:  analyses,
		MissingKeywords:  missing,
		FormattingIssues: issues,
		Warnings:         warnings,
		CreatedAt:        time.Now().UTC(),
	}
}

// matchPercentage is the share of the reference document's distinct
// keywords that the candidate covers. A reference with no recognized
// keywords demands nothing, so coverage is full.
func matchPercentage(ref, candidate keywords.Extraction) int {
	refTerms := ref.Terms()
	if len(refTerms) == 0 {
		return 100
	}
	candTerms := candidate.Terms()
	covered := 0
	for term := range refTerms {
		if candTerms[term] {
			covered++
		}
	}
	return int(math.Round(100 * float64(covered) / float64(len(refTerms))))
}

// atsScore starts from 100 and deducts per issue by severity, with a
// floor of zero.
func atsScore(issues []types.FormattingIssue) int {
	score := 100
	for _, is := range issues {
		switch is.Severity {
		case types.SeverityCritical:
			score -= deductCritical
		case types.SeverityHigh:
			score -= deductHigh
		case types.SeverityMedium:
			score -= deductMedium
		default:
			score -= deductLow
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// overallScore is the weighted blend of keyword coverage, structural
// compatibility, and semantic similarity, on the 0-100 scale.
func overallScore(match, ats int, similarity float64) int {
	blended := weightMatch*float64(match) +
		weightATS*float64(ats) +
		weightSimilarity*100*similarity
	score := int(math.Round(blended))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// WriteTable renders a report as the human-readable summary the analyze
// command prints.
func WriteTable(w io.Writer, r types.Report) {
	fmt.Fprintf(w, "Overall score:      %d/100\n", r.OverallScore)
	fmt.Fprintf(w, "ATS compatibility:  %d/100\n", r.ATSCompatibility)
	fmt.Fprintf(w, "Keyword match:      %d%%\n", r.MatchPercentage)
	fmt.Fprintf(w, "Semantic alignment: %.2f (%s)\n", r.Similarity.Score, r.Similarity.Method)

	if len(r.KeywordAnalyses) > 0 {
		fmt.Fprintf(w, "\n%-24s  %-16s  %-5s  %-8s  %s\n",
			"Keyword", "Category", "Freq", "Density", "In JD")
		fmt.Fprintln(w, strings.Repeat("-", 70))
		for _, ka := range r.KeywordAnalyses {
			inJD := ""
			if ka.InOtherDocument {
				inJD = "yes"
			}
			fmt.Fprintf(w, "%-24s  %-16s  %-5d  %6.2f%%  %s\n",
				clip(ka.Term, 24), ka.Category, ka.Frequency, ka.Density, inJD)
		}
	}

	if len(r.MissingKeywords) > 0 {
		fmt.Fprintf(w, "\nMissing keywords:\n")
		for _, mk := range r.MissingKeywords {
			fmt.Fprintf(w, "  [%-8s] %-24s %s\n", mk.Importance, clip(mk.Term, 24), mk.Suggestion)
		}
	}

	if len(r.FormattingIssues) > 0 {
		fmt.Fprintf(w, "\nFormatting issues:\n")
		for _, is := range r.FormattingIssues {
			fmt.Fprintf(w, "  [%-8s] %s\n", is.Severity, is.Description)
			fmt.Fprintf(w, "             %s\n", is.Recommendation)
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "\nwarning: %s\n", warning)
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
