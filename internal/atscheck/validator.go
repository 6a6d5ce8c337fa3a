// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package atscheck validates a candidate document for structural
// machine-readability hazards. Every check is independent and additive:
// a document accumulates issues from any subset of checks, repeated
// patterns yield repeated issues, and there is no early exit.
package atscheck

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// standardHeaders is the canonical section-heading vocabulary. A parsed
// heading that matches none of these within substring or small
// edit-distance tolerance is flagged.
var standardHeaders = []string{
	"summary",
	"professional summary",
	"profile",
	"experience",
	"work experience",
	"professional experience",
	"employment",
	"education",
	"academic background",
	"skills",
	"technical skills",
	"core competencies",
	"projects",
	"technical projects",
	"certifications",
	"certificates",
	"awards",
}

var (
	numericDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{1,2}/\d{4}\b`)
	wordDatePattern    = regexp.MustCompile(`(?i)\b(Jan(uary)?|Feb(ruary)?|Mar(ch)?|Apr(il)?|May|Jun(e)?|Jul(y)?|Aug(ust)?|Sep(tember)?|Oct(ober)?|Nov(ember)?|Dec(ember)?)\.?\s+\d{4}\b`)

	unusualCharPattern = regexp.MustCompile(`[^\w\s\-.,@/()'"+:;]`)
)

// Validator runs the structural checks. Thresholds come from the
// analysis configuration so they stay policy, not hardcoded contract.
type Validator struct {
	cfg types.AnalysisConfig
}

func NewValidator(cfg types.AnalysisConfig) *Validator {
	return &Validator{cfg: cfg.Normalize()}
}

// Validate checks text plus upstream layout hints plus the keyword
// analyses computed for the same text, and returns the issues sorted
// most severe first.
func (v *Validator) Validate(text string, hints types.LayoutHints, analyses []types.KeywordAnalysis) []types.FormattingIssue {
	var issues []types.FormattingIssue

	issues = append(issues, layoutIssues(text, hints)...)
	issues = append(issues, headingIssues(text)...)
	issues = append(issues, contactIssues(text)...)
	issues = append(issues, dateIssues(text)...)
	issues = append(issues, v.densityIssues(analyses)...)
	issues = append(issues, characterIssues(text)...)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() < issues[j].Severity.Rank()
	})
	return issues
}

// layoutIssues converts the extraction layer's opaque structural
// signals into issues, one per counted signal. When no column hints
// were supplied the text itself is probed with the short-line-streak
// heuristic.
func layoutIssues(text string, hints types.LayoutHints) []types.FormattingIssue {
	var issues []types.FormattingIssue

	for i := 0; i < hints.ColumnRegions; i++ {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueMultiColumn,
			Severity:       types.SeverityCritical,
			Description:    "Document uses a multi-column layout.",
			Recommendation: "Use single-column linear layout. ATS parsers read left-to-right, top-to-bottom.",
		})
	}
	if hints.ColumnRegions == 0 && detectMultiColumn(text) {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueMultiColumn,
			Severity:       types.SeverityCritical,
			Description:    "Text structure suggests a multi-column layout (long run of short interleaved lines).",
			Recommendation: "Use single-column linear layout. ATS parsers read left-to-right, top-to-bottom.",
		})
	}
	for i := 0; i < hints.Tables; i++ {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueTable,
			Severity:       types.SeverityHigh,
			Description:    "Document contains a table. ATS parsers often scramble table content.",
			Recommendation: "Convert table data to standard bullet points or linear text format.",
		})
	}
	for i := 0; i < hints.Images; i++ {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueGraphics,
			Severity:       types.SeverityMedium,
			Description:    "Document contains an embedded image.",
			Recommendation: "Remove images, logos, and graphics. ATS cannot parse visual elements.",
		})
	}
	return issues
}

// detectMultiColumn flags a long streak of short lines, the usual
// artifact of column text interleaved by a linear extractor.
func detectMultiColumn(text string) bool {
	streak, maxStreak := 0, 0
	for _, line := range strings.Split(text, "\n") {
		n := len(strings.TrimSpace(line))
		if n > 5 && n < 40 {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 0
		}
	}
	return maxStreak > 10
}

// headingIssues flags section headings outside the canonical
// vocabulary, one issue per offending heading.
func headingIssues(text string) []types.FormattingIssue {
	var issues []types.FormattingIssue
	for _, heading := range candidateHeadings(text) {
		if isStandardHeader(heading) {
			continue
		}
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueNonStandardHeaders,
			Severity:       types.SeverityMedium,
			Description:    fmt.Sprintf("Non-standard section header: %q", heading),
			Recommendation: "Use standard headers: Professional Summary, Work Experience, Education, Skills, Projects, Certifications.",
		})
	}
	return issues
}

// candidateHeadings collects the lines that look like section headers:
// explicit "##" heading lines, plus short all-caps or header-shaped
// lines in plain text.
func candidateHeadings(text string) []string {
	var headings []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "## "); ok {
			if h := strings.TrimSpace(rest); h != "" {
				headings = append(headings, h)
			}
			continue
		}
		if len(trimmed) <= 2 || len(trimmed) >= 50 {
			continue
		}
		if isAllUpper(trimmed) || looksLikeHeader(trimmed) {
			headings = append(headings, trimmed)
		}
	}
	return headings
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// looksLikeHeader accepts short lines without terminal punctuation that
// mention a common header word.
func looksLikeHeader(line string) bool {
	if strings.ContainsAny(line[len(line)-1:], ".!?,;") {
		return false
	}
	lower := strings.ToLower(line)
	for _, word := range []string{"summary", "experience", "education", "skills", "projects", "certifications"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// isStandardHeader matches a heading against the canonical vocabulary,
// tolerating substring containment in either direction and, for short
// headings, up to two edits.
func isStandardHeader(heading string) bool {
	h := strings.ToLower(strings.TrimSpace(heading))
	for _, std := range standardHeaders {
		if strings.Contains(h, std) || strings.Contains(std, h) {
			return true
		}
		if len(h) <= len(std)+2 && editDistance(h, std) <= 2 {
			return true
		}
	}
	return false
}

// editDistance is plain Levenshtein over bytes. Headings are short so
// the quadratic cost is irrelevant.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// contactIssues requires an email or phone match in the document, and
// requires it inside the leading identity zone.
func contactIssues(text string) []types.FormattingIssue {
	if text == "" {
		return nil
	}
	if !hasContact(text) {
		return []types.FormattingIssue{{
			Type:           types.IssueContactMissing,
			Severity:       types.SeverityCritical,
			Description:    "No contact information (email or phone) detected in the document.",
			Recommendation: "Place contact info (name, email, phone, location) at the top of the resume in main body text.",
		}}
	}
	if !hasContact(identityZone(text)) {
		return []types.FormattingIssue{{
			Type:           types.IssueContactPlacement,
			Severity:       types.SeverityHigh,
			Description:    "Contact information appears outside the leading identity block.",
			Recommendation: "Move contact info into the first lines of the resume body. ATS parsers often drop header and footer regions.",
		}}
	}
	return nil
}

// identityZone is the opening span a parser treats as the identity
// block: the text before the first section heading, bounded at 500
// characters for documents without headings.
func identityZone(text string) string {
	zone := text
	if i := strings.Index(text, "\n## "); i >= 0 {
		zone = text[:i]
	}
	if len(zone) > 500 {
		zone = zone[:500]
	}
	return zone
}

// dateIssues flags mixing of numeric and written month date styles.
func dateIssues(text string) []types.FormattingIssue {
	if numericDatePattern.MatchString(text) && wordDatePattern.MatchString(text) {
		return []types.FormattingIssue{{
			Type:           types.IssueDateFormat,
			Severity:       types.SeverityLow,
			Description:    "Dates mix numeric (MM/YYYY) and written (Month YYYY) formats.",
			Recommendation: "Pick one date format, preferably MM/YYYY (e.g. '01/2023 - 06/2024'), and use it consistently.",
		}}
	}
	return nil
}

// densityIssues applies the density policy thresholds to the keyword
// analyses computed for the same text: stuffing per term, plus one
// aggregate issue when many job-description terms are under-represented.
func (v *Validator) densityIssues(analyses []types.KeywordAnalysis) []types.FormattingIssue {
	var issues []types.FormattingIssue

	for _, ka := range analyses {
		if ka.Density > v.cfg.StuffingDensity {
			issues = append(issues, types.FormattingIssue{
				Type:     types.IssueKeywordStuffing,
				Severity: types.SeverityHigh,
				Description: fmt.Sprintf("Keyword %q appears too frequently (%.1f%% density, above %.1f%%).",
					ka.Term, ka.Density, v.cfg.StuffingDensity),
				Recommendation: "Reduce keyword repetition. Modern ATS flags excessive repetition as spam. Aim for 1-3% density.",
			})
		}
	}

	underRepresented := 0
	for _, ka := range analyses {
		if ka.InOtherDocument && ka.Density < v.cfg.UnderRepresentedDensity {
			underRepresented++
		}
	}
	if underRepresented > 5 {
		issues = append(issues, types.FormattingIssue{
			Type:     types.IssueLowKeywordDensity,
			Severity: types.SeverityMedium,
			Description: fmt.Sprintf("%d important keywords from the job description appear too infrequently.",
				underRepresented),
			Recommendation: "Incorporate job description keywords more naturally throughout your resume, especially in work experience.",
		})
	}
	return issues
}

// characterIssues flags unusual symbol load and overlong lines, both
// low-severity parsing hazards.
func characterIssues(text string) []types.FormattingIssue {
	var issues []types.FormattingIssue

	if n := len(unusualCharPattern.FindAllString(text, -1)); n > 20 {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueUnusualCharacters,
			Severity:       types.SeverityLow,
			Description:    fmt.Sprintf("Detected %d unusual special characters.", n),
			Recommendation: "Use only standard ASCII characters. Avoid fancy bullets, symbols, or Unicode decorations.",
		})
	}

	longLines := 0
	for _, line := range strings.Split(text, "\n") {
		if len(line) > 200 {
			longLines++
		}
	}
	if longLines > 5 {
		issues = append(issues, types.FormattingIssue{
			Type:           types.IssueLongLines,
			Severity:       types.SeverityLow,
			Description:    fmt.Sprintf("Detected %d very long lines of text.", longLines),
			Recommendation: "Break up long paragraphs into bullet points for better parsing.",
		})
	}
	return issues
}
