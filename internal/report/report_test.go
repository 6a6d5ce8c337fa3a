package report

import (
	"strings"
	"testing"

	"github.com/mu7ammad-3li/cv-lize/internal/lexicon"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

func testEngine(t *testing.T, cfg types.AnalysisConfig) *Engine {
	t.Helper()
	return NewEngine(lexicon.Default(), nil, cfg)
}

const testResume = `John Doe
john@example.com | (555) 123-4567

## Summary
Backend engineer. Built APIs using Node.js and Docker.

## Experience
Acme Corp. Shipped services in Go with PostgreSQL.
`

const testJob = `Senior Backend Engineer

We need hands-on experience with Node.js, Docker and Kubernetes.
PostgreSQL is a plus.
`

func TestBuildFullPipeline(t *testing.T) {
	e := testEngine(t, types.DefaultAnalysisConfig())
	r := e.Build(Input{Resume: testResume, Job: testJob})

	var nodeJS, docker *types.KeywordAnalysis
	for i := range r.KeywordAnalyses {
		switch strings.ToLower(r.KeywordAnalyses[i].Term) {
		case "node.js":
			nodeJS = &r.KeywordAnalyses[i]
		case "docker":
			docker = &r.KeywordAnalyses[i]
		}
	}
	if nodeJS == nil || docker == nil {
		t.Fatalf("keyword analyses missing Node.js or Docker: %+v", r.KeywordAnalyses)
	}
	if !nodeJS.InOtherDocument || !docker.InOtherDocument {
		t.Error("Node.js and Docker must be marked as present in the job text")
	}

	foundKubernetes := false
	for _, mk := range r.MissingKeywords {
		if strings.EqualFold(mk.Term, "kubernetes") {
			foundKubernetes = true
		}
		if strings.EqualFold(mk.Term, "docker") || strings.EqualFold(mk.Term, "node.js") {
			t.Errorf("covered term %q reported as missing", mk.Term)
		}
	}
	if !foundKubernetes {
		t.Errorf("missing keywords = %+v, want Kubernetes", r.MissingKeywords)
	}

	if r.MatchPercentage <= 0 || r.MatchPercentage >= 100 {
		t.Errorf("MatchPercentage = %d, want partial coverage", r.MatchPercentage)
	}
	if r.Similarity.Method != types.MethodFallback {
		t.Errorf("Similarity.Method = %s, want fallback without a model", r.Similarity.Method)
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		t.Errorf("OverallScore = %d, out of range", r.OverallScore)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	e := testEngine(t, types.DefaultAnalysisConfig())
	r := e.Build(Input{})

	if len(r.KeywordAnalyses) != 0 || len(r.MissingKeywords) != 0 {
		t.Errorf("empty inputs produced analyses %+v missing %+v",
			r.KeywordAnalyses, r.MissingKeywords)
	}
	if r.Similarity.Score != 0 {
		t.Errorf("Similarity.Score = %v, want 0 for empty inputs", r.Similarity.Score)
	}
	// An empty reference demands nothing.
	if r.MatchPercentage != 100 {
		t.Errorf("MatchPercentage = %d, want 100 when the reference has no keywords", r.MatchPercentage)
	}
}

func TestBuildTruncationWarning(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	cfg.MaxTextChars = 40
	e := testEngine(t, cfg)

	r := e.Build(Input{Resume: testResume, Job: "short"})
	found := false
	for _, w := range r.Warnings {
		if strings.Contains(w, "resume text truncated") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a resume truncation warning", r.Warnings)
	}
}

func TestBuildLayoutHintsLowerATSScore(t *testing.T) {
	e := testEngine(t, types.DefaultAnalysisConfig())

	clean := e.Build(Input{Resume: testResume, Job: testJob})
	hinted := e.Build(Input{Resume: testResume, Job: testJob,
		Hints: types.LayoutHints{ColumnRegions: 1, Tables: 1}})

	if hinted.ATSCompatibility >= clean.ATSCompatibility {
		t.Errorf("ATSCompatibility with layout issues = %d, want below clean %d",
			hinted.ATSCompatibility, clean.ATSCompatibility)
	}
}

func TestATSScore(t *testing.T) {
	tests := []struct {
		name   string
		issues []types.FormattingIssue
		want   int
	}{
		{"no issues", nil, 100},
		{"one critical", []types.FormattingIssue{{Severity: types.SeverityCritical}}, 75},
		{"mixed", []types.FormattingIssue{
			{Severity: types.SeverityHigh},
			{Severity: types.SeverityMedium},
			{Severity: types.SeverityLow},
		}, 74},
		{"floor at zero", []types.FormattingIssue{
			{Severity: types.SeverityCritical},
			{Severity: types.SeverityCritical},
			{Severity: types.SeverityCritical},
			{Severity: types.SeverityCritical},
			{Severity: types.SeverityCritical},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := atsScore(tt.issues); got != tt.want {
				t.Errorf("atsScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverallScoreBounds(t *testing.T) {
	if got := overallScore(100, 100, 1.0); got != 100 {
		t.Errorf("perfect inputs = %d, want 100", got)
	}
	if got := overallScore(0, 0, 0); got != 0 {
		t.Errorf("zero inputs = %d, want 0", got)
	}
	if got := overallScore(50, 100, 0.5); got != 65 {
		t.Errorf("blend = %d, want 65", got)
	}
}

func TestWriteTable(t *testing.T) {
	e := testEngine(t, types.DefaultAnalysisConfig())
	r := e.Build(Input{Resume: testResume, Job: testJob})

	var b strings.Builder
	WriteTable(&b, r)
	out := b.String()

	for _, want := range []string{"Overall score:", "ATS compatibility:", "Missing keywords:"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
