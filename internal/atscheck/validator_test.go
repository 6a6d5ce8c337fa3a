package atscheck

import (
	"strings"
	"testing"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

const cleanResume = `John Doe
john.doe@example.com | (555) 123-4567 | linkedin.com/in/johndoe

## Summary
Backend engineer, eight years building billing systems.

## Experience
Acme Corp, 01/2019 - 06/2024. Shipped the payments platform.

## Education
B.S. Computer Science.
`

func countType(issues []types.FormattingIssue, t types.IssueType) int {
	n := 0
	for _, is := range issues {
		if is.Type == t {
			n++
		}
	}
	return n
}

func TestValidateCleanResume(t *testing.T) {
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(cleanResume, types.LayoutHints{}, nil)
	if len(issues) != 0 {
		t.Errorf("issues = %+v, want none for a clean resume", issues)
	}
}

func TestValidateLayoutHints(t *testing.T) {
	v := NewValidator(types.DefaultAnalysisConfig())
	hints := types.LayoutHints{ColumnRegions: 1, Tables: 2, Images: 3}
	issues := v.Validate(cleanResume, hints, nil)

	if got := countType(issues, types.IssueMultiColumn); got != 1 {
		t.Errorf("multi_column issues = %d, want 1", got)
	}
	// Repeated patterns are never deduplicated.
	if got := countType(issues, types.IssueTable); got != 2 {
		t.Errorf("table issues = %d, want 2", got)
	}
	if got := countType(issues, types.IssueGraphics); got != 3 {
		t.Errorf("graphics issues = %d, want 3", got)
	}
}

func TestValidateSortsMostSevereFirst(t *testing.T) {
	v := NewValidator(types.DefaultAnalysisConfig())
	hints := types.LayoutHints{ColumnRegions: 1, Tables: 1, Images: 1}
	issues := v.Validate(cleanResume, hints, nil)

	for i := 1; i < len(issues); i++ {
		if issues[i-1].Severity.Rank() > issues[i].Severity.Rank() {
			t.Fatalf("issue %d (%s) ranked after less severe %d (%s)",
				i-1, issues[i-1].Severity, i, issues[i].Severity)
		}
	}
	if issues[0].Severity != types.SeverityCritical {
		t.Errorf("first issue severity = %s, want critical", issues[0].Severity)
	}
}

func TestValidateMultiColumnTextHeuristic(t *testing.T) {
	var b strings.Builder
	b.WriteString("John Doe\njohn@example.com\n")
	for i := 0; i < 15; i++ {
		b.WriteString("short column text\n")
	}
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(b.String(), types.LayoutHints{}, nil)

	if got := countType(issues, types.IssueMultiColumn); got != 1 {
		t.Errorf("multi_column issues = %d, want 1 from text heuristic", got)
	}
}

func TestValidateNonStandardHeaders(t *testing.T) {
	text := "Jane Roe\njane@example.com\n\n## My Journey\nstory\n\n## Experience\nAcme\n"
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(text, types.LayoutHints{}, nil)

	if got := countType(issues, types.IssueNonStandardHeaders); got != 1 {
		t.Fatalf("non_standard_headers issues = %d, want 1", got)
	}
	for _, is := range issues {
		if is.Type == types.IssueNonStandardHeaders && !strings.Contains(is.Description, "My Journey") {
			t.Errorf("description = %q, want the offending heading named", is.Description)
		}
	}
}

func TestValidateHeaderToleratesNearMisses(t *testing.T) {
	tests := []struct {
		heading string
		ok      bool
	}{
		{"Experience", true},
		{"WORK EXPERIENCE", true},
		{"Technical Skills", true},
		{"Skils", true}, // one edit away
		{"Certifications", true},
		{"My Journey", false},
		{"Hobbies", false},
	}
	for _, tt := range tests {
		if got := isStandardHeader(tt.heading); got != tt.ok {
			t.Errorf("isStandardHeader(%q) = %v, want %v", tt.heading, got, tt.ok)
		}
	}
}

func TestValidateContactMissing(t *testing.T) {
	text := "Jane Roe\n\n## Experience\nAcme Corp, 2019.\n"
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(text, types.LayoutHints{}, nil)

	if got := countType(issues, types.IssueContactMissing); got != 1 {
		t.Errorf("contact_info_missing issues = %d, want 1", got)
	}
	if got := countType(issues, types.IssueContactPlacement); got != 0 {
		t.Errorf("contact_placement issues = %d, want 0 when contact is absent entirely", got)
	}
}

func TestValidateContactOutsideIdentityBlock(t *testing.T) {
	text := "Jane Roe\n\n## Experience\nAcme Corp, 2019.\n\n## Contact\nReach me at jane@example.com.\n"
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(text, types.LayoutHints{}, nil)

	if got := countType(issues, types.IssueContactPlacement); got != 1 {
		t.Errorf("contact_placement issues = %d, want 1", got)
	}
	if got := countType(issues, types.IssueContactMissing); got != 0 {
		t.Errorf("contact_info_missing issues = %d, want 0", got)
	}
}

func TestValidateMixedDateFormats(t *testing.T) {
	mixed := "John Doe\njohn@example.com\n\n## Experience\nAcme, 01/2019 - June 2024.\n"
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(mixed, types.LayoutHints{}, nil)
	if got := countType(issues, types.IssueDateFormat); got != 1 {
		t.Errorf("date_format issues = %d, want 1 for mixed styles", got)
	}

	consistent := "John Doe\njohn@example.com\n\n## Experience\nAcme, 01/2019 - 06/2024.\n"
	issues = v.Validate(consistent, types.LayoutHints{}, nil)
	if got := countType(issues, types.IssueDateFormat); got != 0 {
		t.Errorf("date_format issues = %d, want 0 for a single style", got)
	}
}

func TestValidateKeywordStuffingScenario(t *testing.T) {
	// A term at 8% density must yield a stuffing issue naming the term.
	analyses := []types.KeywordAnalysis{
		{Term: "Python", Category: types.CategoryLanguages, Frequency: 8, Density: 8.0},
		{Term: "Docker", Category: types.CategoryInfrastructure, Frequency: 2, Density: 2.0},
	}
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(cleanResume, types.LayoutHints{}, analyses)

	if got := countType(issues, types.IssueKeywordStuffing); got != 1 {
		t.Fatalf("keyword_stuffing issues = %d, want 1", got)
	}
	for _, is := range issues {
		if is.Type != types.IssueKeywordStuffing {
			continue
		}
		if is.Severity != types.SeverityHigh {
			t.Errorf("stuffing severity = %s, want high", is.Severity)
		}
		if !strings.Contains(is.Description, "Python") {
			t.Errorf("description = %q, want the stuffed term named", is.Description)
		}
	}
}

func TestValidateUnderRepresentedKeywords(t *testing.T) {
	var analyses []types.KeywordAnalysis
	for _, term := range []string{"Go", "Python", "Docker", "Kubernetes", "Terraform", "PostgreSQL"} {
		analyses = append(analyses, types.KeywordAnalysis{
			Term:            term,
			InOtherDocument: true,
			Frequency:       1,
			Density:         0.1,
		})
	}
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(cleanResume, types.LayoutHints{}, analyses)

	if got := countType(issues, types.IssueLowKeywordDensity); got != 1 {
		t.Errorf("low_keyword_density issues = %d, want 1 aggregate issue", got)
	}
}

func TestValidateUnusualCharactersAndLongLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("John Doe\njohn@example.com\n")
	b.WriteString(strings.Repeat("★", 25) + "\n")
	for i := 0; i < 6; i++ {
		b.WriteString(strings.Repeat("word ", 50) + "\n")
	}
	v := NewValidator(types.DefaultAnalysisConfig())
	issues := v.Validate(b.String(), types.LayoutHints{}, nil)

	if got := countType(issues, types.IssueUnusualCharacters); got != 1 {
		t.Errorf("unusual_characters issues = %d, want 1", got)
	}
	if got := countType(issues, types.IssueLongLines); got != 1 {
		t.Errorf("long_lines issues = %d, want 1", got)
	}
}

func TestValidateEmptyText(t *testing.T) {
	v := NewValidator(types.DefaultAnalysisConfig())
	if issues := v.Validate("", types.LayoutHints{}, nil); len(issues) != 0 {
		t.Errorf("issues = %+v, want none for empty input", issues)
	}
}

func TestDetectContact(t *testing.T) {
	c := DetectContact(cleanResume)
	if c.Email != "john.doe@example.com" {
		t.Errorf("Email = %q", c.Email)
	}
	if c.Phone == "" {
		t.Error("Phone not detected")
	}
	if c.LinkedIn != "linkedin.com/in/johndoe" {
		t.Errorf("LinkedIn = %q", c.LinkedIn)
	}
	if got := DetectContact("no contact here"); got != (types.ContactInfo{}) {
		t.Errorf("DetectContact on plain text = %+v, want zero value", got)
	}
}
