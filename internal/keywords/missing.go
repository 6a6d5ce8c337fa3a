// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// Detector finds reference-document keywords absent from a candidate
// and ranks how badly each gap hurts.
type Detector struct {
	cfg types.AnalysisConfig
}

// NewDetector builds a missing-keyword detector with the given policy.
func NewDetector(cfg types.AnalysisConfig) *Detector {
	return &Detector{cfg: cfg.Normalize()}
}

// Missing diffs the reference extraction against the candidate's term
// set. Terms are compared by exact canonical-phrase equality,
// case-insensitive. A reference with no recognized keywords yields an
// empty list: there is nothing to compare against.
func (d *Detector) Missing(ref Extraction, candidate Extraction) []types.MissingKeyword {
	if len(ref.Occurrences) == 0 {
		return nil
	}

	candidateTerms := candidate.Terms()
	zoneEnd := prominentZoneEnd(ref.Text, d.cfg.ProminentZoneWords)

	type gap struct {
		term      string
		category  types.KeywordCategory
		frequency int
		inZone    bool
	}
	index := make(map[string]int)
	var gaps []gap

	for _, occ := range ref.Occurrences {
		lower := strings.ToLower(occ.Term)
		if candidateTerms[lower] {
			continue
		}
		i, ok := index[lower]
		if !ok {
			i = len(gaps)
			index[lower] = i
			gaps = append(gaps, gap{term: occ.Term, category: occ.Category})
		}
		gaps[i].frequency++
		if occ.Start < zoneEnd {
			gaps[i].inZone = true
		}
	}

	missing := make([]types.MissingKeyword, 0, len(gaps))
	for _, g := range gaps {
		importance := d.rank(g.frequency, g.inZone, g.category)
		missing = append(missing, types.MissingKeyword{
			Term:       g.term,
			Category:   g.category,
			Importance: importance,
			Suggestion: suggestion(g.term, g.category),
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].Importance.Rank() != missing[j].Importance.Rank() {
			return missing[i].Importance.Rank() < missing[j].Importance.Rank()
		}
		return strings.ToLower(missing[i].Term) < strings.ToLower(missing[j].Term)
	})

	return missing
}

// rank derives importance from the term's prominence in the reference.
// Entity-pass terms rank low: the lexicon never vouched for them.
func (d *Detector) rank(frequency int, inZone bool, category types.KeywordCategory) types.Importance {
	if category == types.CategoryUncategorized {
		return types.ImportanceLow
	}
	switch {
	case frequency >= d.cfg.CriticalFrequency || inZone:
		return types.ImportanceCritical
	case frequency >= d.cfg.HighFrequency:
		return types.ImportanceHigh
	default:
		return types.ImportanceMedium
	}
}

// prominentZoneEnd returns the byte offset just past the first n
// whitespace-separated words of text.
func prominentZoneEnd(text string, n int) int {
	words := 0
	inWord := false
	for i := 0; i < len(text); i++ {
		isSpace := text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r'
		if !isSpace && !inWord {
			inWord = true
			words++
		} else if isSpace && inWord {
			inWord = false
			if words >= n {
				return i
			}
		}
	}
	return len(text)
}

// suggestion produces per-category advice for a missing keyword. The
// wording stresses honesty: candidates should add experience they have,
// not invent it.
func suggestion(term string, category types.KeywordCategory) string {
	switch category {
	case types.CategoryLanguages:
		return fmt.Sprintf("Add %s to your skills section if you have experience with this programming language. If not, consider learning it for this role.", term)
	case types.CategoryFrameworks:
		return fmt.Sprintf("Highlight any projects or work experience using %s. If you haven't used it, consider building a sample project.", term)
	case types.CategoryInfrastructure:
		return fmt.Sprintf("Add %s experience to your resume if you've worked with this platform. Cloud certifications can strengthen your profile.", term)
	case types.CategoryDatabases:
		return fmt.Sprintf("Include %s in your technical skills and mention specific use cases in your work experience.", term)
	case types.CategoryTools:
		return fmt.Sprintf("List %s in your tools section if you've used it. It's commonly used in this field.", term)
	case types.CategoryMethodologies:
		return fmt.Sprintf("Demonstrate %s experience by describing how you've applied this methodology in past projects.", term)
	case types.CategoryAIML:
		return fmt.Sprintf("Add %s to your skills and showcase relevant projects or research. This is a key requirement for the role.", term)
	default:
		return fmt.Sprintf("Consider adding %s to your resume if you have relevant experience. Do not fabricate it.", term)
	}
}
