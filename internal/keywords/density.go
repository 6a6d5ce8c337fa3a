// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"sort"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// Analyzer merges raw occurrences into per-term density and context
// records. It carries only policy configuration and is safe to share.
type Analyzer struct {
	cfg types.AnalysisConfig
}

// NewAnalyzer builds a density analyzer with the given policy.
func NewAnalyzer(cfg types.AnalysisConfig) *Analyzer {
	return &Analyzer{cfg: cfg.Normalize()}
}

// Analyze produces one KeywordAnalysis per distinct (term, category)
// pair in ext, sorted by density descending. If other is non-nil,
// InOtherDocument marks terms that also appear there.
func (a *Analyzer) Analyze(ext Extraction, other *Extraction) []types.KeywordAnalysis {
	if len(ext.Occurrences) == 0 {
		return nil
	}

	var otherTerms map[string]bool
	if other != nil {
		otherTerms = other.Terms()
	}

	sentences := splitSentences(ext.Text)

	type key struct {
		term     string
		category types.KeywordCategory
	}
	index := make(map[key]int)
	var analyses []types.KeywordAnalysis

	for _, occ := range ext.Occurrences {
		k := key{term: strings.ToLower(occ.Term), category: occ.Category}
		i, ok := index[k]
		if !ok {
			i = len(analyses)
			index[k] = i
			analyses = append(analyses, types.KeywordAnalysis{
				Term:            occ.Term,
				Category:        occ.Category,
				InOtherDocument: otherTerms[k.term],
			})
		}
		analyses[i].Frequency++

		// Snippets beyond the cap still count toward frequency but are
		// not re-stored.
		if len(analyses[i].ContextSnippets) < a.cfg.MaxContextSnippets {
			if snippet := sentenceAt(sentences, occ.Start); snippet != "" {
				if !containsSnippet(analyses[i].ContextSnippets, snippet) {
					analyses[i].ContextSnippets = append(analyses[i].ContextSnippets, snippet)
				}
			}
		}
	}

	for i := range analyses {
		analyses[i].Density = Density(analyses[i].Frequency, ext.TokenCount)
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].Density != analyses[j].Density {
			return analyses[i].Density > analyses[j].Density
		}
		return strings.ToLower(analyses[i].Term) < strings.ToLower(analyses[j].Term)
	})

	return analyses
}

// Density returns 100 * frequency / tokens, or 0 for an empty text.
func Density(frequency, tokens int) float64 {
	if tokens <= 0 {
		return 0
	}
	return float64(frequency) / float64(tokens) * 100
}

// sentence is a sentence with its byte span in the source text.
type sentence struct {
	text  string
	start int
	end   int
}

// splitSentences cuts text on terminal punctuation and newlines. The
// spans cover the whole input so every occurrence falls into exactly
// one sentence.
func splitSentences(text string) []sentence {
	var out []sentence
	start := 0
	flush := func(end int) {
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			out = append(out, sentence{text: trimmed, start: start, end: end})
		}
		start = end
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// Consume the punctuation run so "..." closes one sentence.
			j := i + 1
			for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
				j++
			}
			// Only terminal punctuation ends a sentence; "Node.js" and
			// "e.g." keep their inner dots.
			if j < len(text) && text[j] != ' ' && text[j] != '\t' && text[j] != '\n' && text[j] != '\r' {
				i = j - 1
				continue
			}
			flush(j)
			i = j - 1
		case '\n':
			flush(i + 1)
		}
	}
	flush(len(text))
	return out
}

// sentenceAt returns the sentence containing byte offset pos.
func sentenceAt(sentences []sentence, pos int) string {
	i := sort.Search(len(sentences), func(i int) bool {
		return sentences[i].end > pos
	})
	if i < len(sentences) && pos >= sentences[i].start {
		return sentences[i].text
	}
	// pos falls in trimmed whitespace between sentences.
	if i < len(sentences) {
		return sentences[i].text
	}
	return ""
}

func containsSnippet(snippets []string, s string) bool {
	for _, have := range snippets {
		if have == s {
			return true
		}
	}
	return false
}
