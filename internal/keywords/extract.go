// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords extracts lexicon keywords from plain text and turns
// the raw occurrences into density, context, and gap analyses.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mu7ammad-3li/cv-lize/internal/lexicon"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// Extractor scans text against a lexicon plus a generic entity pass.
// It is stateless apart from the injected read-only lexicon and may be
// shared between concurrent analyses.
type Extractor struct {
	lex *lexicon.Lexicon
	cfg types.AnalysisConfig
}

// NewExtractor builds an extractor over the given lexicon.
func NewExtractor(lex *lexicon.Lexicon, cfg types.AnalysisConfig) *Extractor {
	return &Extractor{lex: lex, cfg: cfg.Normalize()}
}

// Extraction is the result of one extraction call. Text holds the
// (possibly truncated) input the occurrences refer to.
type Extraction struct {
	Text        string
	Occurrences []types.KeywordOccurrence
	TokenCount  int
	Truncated   bool
}

// Terms returns the distinct lowercased terms present.
func (e Extraction) Terms() map[string]bool {
	terms := make(map[string]bool, len(e.Occurrences))
	for _, occ := range e.Occurrences {
		terms[strings.ToLower(occ.Term)] = true
	}
	return terms
}

// Extract finds every lexicon phrase and entity-pass term in text.
// Empty text yields an empty extraction, never an error. Oversized
// text is truncated on a rune boundary and flagged.
func (x *Extractor) Extract(text string) Extraction {
	text, truncated := truncateRunes(text, x.cfg.MaxTextChars)

	ext := Extraction{
		Text:       text,
		TokenCount: len(strings.Fields(text)),
		Truncated:  truncated,
	}
	if text == "" {
		return ext
	}

	lower := strings.ToLower(text)
	covered := make([]bool, len(text))

	// Lexicon pass. Phrases come longest-first, so when matches overlap
	// the longer phrase claims the span and the shorter one is skipped.
	for _, p := range x.lex.Phrases() {
		needle := strings.ToLower(p.Term)
		for _, start := range phraseMatches(lower, needle) {
			end := start + len(needle)
			if spanCovered(covered, start, end) {
				continue
			}
			markCovered(covered, start, end)
			ext.Occurrences = append(ext.Occurrences, types.KeywordOccurrence{
				Term:     p.Term,
				Category: p.Category,
				Start:    start,
				End:      end,
			})
		}
	}

	// Entity pass: recover proper nouns and tech-looking tokens the
	// lexicon does not know about.
	for _, tok := range tokenize(text) {
		if spanCovered(covered, tok.start, tok.end) {
			continue
		}
		if !looksLikeEntity(tok.text) {
			continue
		}
		if _, known := x.lex.Lookup(tok.text); known {
			continue
		}
		markCovered(covered, tok.start, tok.end)
		ext.Occurrences = append(ext.Occurrences, types.KeywordOccurrence{
			Term:     tok.text,
			Category: types.CategoryUncategorized,
			Start:    tok.start,
			End:      tok.end,
		})
	}

	sort.Slice(ext.Occurrences, func(i, j int) bool {
		if ext.Occurrences[i].Start != ext.Occurrences[j].Start {
			return ext.Occurrences[i].Start < ext.Occurrences[j].Start
		}
		return ext.Occurrences[i].End > ext.Occurrences[j].End
	})

	return ext
}

// phraseMatches returns the byte offsets of every word-boundary match
// of needle in haystack. Both must already be lowercased.
func phraseMatches(haystack, needle string) []int {
	var starts []int
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			starts = append(starts, start)
		}
		from = start + 1
	}
	return starts
}

// boundaryBefore reports whether position start begins a word: the
// preceding rune must not be a letter or digit. Symbol-leading phrases
// like ".NET" or "C++" rely on the same rule for their inner edge.
func boundaryBefore(s string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return !isWordRune(r)
}

// boundaryAfter reports whether position end closes a word.
func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r := firstRune(s[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func spanCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}

// token is a word with its byte span in the source text.
type token struct {
	text  string
	start int
	end   int
}

// tokenize splits text into tokens, treating + # . as word characters
// so terms like "C++", "C#", and "socket.io" survive intact. Trailing
// dots are stripped so sentence punctuation does not stick to tokens.
func tokenize(text string) []token {
	var toks []token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		trimmed := strings.TrimRight(word, ".")
		if trimmed != "" {
			toks = append(toks, token{text: trimmed, start: start, end: start + len(trimmed)})
		}
		start = -1
	}
	for i, r := range text {
		if isWordRune(r) || r == '+' || r == '#' || r == '.' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return toks
}

// entityStopWords are common capitalized words that the entity pass
// must not mistake for technologies or proper nouns.
var entityStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "our": true,
	"you": true, "your": true, "are": true, "was": true, "were": true,
	"this": true, "that": true, "have": true, "will": true, "from": true,
	"work": true, "team": true, "role": true, "job": true, "who": true,
	"what": true, "about": true, "their": true, "they": true, "been": true,
	"experience": true, "skills": true, "education": true, "summary": true,
	"projects": true, "certifications": true, "responsibilities": true,
	"requirements": true, "qualifications": true, "company": true,
	"university": true, "college": true, "resume": true, "engineer": true,
	"developer": true, "senior": true, "junior": true, "lead": true,
	"manager": true, "january": true, "february": true, "march": true,
	"april": true, "may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"present": true, "using": true, "built": true, "apis": true,
}

// looksLikeEntity applies the heuristics that approximate a named
// entity pass: a capitalized proper noun, a short acronym, or a token
// with technology-style punctuation or digit mixing.
func looksLikeEntity(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 {
		return false
	}
	if entityStopWords[strings.ToLower(word)] {
		return false
	}

	hasLetter := false
	hasDigit := false
	hasSymbol := false
	upper := 0
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '+' || r == '#' || r == '.':
			hasSymbol = true
		}
	}
	if !hasLetter {
		return false
	}

	switch {
	case hasSymbol || hasDigit:
		// "C++", "C#", "node.js", "ES2015".
		return true
	case upper == len(runes) && len(runes) <= 6:
		// Short acronym: "JVM", "ETL".
		return true
	case unicode.IsUpper(runes[0]) && upper == 1 && len(runes) >= 3:
		// Capitalized proper noun: "Kafka", "Snowflake".
		return true
	}
	return false
}

// truncateRunes caps s at max runes, cutting on a rune boundary.
func truncateRunes(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i], true
		}
		count++
	}
	return s, false
}
