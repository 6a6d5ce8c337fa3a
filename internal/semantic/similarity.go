// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"math"
	"strings"
	"unicode"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// Scorer computes document similarity. With a model it uses averaged
// word-vector cosine; without one it degrades to a token-overlap ratio
// flagged as a fallback so callers never conflate the two scales.
type Scorer struct {
	model *Model
}

// NewScorer builds a scorer. model may be nil.
func NewScorer(model *Model) *Scorer {
	return &Scorer{model: model}
}

// HasModel reports whether vector-based scoring is available.
func (s *Scorer) HasModel() bool { return s.model != nil }

// Score returns the semantic alignment of a and b in [0.0, 1.0].
// Cosine similarity is symmetric, so Score(a, b) == Score(b, a).
// Empty or vocabulary-free inputs score 0 rather than erroring.
func (s *Scorer) Score(a, b string) types.Similarity {
	if s.model != nil {
		va, okA := s.model.Embed(a)
		vb, okB := s.model.Embed(b)
		if okA && okB {
			return types.Similarity{
				Score:  clamp01(cosine(va, vb)),
				Method: types.MethodVector,
			}
		}
		// Vocabulary miss on either side degrades to overlap scoring
		// the same way a missing model does.
	}

	return types.Similarity{
		Score:  overlapRatio(a, b),
		Method: types.MethodFallback,
	}
}

// cosine returns (a . b) / (|a| * |b|), or 0 for a zero vector.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// overlapRatio is the Jaccard ratio of the two documents' significant
// word sets: intersection over union, in [0, 1].
func overlapRatio(a, b string) float64 {
	setA := significantSet(a)
	setB := significantSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// overlapStopWords filters common English words that add noise to
// token-overlap scoring.
var overlapStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
}

// significantTokens lowercases and tokenizes text, keeping words of
// three or more runes that are not stop words. + # . count as word
// characters so "c++", "c#", and "node.js" survive.
func significantTokens(text string) []string {
	var toks []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !overlapStopWords[w] {
			toks = append(toks, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return toks
}

func significantSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range significantTokens(text) {
		set[tok] = true
	}
	return set
}
