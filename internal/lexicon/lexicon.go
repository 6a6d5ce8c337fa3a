// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon holds the static category -> canonical phrase table
// used by keyword extraction. A Lexicon is built once at process start
// and is read-only afterwards, so it may be shared freely between
// concurrent analyses.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

//go:embed default.yaml
var defaultYAML []byte

// file is the on-disk representation of a lexicon.
type file struct {
	Version    int                 `yaml:"version"`
	Categories map[string][]string `yaml:"categories"`
}

// Phrase is one canonical lexicon entry.
type Phrase struct {
	// Term is the phrase in its registered spelling (e.g. "Node.js").
	Term string

	// Category is the lexicon category the phrase belongs to.
	Category types.KeywordCategory
}

// Lexicon is the immutable phrase table.
type Lexicon struct {
	version int
	phrases []Phrase
	byLower map[string]Phrase
}

// Default returns the built-in lexicon. It panics only on a corrupt
// embedded table, which is a build defect rather than a runtime
// condition.
func Default() *Lexicon {
	lex, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded table invalid: %v", err))
	}
	return lex
}

// Load reads a lexicon from a YAML file. An empty path returns the
// built-in lexicon. A corrupt file is a startup error, not a
// per-request condition.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	lex, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}
	return lex, nil
}

func parse(data []byte) (*Lexicon, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("lexicon has no categories")
	}

	lex := &Lexicon{
		version: f.Version,
		byLower: make(map[string]Phrase),
	}

	for category, terms := range f.Categories {
		for _, term := range terms {
			term = strings.TrimSpace(term)
			if term == "" {
				return nil, fmt.Errorf("category %q contains an empty phrase", category)
			}
			p := Phrase{Term: term, Category: types.KeywordCategory(category)}
			lex.phrases = append(lex.phrases, p)
			lex.byLower[strings.ToLower(term)] = p
		}
	}

	// Longest phrases first so extraction prefers "machine learning"
	// over "learning" when matches overlap.
	sort.SliceStable(lex.phrases, func(i, j int) bool {
		if len(lex.phrases[i].Term) != len(lex.phrases[j].Term) {
			return len(lex.phrases[i].Term) > len(lex.phrases[j].Term)
		}
		return lex.phrases[i].Term < lex.phrases[j].Term
	})

	return lex, nil
}

// Version returns the lexicon table version.
func (l *Lexicon) Version() int { return l.version }

// Len returns the number of registered phrases.
func (l *Lexicon) Len() int { return len(l.phrases) }

// Phrases returns all phrases ordered longest-first. The returned slice
// must not be modified.
func (l *Lexicon) Phrases() []Phrase { return l.phrases }

// Lookup returns the phrase registered under term (case-insensitive).
func (l *Lexicon) Lookup(term string) (Phrase, bool) {
	p, ok := l.byLower[strings.ToLower(term)]
	return p, ok
}

// Categories returns the sorted list of category names present.
func (l *Lexicon) Categories() []types.KeywordCategory {
	seen := make(map[types.KeywordCategory]bool)
	var cats []types.KeywordCategory
	for _, p := range l.phrases {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
