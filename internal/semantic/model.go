// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semantic scores topical alignment between two documents
// using averaged word vectors, with a token-overlap fallback when no
// vector model is available.
package semantic

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Model is an immutable word-vector table loaded once at startup and
// shared read-only between concurrent analyses.
type Model struct {
	dim     int
	vectors map[string][]float32
}

// LoadModel reads a word2vec/GloVe text-format file: one
// "token v1 v2 ... vN" line per word, with an optional "count dim"
// header line. A corrupt file is a startup error.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vector model: %w", err)
	}
	defer f.Close()

	m := &Model{vectors: make(map[string][]float32)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// word2vec files open with a "vocab_size dimensions" header.
		if lineNo == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("vector model %s line %d: no components", path, lineNo)
		}

		token := strings.ToLower(fields[0])
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("vector model %s line %d: %w", path, lineNo, err)
			}
			vec[i] = float32(v)
		}

		if m.dim == 0 {
			m.dim = len(vec)
		} else if len(vec) != m.dim {
			return nil, fmt.Errorf("vector model %s line %d: dimension %d, want %d",
				path, lineNo, len(vec), m.dim)
		}

		m.vectors[token] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vector model: %w", err)
	}
	if len(m.vectors) == 0 {
		return nil, fmt.Errorf("vector model %s contains no vectors", path)
	}

	return m, nil
}

// Dim returns the vector dimensionality.
func (m *Model) Dim() int { return m.dim }

// Len returns the vocabulary size.
func (m *Model) Len() int { return len(m.vectors) }

// Vector returns the vector for token (case-insensitive).
func (m *Model) Vector(token string) ([]float32, bool) {
	v, ok := m.vectors[strings.ToLower(token)]
	return v, ok
}

// Embed averages the vectors of every in-vocabulary token in text.
// It returns false when no token is covered by the vocabulary.
func (m *Model) Embed(text string) ([]float64, bool) {
	sum := make([]float64, m.dim)
	n := 0
	for _, tok := range significantTokens(text) {
		vec, ok := m.vectors[tok]
		if !ok {
			continue
		}
		for i, v := range vec {
			sum[i] += float64(v)
		}
		n++
	}
	if n == 0 {
		return nil, false
	}
	for i := range sum {
		sum[i] /= float64(n)
	}
	return sum, true
}
