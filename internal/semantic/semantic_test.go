package semantic

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

// writeTestModel writes a tiny vector file and loads it.
func loadTestModel(t *testing.T, content string) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	return m
}

const tinyModel = `python 1.0 0.0 0.1
golang 0.9 0.1 0.1
docker 0.0 1.0 0.0
kubernetes 0.1 0.9 0.0
cooking -0.8 -0.6 0.2
baking -0.7 -0.7 0.1
`

func TestLoadModel(t *testing.T) {
	m := loadTestModel(t, tinyModel)
	if m.Len() != 6 {
		t.Errorf("vocabulary = %d, want 6", m.Len())
	}
	if m.Dim() != 3 {
		t.Errorf("dim = %d, want 3", m.Dim())
	}
	if _, ok := m.Vector("Python"); !ok {
		t.Error("lookup is not case-insensitive")
	}
}

func TestLoadModelWithHeader(t *testing.T) {
	m := loadTestModel(t, "2 3\npython 1 0 0\ndocker 0 1 0\n")
	if m.Len() != 2 {
		t.Errorf("vocabulary = %d, want 2 after skipping header", m.Len())
	}
}

func TestLoadModelErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dimension mismatch", "python 1 0 0\ndocker 0 1\n"},
		{"non-numeric component", "python 1 zero 0\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadModel(path); err == nil {
				t.Error("LoadModel accepted a corrupt file")
			}
		})
	}
}

func TestScoreVectorMethod(t *testing.T) {
	s := NewScorer(loadTestModel(t, tinyModel))

	sim := s.Score("python golang services", "docker kubernetes cluster")
	if sim.Method != types.MethodVector {
		t.Fatalf("method = %s, want vector", sim.Method)
	}
	if sim.Score < 0 || sim.Score > 1 {
		t.Errorf("score = %f, want within [0, 1]", sim.Score)
	}

	// Related tech terms must score higher than unrelated domains.
	related := s.Score("python golang", "docker kubernetes").Score
	unrelated := s.Score("python golang", "cooking baking").Score
	if related <= unrelated {
		t.Errorf("related = %f <= unrelated = %f", related, unrelated)
	}
}

func TestScoreSelfSimilarity(t *testing.T) {
	s := NewScorer(loadTestModel(t, tinyModel))
	text := "python and docker with kubernetes"

	sim := s.Score(text, text)
	if math.Abs(sim.Score-1.0) > 1e-9 {
		t.Errorf("self-similarity = %f, want 1.0", sim.Score)
	}
}

func TestScoreSymmetric(t *testing.T) {
	s := NewScorer(loadTestModel(t, tinyModel))
	a := "python golang docker"
	b := "kubernetes cooking"

	if s.Score(a, b).Score != s.Score(b, a).Score {
		t.Error("score is not symmetric under document swap")
	}
}

func TestScoreNegativeCosineClamped(t *testing.T) {
	s := NewScorer(loadTestModel(t, tinyModel))
	sim := s.Score("python golang", "cooking baking")
	if sim.Score < 0 {
		t.Errorf("score = %f, negative cosine must clamp to 0", sim.Score)
	}
}

func TestScoreFallbackWithoutModel(t *testing.T) {
	s := NewScorer(nil)

	sim := s.Score("python docker kubernetes", "python docker terraform")
	if sim.Method != types.MethodFallback {
		t.Fatalf("method = %s, want fallback", sim.Method)
	}
	// Sets {python, docker, kubernetes} and {python, docker, terraform}:
	// 2 shared of 4 total.
	if math.Abs(sim.Score-0.5) > 1e-9 {
		t.Errorf("score = %f, want 0.5", sim.Score)
	}
}

func TestScoreFallbackSelfSimilarity(t *testing.T) {
	s := NewScorer(nil)
	text := "experienced python developer shipping docker containers"
	if got := s.Score(text, text).Score; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("fallback self-similarity = %f, want 1.0", got)
	}
}

func TestScoreVocabularyMissFallsBack(t *testing.T) {
	s := NewScorer(loadTestModel(t, tinyModel))
	sim := s.Score("python docker", "quantum basketweaving")
	if sim.Method != types.MethodFallback {
		t.Errorf("method = %s, want fallback when one side has no coverage", sim.Method)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	for _, s := range []*Scorer{NewScorer(nil), NewScorer(loadTestModel(t, tinyModel))} {
		sim := s.Score("", "")
		if sim.Score != 0 {
			t.Errorf("empty inputs score = %f, want 0", sim.Score)
		}
	}
}
