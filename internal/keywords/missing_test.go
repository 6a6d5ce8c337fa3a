package keywords

import (
	"strings"
	"testing"

	"github.com/mu7ammad-3li/cv-lize/internal/lexicon"
	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

func detectMissing(t *testing.T, reference, candidate string) []types.MissingKeyword {
	t.Helper()
	x := NewExtractor(lexicon.Default(), types.DefaultAnalysisConfig())
	d := NewDetector(types.DefaultAnalysisConfig())
	return d.Missing(x.Extract(reference), x.Extract(candidate))
}

func TestMissingScenarioKubernetes(t *testing.T) {
	reference := "Requirements listed below include production experience. " +
		"You will deploy services built on Node.js with Docker and Kubernetes."
	candidate := "Built APIs using Node.js and Docker"

	missing := detectMissing(t, reference, candidate)

	var kube *types.MissingKeyword
	for i := range missing {
		if strings.EqualFold(missing[i].Term, "Kubernetes") {
			kube = &missing[i]
		}
		if strings.EqualFold(missing[i].Term, "Node.js") || strings.EqualFold(missing[i].Term, "Docker") {
			t.Errorf("%s reported missing but candidate has it", missing[i].Term)
		}
	}
	if kube == nil {
		t.Fatal("Kubernetes not reported missing")
	}
	if kube.Category != types.CategoryInfrastructure {
		t.Errorf("category = %s, want infrastructure", kube.Category)
	}
	if kube.Suggestion == "" {
		t.Error("missing keyword has no suggestion")
	}
}

func TestMissingImportanceLadder(t *testing.T) {
	// Push keywords past the 100-word prominent zone with filler, then
	// vary reference frequency.
	filler := strings.Repeat("filler words keep going onward here ", 20) // 120 words

	tests := []struct {
		name string
		ref  string
		term string
		want types.Importance
	}{
		{
			"three occurrences is critical",
			filler + "Docker. We run Docker daily. Docker is mandatory.",
			"Docker",
			types.ImportanceCritical,
		},
		{
			"two occurrences is high",
			filler + "Docker required. Docker preferred.",
			"Docker",
			types.ImportanceHigh,
		},
		{
			"one occurrence is medium",
			filler + "Docker experience helps.",
			"Docker",
			types.ImportanceMedium,
		},
		{
			"prominent zone is critical",
			"Docker required. " + filler,
			"Docker",
			types.ImportanceCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := detectMissing(t, tt.ref, "unrelated candidate text")
			for _, mk := range missing {
				if strings.EqualFold(mk.Term, tt.term) {
					if mk.Importance != tt.want {
						t.Errorf("importance = %s, want %s", mk.Importance, tt.want)
					}
					return
				}
			}
			t.Fatalf("%s not reported missing", tt.term)
		})
	}
}

func TestMissingEntityPassTermIsLow(t *testing.T) {
	filler := strings.Repeat("plain lowercase filler text continues without pause ", 15)
	missing := detectMissing(t, filler+"we also love Clickhouse here", "nothing relevant")

	for _, mk := range missing {
		if strings.EqualFold(mk.Term, "Clickhouse") {
			if mk.Importance != types.ImportanceLow {
				t.Errorf("entity-pass term importance = %s, want low", mk.Importance)
			}
			return
		}
	}
	t.Fatal("Clickhouse not reported missing")
}

func TestMissingScenarioPythonCritical(t *testing.T) {
	// Python six times in a roughly 100-word reference: critical.
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteString("Python is required for this position. ")
	}
	b.WriteString(strings.Repeat("additional duties involve routine maintenance tasks ", 12))

	missing := detectMissing(t, b.String(), "Java developer with Spring experience")
	for _, mk := range missing {
		if strings.EqualFold(mk.Term, "Python") {
			if mk.Importance != types.ImportanceCritical {
				t.Errorf("importance = %s, want critical", mk.Importance)
			}
			return
		}
	}
	t.Fatal("Python not reported missing")
}

func TestMissingEmptyReference(t *testing.T) {
	missing := detectMissing(t, "", "Python and Docker expert")
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none for an empty reference", missing)
	}
}

func TestMissingReferenceWithoutKeywords(t *testing.T) {
	missing := detectMissing(t, "plain ordinary words without anything notable", "Python expert")
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none when the reference has no keywords", missing)
	}
}

func TestMissingSubsetAndDisjointness(t *testing.T) {
	reference := "We want Python, Docker, Kubernetes, Terraform and PostgreSQL."
	candidate := "I know Python and PostgreSQL."

	x := NewExtractor(lexicon.Default(), types.DefaultAnalysisConfig())
	refExt := x.Extract(reference)
	candExt := x.Extract(candidate)
	missing := NewDetector(types.DefaultAnalysisConfig()).Missing(refExt, candExt)

	refTerms := refExt.Terms()
	candTerms := candExt.Terms()
	for _, mk := range missing {
		lower := strings.ToLower(mk.Term)
		if !refTerms[lower] {
			t.Errorf("%s reported missing but not a reference keyword", mk.Term)
		}
		if candTerms[lower] {
			t.Errorf("%s reported missing but present in candidate", mk.Term)
		}
	}
}

func TestMissingSortedByImportance(t *testing.T) {
	filler := strings.Repeat("steady unremarkable prose marches right along today ", 15)
	reference := filler +
		"Docker Docker Docker is essential. Terraform appears twice, Terraform indeed. Jenkins once."
	missing := detectMissing(t, reference, "irrelevant")

	for i := 1; i < len(missing); i++ {
		if missing[i].Importance.Rank() < missing[i-1].Importance.Rank() {
			t.Fatalf("missing keywords out of importance order: %s(%s) after %s(%s)",
				missing[i].Term, missing[i].Importance,
				missing[i-1].Term, missing[i-1].Importance)
		}
	}
}
