package types

// AnalysisConfig holds the heuristic policy knobs for keyword analysis.
// The numeric cutoffs are policy, not contract: they default to the
// values the scoring was tuned with but may be overridden per
// deployment via the config file or environment.
type AnalysisConfig struct {
	// MaxTextChars caps input size. Longer texts are truncated on a
	// rune boundary and a warning is recorded on the report (default
	// 50000).
	MaxTextChars int `json:"max_text_chars" yaml:"max_text_chars"`

	// MaxContextSnippets caps stored context sentences per term
	// (default 3). Additional occurrences still count toward frequency.
	MaxContextSnippets int `json:"max_context_snippets" yaml:"max_context_snippets"`

	// StuffingDensity is the density percentage above which a term is
	// flagged as possible keyword stuffing (default 5.0).
	StuffingDensity float64 `json:"stuffing_density" yaml:"stuffing_density"`

	// UnderRepresentedDensity is the density percentage below which a
	// term the reference treats as important is flagged as
	// under-represented (default 0.5).
	UnderRepresentedDensity float64 `json:"under_represented_density" yaml:"under_represented_density"`

	// CriticalFrequency is the reference-document frequency at or above
	// which a missing keyword ranks critical (default 3).
	CriticalFrequency int `json:"critical_frequency" yaml:"critical_frequency"`

	// HighFrequency is the reference-document frequency at or above
	// which a missing keyword ranks high (default 2).
	HighFrequency int `json:"high_frequency" yaml:"high_frequency"`

	// ProminentZoneWords is the size of the leading word window that
	// approximates a summary/requirements zone; a missing keyword seen
	// there ranks critical regardless of frequency (default 100).
	ProminentZoneWords int `json:"prominent_zone_words" yaml:"prominent_zone_words"`
}

// DefaultAnalysisConfig returns the tuned policy defaults.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MaxTextChars:            50000,
		MaxContextSnippets:      3,
		StuffingDensity:         5.0,
		UnderRepresentedDensity: 0.5,
		CriticalFrequency:       3,
		HighFrequency:           2,
		ProminentZoneWords:      100,
	}
}

// Normalize fills zero-valued fields with defaults so a partially
// specified config file still yields a usable policy.
func (c AnalysisConfig) Normalize() AnalysisConfig {
	d := DefaultAnalysisConfig()
	if c.MaxTextChars <= 0 {
		c.MaxTextChars = d.MaxTextChars
	}
	if c.MaxContextSnippets <= 0 {
		c.MaxContextSnippets = d.MaxContextSnippets
	}
	if c.StuffingDensity <= 0 {
		c.StuffingDensity = d.StuffingDensity
	}
	if c.UnderRepresentedDensity <= 0 {
		c.UnderRepresentedDensity = d.UnderRepresentedDensity
	}
	if c.CriticalFrequency <= 0 {
		c.CriticalFrequency = d.CriticalFrequency
	}
	if c.HighFrequency <= 0 {
		c.HighFrequency = d.HighFrequency
	}
	if c.ProminentZoneWords <= 0 {
		c.ProminentZoneWords = d.ProminentZoneWords
	}
	return c
}

// SemanticConfig holds settings for the similarity scorer.
type SemanticConfig struct {
	// ModelPath points to a word-vector file in the word2vec/GloVe text
	// format (one "token v1 v2 ... vN" line per word). Empty means no
	// model: the scorer uses the token-overlap fallback.
	ModelPath string `json:"model_path,omitempty" yaml:"model_path,omitempty"`
}

// LexiconConfig holds settings for the keyword lexicon.
type LexiconConfig struct {
	// Path points to a YAML lexicon file (category -> phrase list).
	// Empty means the built-in lexicon.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// StoreConfig holds settings for the report store.
type StoreConfig struct {
	// ReportsDir is the base directory for persisted reports (contains
	// index/). Default "reports".
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`

	// MaxResults is the default maximum number of query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Semantic SemanticConfig `json:"semantic" yaml:"semantic"`
	Lexicon  LexiconConfig  `json:"lexicon" yaml:"lexicon"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
