// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultConfidenceThreshold is the minimum cosine similarity reported as a match.
const DefaultConfidenceThreshold = 0.2

// Default n-gram range: unigrams and bigrams.
const (
	DefaultNgramMin = 1
	DefaultNgramMax = 2
)

// MatcherConfig holds settings for tokenization and query matching.
type MatcherConfig struct {
	// ConfidenceThreshold is the minimum similarity for a Matched outcome.
	// Scores strictly below it yield NoMatch (default 0.2).
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`

	// StopWords replaces the built-in English stop-word list when non-empty.
	StopWords []string `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`

	// NgramMin and NgramMax bound the n-gram lengths used as terms (default 1, 2).
	NgramMin int `json:"ngram_min" yaml:"ngram_min"`
	NgramMax int `json:"ngram_max" yaml:"ngram_max"`
}

// DefaultMatcherConfig returns the matcher settings used when nothing is configured.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		NgramMin:            DefaultNgramMin,
		NgramMax:            DefaultNgramMax,
	}
}

// KnowledgeBaseConfig holds settings for the knowledge base store.
type KnowledgeBaseConfig struct {
	// Dir is the base directory for the store (contains entries/, index/).
	Dir string `json:"dir" yaml:"dir"`

	// File is an optional YAML knowledge file used instead of the store.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}
