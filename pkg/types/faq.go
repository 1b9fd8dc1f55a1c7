// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Entry is one question/answer pair in the knowledge base.
// Only Question takes part in matching; Answer is what a match returns.
type Entry struct {
	// ID is a stable identifier derived from the entry content. Loaders
	// fill it in when the source omits it.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Question is the text indexed for matching.
	Question string `json:"question" yaml:"question"`

	// Answer is returned to the caller when Question is the best match.
	Answer string `json:"answer" yaml:"answer"`

	// Tags are optional lowercase labels carried through to exports.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// KnowledgeFile is the on-disk YAML layout of a knowledge base.
type KnowledgeFile struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}
