// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/faq-engine/pkg/types"
)

// ErrEmptyKnowledgeFile reports a knowledge file without entries.
var ErrEmptyKnowledgeFile = errors.New("knowledge file has no entries")

// entryNamespace scopes the name-based UUIDs given to entries.
var entryNamespace = uuid.MustParse("6f1c2b8e-4a0d-5e3b-9c7a-2d1f0e8b3a45")

// EntryID returns the stable ID for an entry with the given question and
// answer. Identical content always yields the same ID.
func EntryID(question, answer string) string {
	return uuid.NewSHA1(entryNamespace, []byte(question+"\x00"+answer)).String()
}

// AssignIDs fills in IDs for entries that have none.
func AssignIDs(entries []types.Entry) {
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = EntryID(entries[i].Question, entries[i].Answer)
		}
	}
}

// Parse decodes a YAML knowledge file. Questions and answers are trimmed
// and missing IDs assigned. Blank questions are left for the indexer to
// reject so the error names the entry position.
func Parse(data []byte) ([]types.Entry, error) {
	var kf types.KnowledgeFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing knowledge file: %w", err)
	}
	if len(kf.Entries) == 0 {
		return nil, ErrEmptyKnowledgeFile
	}
	for i := range kf.Entries {
		kf.Entries[i].Question = strings.TrimSpace(kf.Entries[i].Question)
		kf.Entries[i].Answer = strings.TrimSpace(kf.Entries[i].Answer)
	}
	AssignIDs(kf.Entries)
	return kf.Entries, nil
}

// LoadFile reads and parses the knowledge file at path.
func LoadFile(path string) ([]types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// WriteFile encodes entries as a YAML knowledge file at path.
func WriteFile(path string, entries []types.Entry) error {
	data, err := yaml.Marshal(&types.KnowledgeFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
