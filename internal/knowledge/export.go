// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Export file names under dir/index/.
const (
	ExportYAMLFile = "export.yaml"
	ExportJSONFile = "export.json"
)

// ExportYAML writes every stored entry to dir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.Stored(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.ExportPath(ExportYAMLFile), data, 0o644)
}

// ExportJSON writes every stored entry to dir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.Stored(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []StoredEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(s.ExportPath(ExportJSONFile), data, 0o644)
}

// ExportPath returns the path of the named export file.
func (s *Store) ExportPath(name string) string {
	return filepath.Join(s.dir, indexDir, name)
}
