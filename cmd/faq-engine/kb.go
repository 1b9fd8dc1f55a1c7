// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faq-engine/internal/knowledge"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the knowledge store (ingest, list, export)",
	Long: `Kb manages a local SQLite knowledge store built from YAML knowledge
files in <knowledge-dir>/entries/. Use subcommands to ingest files, list
stored entries, or export them.`,
}

// --- ingest subcommand ---

var kbIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest YAML knowledge files into the store",
	Long: `Ingest reads every .yaml file in <knowledge-dir>/entries/, replaces the
stored entries of files that changed, removes entries of deleted files, and
writes index/export.yaml. Unchanged files are skipped on later runs.`,
	RunE: runKBIngest,
}

func runKBIngest(cmd *cobra.Command, args []string) error {
	store, err := knowledge.NewStore(knowledgeBaseConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d knowledge file(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	RunE:  runKBList,
}

func runKBList(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := knowledge.NewStore(knowledgeBaseConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Stored(context.Background(), source)
	if err != nil {
		return err
	}
	return formatEntries(os.Stdout, stored, jsonOutput)
}

func formatEntries(w io.Writer, stored []knowledge.StoredEntry, jsonOutput bool) error {
	if jsonOutput {
		if stored == nil {
			stored = []knowledge.StoredEntry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stored)
	}

	if len(stored) == 0 {
		fmt.Fprintln(w, "No entries stored.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-4s  %-50s\n", "Source", "Pos", "Question")
	fmt.Fprintln(w, strings.Repeat("-", 78))
	for _, se := range stored {
		fmt.Fprintf(w, "%-20s  %-4d  %-50s\n", truncate(se.Source, 20), se.Position, truncate(se.Question, 50))
	}
	fmt.Fprintf(w, "\n%d entries\n", len(stored))
	return nil
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// --- export subcommand ---

var kbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store to YAML or JSON",
	Long: `Export writes every stored entry to <knowledge-dir>/index/export.yaml
or export.json.`,
	RunE: runKBExport,
}

func runKBExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := knowledge.NewStore(knowledgeBaseConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if err := store.ExportYAML(ctx); err != nil {
			return err
		}
		fmt.Println("Exported to", store.ExportPath(knowledge.ExportYAMLFile))
	case "json":
		if err := store.ExportJSON(ctx); err != nil {
			return err
		}
		fmt.Println("Exported to", store.ExportPath(knowledge.ExportJSONFile))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

func init() {
	kbListCmd.Flags().String("source", "", "only list entries from this knowledge file")
	kbListCmd.Flags().Bool("json", false, "output entries as JSON")

	kbExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	kbCmd.AddCommand(kbIngestCmd)
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbExportCmd)

	rootCmd.AddCommand(kbCmd)
}
