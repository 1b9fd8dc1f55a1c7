package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/faq-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	kbDir := filepath.Join(tmpDir, "knowledge")

	if err := os.MkdirAll(filepath.Join(kbDir, entriesDir), 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(types.KnowledgeBaseConfig{Dir: kbDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, kbDir
}

func writeKnowledge(t *testing.T, kbDir, name string, entries []types.Entry) string {
	t.Helper()
	path := filepath.Join(kbDir, entriesDir, name)
	if err := WriteFile(path, entries); err != nil {
		t.Fatal(err)
	}
	return path
}

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func ingest(t *testing.T, store *Store) (IngestSummary, string) {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return summary, buf.String()
}

func shippingEntries() []types.Entry {
	return []types.Entry{
		{Question: "Do you ship internationally?", Answer: "Yes."},
		{Question: "How much is shipping?", Answer: "Free over $50.", Tags: []string{"shipping", "pricing"}},
	}
}

// --- defaults and IDs ---

func TestDefaults(t *testing.T) {
	entries := Defaults()
	if len(entries) != 5 {
		t.Fatalf("len = %d, want 5", len(entries))
	}
	for i, e := range entries {
		if e.ID == "" {
			t.Errorf("entry %d has no ID", i)
		}
		if e.Question == "" || e.Answer == "" {
			t.Errorf("entry %d is incomplete: %+v", i, e)
		}
	}
	if entries[2].Question != "Do you ship internationally?" {
		t.Errorf("entry 2 = %q", entries[2].Question)
	}

	entries[0].Answer = "mutated"
	if Defaults()[0].Answer == "mutated" {
		t.Error("Defaults shares state between calls")
	}
}

func TestEntryIDStable(t *testing.T) {
	a := EntryID("q", "a")
	if a != EntryID("q", "a") {
		t.Error("EntryID not deterministic")
	}
	if a == EntryID("q", "b") {
		t.Error("different answers share an ID")
	}
	if a == EntryID("qa", "") {
		t.Error("question/answer boundary not separated")
	}
}

// --- knowledge files ---

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr error
		errMsg  string
	}{
		{
			name: "two entries",
			data: "entries:\n  - question: \" Refunds? \"\n    answer: Yes.\n  - question: Hours?\n    answer: 9-5\n",
			want: 2,
		},
		{name: "no entries key", data: "other: 1\n", wantErr: ErrEmptyKnowledgeFile},
		{name: "empty list", data: "entries: []\n", wantErr: ErrEmptyKnowledgeFile},
		{name: "malformed", data: "entries: [\n", errMsg: "parsing knowledge file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr != nil || tt.errMsg != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("err = %v, want containing %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if got[0].Question != "Refunds?" {
				t.Errorf("question not trimmed: %q", got[0].Question)
			}
			if got[0].ID != EntryID("Refunds?", "Yes.") {
				t.Errorf("ID = %q", got[0].ID)
			}
		})
	}
}

func TestParseKeepsExplicitID(t *testing.T) {
	got, err := Parse([]byte("entries:\n  - id: custom\n    question: q\n    answer: a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != "custom" {
		t.Errorf("ID = %q, want custom", got[0].ID)
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	if err := WriteFile(path, Defaults()); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || got[4].Answer != Defaults()[4].Answer {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading") {
		t.Errorf("err = %v", err)
	}
}

// --- store ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, kbDir := testSetup(t)

	for _, table := range []string{"entries", "indexing_status"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}

	if _, err := os.Stat(filepath.Join(kbDir, indexDir, dbFile)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestIngest(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "b-shipping.yaml", shippingEntries())
	writeKnowledge(t, kbDir, "a-defaults.yaml", Defaults())
	if err := os.WriteFile(filepath.Join(kbDir, entriesDir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, out := ingest(t, store)
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out, "indexing a-defaults.yaml (5 entries)") {
		t.Errorf("output missing progress line:\n%s", out)
	}

	entries, err := store.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 7 {
		t.Fatalf("len = %d, want 7", len(entries))
	}
	// Ordered by source name, then position.
	if entries[0].Question != "What is your return policy?" {
		t.Errorf("entries[0] = %q", entries[0].Question)
	}
	if entries[6].Question != "How much is shipping?" {
		t.Errorf("entries[6] = %q", entries[6].Question)
	}
	if len(entries[6].Tags) != 2 {
		t.Errorf("tags = %v", entries[6].Tags)
	}

	n, err := store.Count(context.Background())
	if err != nil || n != 7 {
		t.Errorf("Count = %d, %v", n, err)
	}

	if _, err := os.Stat(store.ExportPath(ExportYAMLFile)); err != nil {
		t.Errorf("export.yaml not written: %v", err)
	}
}

func TestIngestSkipsUnchanged(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "faq.yaml", Defaults())

	ingest(t, store)
	summary, out := ingest(t, store)
	if summary.Skipped != 1 || summary.Changed() {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out, "skipped faq.yaml") {
		t.Errorf("output:\n%s", out)
	}
}

func TestIngestUpdatesChanged(t *testing.T) {
	store, kbDir := testSetup(t)
	path := writeKnowledge(t, kbDir, "faq.yaml", Defaults())
	touch(t, path, time.Now().Add(-time.Hour))
	ingest(t, store)

	writeKnowledge(t, kbDir, "faq.yaml", shippingEntries())
	touch(t, path, time.Now())
	summary, _ := ingest(t, store)
	if summary.Updated != 1 {
		t.Errorf("summary = %+v", summary)
	}

	entries, err := store.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("old entries not replaced: %d entries", len(entries))
	}
}

func TestIngestRemovesDeletedSources(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "keep.yaml", shippingEntries())
	gone := writeKnowledge(t, kbDir, "gone.yaml", Defaults())
	ingest(t, store)

	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}
	summary, out := ingest(t, store)
	if summary.Removed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out, "removed gone.yaml") {
		t.Errorf("output:\n%s", out)
	}

	stored, err := store.Stored(context.Background(), "gone.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Errorf("gone.yaml still has %d entries", len(stored))
	}
}

func TestIngestReportsBadFile(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "good.yaml", shippingEntries())
	if err := os.WriteFile(filepath.Join(kbDir, entriesDir, "bad.yaml"), []byte("entries: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, out := ingest(t, store)
	if summary.Failed != 1 || summary.Indexed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(out, "failed  bad.yaml") {
		t.Errorf("output:\n%s", out)
	}
	if summary.Total() != 2 {
		t.Errorf("Total = %d, want 2", summary.Total())
	}
}

func TestIngestMissingDirectory(t *testing.T) {
	store, err := NewStore(types.KnowledgeBaseConfig{Dir: filepath.Join(t.TempDir(), "kb")})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err == nil {
		t.Error("expected error for missing entries directory")
	}
}

func TestIngestCancelled(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "faq.yaml", Defaults())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf strings.Builder
	if _, err := store.Ingest(ctx, &buf); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// --- export ---

func TestExport(t *testing.T) {
	store, kbDir := testSetup(t)
	writeKnowledge(t, kbDir, "faq.yaml", shippingEntries())
	ingest(t, store)
	ctx := context.Background()

	if err := store.ExportJSON(ctx); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(store.ExportPath(ExportJSONFile))
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []map[string]any
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 2 || fromJSON[1]["source"] != "faq.yaml" || fromJSON[1]["question"] != "How much is shipping?" {
		t.Errorf("json export = %v", fromJSON)
	}

	if err := store.ExportYAML(ctx); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(store.ExportPath(ExportYAMLFile))
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []StoredEntry
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != 2 || fromYAML[0].Answer != "Yes." || fromYAML[1].Position != 1 {
		t.Errorf("yaml export = %+v", fromYAML)
	}
}

func TestExportJSONEmptyStore(t *testing.T) {
	store, _ := testSetup(t)
	if err := store.ExportJSON(context.Background()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(store.ExportPath(ExportJSONFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("export = %s", data)
	}
}
