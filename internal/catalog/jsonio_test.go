package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipshelf/internal/catalog"
	"clipshelf/internal/testsupport"
)

func TestImportJSONNormalizesEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	base := testsupport.BaseDir(cfg)
	doc := `[
  {"path": "` + filepath.Join(base, "a.mp4") + `", "tags": ["nature", " night "], "description": "aerial"},
  {"path": "  \"` + filepath.Join(base, "b.mp4") + `\"  ", "tags": "not-a-list", "description": "quoted"},
  "not an object",
  {"path": "", "tags": [], "description": "no path"},
  {"path": "` + filepath.Join(base, "c.mp4") + `"}
]`

	result, err := store.ImportJSON(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if result.Imported != 3 {
		t.Fatalf("imported = %d, want 3", result.Imported)
	}
	if result.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", result.Skipped)
	}

	records, err := store.List(context.Background(), catalog.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Tags[0] != "nature" || records[0].Tags[1] != "night" {
		t.Fatalf("tags not normalized: %v", records[0].Tags)
	}
	if len(records[1].Tags) != 0 {
		t.Fatalf("wrong-shaped tags should degrade to none, got %v", records[1].Tags)
	}
	if filepath.Base(records[1].Path) != "b.mp4" {
		t.Fatalf("quoted path not cleaned: %q", records[1].Path)
	}
}

func TestImportJSONEmptyDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	result, err := store.ImportJSON(context.Background(), strings.NewReader("   \n"))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if result.Imported != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestImportJSONRejectsNonArray(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.ImportJSON(context.Background(), strings.NewReader(`{"path": "x"}`)); err == nil {
		t.Fatal("expected error for non-array document")
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	base := testsupport.BaseDir(cfg)
	testsupport.AddRecord(t, store, filepath.Join(base, "a.mp4"), []string{"nature"}, "aerial")
	testsupport.AddRecord(t, store, filepath.Join(base, "b.mp4"), nil, "")

	out := filepath.Join(base, "export", "data.json")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	count, err := store.ExportJSON(ctx, out)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("exported = %d, want 2", count)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Fatalf("tags must encode as [] not null: %s", data)
	}

	other := testsupport.NewConfig(t)
	reimport := testsupport.MustOpenStore(t, other)
	result, err := reimport.ImportJSON(ctx, strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Fatalf("round trip result %+v", result)
	}
}
