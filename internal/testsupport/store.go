package testsupport

import (
	"context"
	"testing"

	"clipshelf/internal/catalog"
	"clipshelf/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddRecord inserts a record for tests using the provided store.
func AddRecord(t testing.TB, store *catalog.Store, path string, tags []string, description string) *catalog.Record {
	t.Helper()

	record, err := store.Add(context.Background(), path, tags, description)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return record
}
