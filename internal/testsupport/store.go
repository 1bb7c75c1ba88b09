package testsupport

import (
	"context"
	"testing"

	"pwtune/internal/catalog"
	"pwtune/internal/config"
	"pwtune/internal/drafts"
)

// MustOpenDrafts opens a drafts.Store for tests and registers cleanup.
func MustOpenDrafts(t testing.TB, cfg *config.Config) *drafts.Store {
	t.Helper()

	store, err := drafts.Open(cfg)
	if err != nil {
		t.Fatalf("drafts.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveDraft persists a single staged edit for tests.
func SaveDraft(t testing.TB, store *drafts.Store, target catalog.Target, key string, value catalog.Value) {
	t.Helper()

	edits := []catalog.Edit{{Key: key, Value: value}}
	if err := store.Save(context.Background(), target, "test-snapshot", edits); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
