package testsupport

import (
	"context"
	"testing"

	"snapwatch/internal/config"
	"snapwatch/internal/prefs"
)

// MustOpenStore opens a prefs.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *prefs.Store {
	t.Helper()

	store, err := prefs.Open(cfg)
	if err != nil {
		t.Fatalf("prefs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// IgnoreSnap marks a snap ignored for tests using the provided store.
func IgnoreSnap(t testing.TB, store *prefs.Store, name string) {
	t.Helper()

	if err := store.SetIgnored(context.Background(), name, true); err != nil {
		t.Fatalf("store.SetIgnored: %v", err)
	}
}
