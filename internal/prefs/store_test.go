package prefs_test

import (
	"context"
	"testing"

	"snapwatch/internal/testsupport"
)

func TestIgnoredRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ignored, err := store.IsIgnored(ctx, "firefox")
	if err != nil {
		t.Fatalf("IsIgnored: %v", err)
	}
	if ignored {
		t.Fatal("unknown snap reported as ignored")
	}

	if err := store.SetIgnored(ctx, "firefox", true); err != nil {
		t.Fatalf("SetIgnored: %v", err)
	}
	ignored, err = store.IsIgnored(ctx, "firefox")
	if err != nil {
		t.Fatalf("IsIgnored: %v", err)
	}
	if !ignored {
		t.Fatal("ignored flag did not persist")
	}

	if err := store.SetIgnored(ctx, "firefox", false); err != nil {
		t.Fatalf("SetIgnored: %v", err)
	}
	ignored, err = store.IsIgnored(ctx, "firefox")
	if err != nil {
		t.Fatalf("IsIgnored: %v", err)
	}
	if ignored {
		t.Fatal("clearing the flag did not persist")
	}
}

func TestIgnoredSnapsSorted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, name := range []string{"spotify", "firefox", "vlc"} {
		testsupport.IgnoreSnap(t, store, name)
	}
	if err := store.SetIgnored(ctx, "vlc", false); err != nil {
		t.Fatalf("SetIgnored: %v", err)
	}

	names, err := store.IgnoredSnaps(ctx)
	if err != nil {
		t.Fatalf("IgnoredSnaps: %v", err)
	}
	want := []string{"firefox", "spotify"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store := testsupport.MustOpenStore(t, cfg)
	testsupport.IgnoreSnap(t, store, "firefox")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	ignored, err := reopened.IsIgnored(ctx, "firefox")
	if err != nil {
		t.Fatalf("IsIgnored: %v", err)
	}
	if !ignored {
		t.Fatal("ignored flag lost across reopen")
	}
}
