package main

import (
	"testing"
)

func TestIgnoreRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"ignored"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("ignored: %v", err)
	}
	requireContains(t, out, "No snaps are ignored")

	out, _, err = runCLI(t, []string{"ignore", "firefox"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("ignore: %v", err)
	}
	requireContains(t, out, "Notifications for firefox suppressed")

	out, _, err = runCLI(t, []string{"ignored"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("ignored after ignore: %v", err)
	}
	requireContains(t, out, "firefox")

	out, _, err = runCLI(t, []string{"unignore", "firefox"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("unignore: %v", err)
	}
	requireContains(t, out, "Notifications for firefox restored")

	out, _, err = runCLI(t, []string{"ignored"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("ignored after unignore: %v", err)
	}
	requireContains(t, out, "No snaps are ignored")
}

func TestIgnoreRejectsBlankName(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"ignore", "  "}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for blank snap name")
	}
}
