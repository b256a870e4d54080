package desktop

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEntry(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFilesForMatchesPrefixAndSuffix(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "firefox_firefox.desktop", "[Desktop Entry]\nName=Firefox\n")
	writeEntry(t, dir, "firefox_profile-manager.desktop", "[Desktop Entry]\n")
	writeEntry(t, dir, "firefox-esr_firefox.desktop", "[Desktop Entry]\n")
	writeEntry(t, dir, "firefox_notes.txt", "not a desktop entry")

	lookup := NewLookup(dir, nil)
	files := lookup.FilesFor("firefox")
	want := []string{"firefox_firefox.desktop", "firefox_profile-manager.desktop"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestFilesForMissingDirectoryIsEmpty(t *testing.T) {
	lookup := NewLookup(filepath.Join(t.TempDir(), "absent"), nil)
	if files := lookup.FilesFor("firefox"); len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestAppInfoParsesNameAndIcon(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "firefox_firefox.desktop", `[Desktop Entry]
Name=Firefox Web Browser
Name[de]=Feuerfuchs
Icon=/snap/firefox/icon.png

[Desktop Action new-window]
Name=New Window
`)

	lookup := NewLookup(dir, nil)
	info := lookup.AppInfo("firefox")
	if info.DisplayName != "Firefox Web Browser" {
		t.Fatalf("unexpected display name %q", info.DisplayName)
	}
	if info.Icon != "/snap/firefox/icon.png" {
		t.Fatalf("unexpected icon %q", info.Icon)
	}
}

func TestAppInfoFallsBackToRawName(t *testing.T) {
	lookup := NewLookup(t.TempDir(), nil)
	info := lookup.AppInfo("code-insiders")
	if info.DisplayName != "code-insiders" {
		t.Fatalf("expected raw identifier fallback, got %q", info.DisplayName)
	}
	if info.Icon != "" {
		t.Fatalf("expected no icon, got %q", info.Icon)
	}
}

func TestAppInfoTitleCasesNamelessEntry(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "code-insiders_code.desktop", "[Desktop Entry]\nIcon=code.png\n")

	lookup := NewLookup(dir, nil)
	info := lookup.AppInfo("code-insiders")
	if info.DisplayName != "Code Insiders" {
		t.Fatalf("expected humanized fallback, got %q", info.DisplayName)
	}
}

func TestWatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	lookup := NewLookup(dir, nil)

	if files := lookup.FilesFor("vlc"); len(files) != 0 {
		t.Fatalf("expected empty initial scan, got %v", files)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = lookup.Watch(ctx)
		close(done)
	}()

	writeEntry(t, dir, "vlc_vlc.desktop", "[Desktop Entry]\nName=VLC\n")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if files := lookup.FilesFor("vlc"); len(files) == 1 {
			cancel()
			<-done
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("cache was not invalidated after a new desktop entry appeared")
}
