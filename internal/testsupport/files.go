package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteDesktopEntry drops a minimal desktop entry for the snap into dir,
// named the way snapd exports them, and returns the file name.
func WriteDesktopEntry(t testing.TB, dir, snap, displayName, icon string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	name := snap + "_" + snap + ".desktop"
	content := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nIcon=%s\nExec=%s\n", displayName, icon, snap)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write desktop entry %s: %v", name, err)
	}
	return name
}
