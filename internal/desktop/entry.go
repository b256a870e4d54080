package desktop

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"snapwatch/internal/logging"
)

// AppInfo is the launcher-facing identity of a snap.
type AppInfo struct {
	DisplayName string
	Icon        string
}

var titleCaser = cases.Title(language.English)

// AppInfo resolves the display name and icon for a snap from its first
// desktop entry. When no entry exists the raw snap name is returned so the
// caller can always render something.
func (l *Lookup) AppInfo(snap string) AppInfo {
	files := l.FilesFor(snap)
	if len(files) == 0 {
		return AppInfo{DisplayName: snap}
	}

	entry, err := parseEntry(l.EntryPath(files[0]))
	if err != nil {
		l.logger.Debug("unreadable desktop entry", logging.String("file", files[0]), logging.Error(err))
		return AppInfo{DisplayName: snap}
	}

	info := AppInfo{DisplayName: entry.name, Icon: entry.icon}
	if info.DisplayName == "" {
		// Entry present but nameless; derive something humane from the
		// identifier rather than showing firefox_firefox.desktop.
		info.DisplayName = titleCaser.String(strings.ReplaceAll(snap, "-", " "))
	}
	return info
}

type desktopEntry struct {
	name string
	icon string
}

// parseEntry reads the Name and Icon keys from the [Desktop Entry] group.
// Localized variants (Name[xx]) are ignored.
func parseEntry(path string) (desktopEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return desktopEntry{}, err
	}
	defer file.Close()

	var entry desktopEntry
	inDesktopGroup := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inDesktopGroup = line == "[Desktop Entry]"
			continue
		}
		if !inDesktopGroup {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			entry.name = strings.TrimSpace(value)
		case "Icon":
			entry.icon = strings.TrimSpace(value)
		}
	}
	return entry, scanner.Err()
}
