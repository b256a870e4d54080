package desktop

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"snapwatch/internal/logging"
)

// Lookup resolves desktop entries for snaps from a single directory.
type Lookup struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string][]string
}

// NewLookup constructs a lookup over the given desktop applications
// directory.
func NewLookup(dir string, logger *slog.Logger) *Lookup {
	return &Lookup{
		dir:    dir,
		logger: logging.Default(logger).With(logging.String(logging.FieldComponent, "desktop")),
		cache:  make(map[string][]string),
	}
}

// FilesFor returns the desktop entry file names belonging to the snap,
// sorted. A missing or unreadable directory yields an empty result; badge
// updates for the snap are simply dropped.
func (l *Lookup) FilesFor(snap string) []string {
	l.mu.Lock()
	if cached, ok := l.cache[snap]; ok {
		l.mu.Unlock()
		return append([]string(nil), cached...)
	}
	l.mu.Unlock()

	files := l.scan(snap)

	l.mu.Lock()
	l.cache[snap] = files
	l.mu.Unlock()
	return append([]string(nil), files...)
}

func (l *Lookup) scan(snap string) []string {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		l.logger.Debug("desktop directory unavailable", logging.String("dir", l.dir), logging.Error(err))
		return nil
	}
	prefix := snap + "_"
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !strings.HasSuffix(name, ".desktop") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}

// Watch invalidates the cache whenever the directory contents change. It
// blocks until the context is done. A missing directory is returned as an
// error so the caller can decide to run without invalidation.
func (l *Lookup) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			l.invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Debug("desktop watcher error", logging.Error(err))
		}
	}
}

func (l *Lookup) invalidate() {
	l.mu.Lock()
	l.cache = make(map[string][]string)
	l.mu.Unlock()
}

// EntryPath returns the absolute path for a desktop entry file name.
func (l *Lookup) EntryPath(file string) string {
	return filepath.Join(l.dir, file)
}
