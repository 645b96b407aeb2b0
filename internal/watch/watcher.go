package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps an fsnotify watcher with recursive directory registration
// and the registrar-driven include-file watch set.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *slog.Logger
}

func New(logger *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{fs: fs, logger: logger}, nil
}

// AddDirRecursive watches root and every directory below it. New
// subdirectories created later must be added by the event loop on Create
// events.
func (w *Watcher) AddDirRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fs.Add(path); err != nil {
				w.logger.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// Apply updates the watch list with one rebuild cycle's registrar diff.
// Watching individual files covers includes living outside the docs tree.
func (w *Watcher) Apply(added, removed []string) {
	for _, p := range removed {
		if err := w.fs.Remove(p); err != nil {
			w.logger.Debug("watch remove failed", "path", p, "error", err)
		}
	}
	for _, p := range added {
		if err := w.fs.Add(p); err != nil {
			w.logger.Warn("watch add failed", "path", p, "error", err)
		}
	}
}

func (w *Watcher) Events() <-chan fsnotify.Event { return w.fs.Events }
func (w *Watcher) Errors() <-chan error          { return w.fs.Errors }
func (w *Watcher) Close() error                  { return w.fs.Close() }

// HandleEvent reports whether ev should trigger a rebuild, registering
// newly created directories along the way.
func (w *Watcher) HandleEvent(ev fsnotify.Event) bool {
	if IgnorePath(ev.Name) {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.AddDirRecursive(ev.Name)
		}
	}
	w.logger.Debug("file change detected", "path", ev.Name, "op", ev.Op.String())
	return true
}

// IgnorePath reports whether a filesystem event path is noise: hidden
// files, editor swap files and OS droppings.
func IgnorePath(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}
	return base == "Thumbs.db"
}
