package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the nutrition log. It watches the parent
// directories so a log created after startup is still seen.
type Watcher struct {
	fsw      *fsnotify.Watcher
	patterns []string
	changes  chan string
	logger   *slog.Logger
}

// New watches the directories holding each pattern. Patterns may be plain
// paths or doublestar globs; only the directory part is watched.
func New(patterns []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan string, 1),
		logger:  logger,
	}

	dirs := make(map[string]bool)
	for _, p := range patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		w.patterns = append(w.patterns, filepath.ToSlash(abs))

		// Recursive patterns only see files directly under the static prefix.
		base, _ := doublestar.SplitPattern(filepath.ToSlash(abs))
		dir := filepath.FromSlash(base)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "err", err)
			continue
		}
		dirs[dir] = true
	}

	if len(dirs) == 0 {
		fsw.Close()
		return nil, fmt.Errorf("no watchable directory for %v", patterns)
	}
	return w, nil
}

// Changes delivers the path of a changed log file. Bursts are coalesced: a
// pending notification is not duplicated.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) matches(name string) bool {
	name = filepath.ToSlash(name)
	for _, p := range w.patterns {
		if p == name {
			return true
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Start forwards matching events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.changes)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				abs = ev.Name
			}
			if !w.matches(abs) {
				continue
			}
			w.logger.Debug("log changed", "path", abs, "op", ev.Op.String())
			select {
			case w.changes <- abs:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}
