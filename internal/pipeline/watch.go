package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of events a single editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watch builds paths once and again after every change below them or below
// the include dirs, until ctx is done. Each build outcome is passed to
// onBuild; failed builds do not stop the watch.
func (b *Builder) Watch(ctx context.Context, paths []string, debounce time.Duration, onBuild func(*Result, error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	roots := append(append([]string{}, paths...), b.cfg.IncludeDirs...)
	for _, root := range roots {
		if err := watchTree(watcher, root); err != nil {
			return err
		}
	}

	rebuild := func() {
		expanded, err := ExpandPaths(paths)
		if err != nil {
			onBuild(nil, err)
			return
		}
		onBuild(b.Build(ctx, expanded))
	}
	rebuild()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						b.log.Warn("watch new directory failed", "dir", event.Name, "error", err)
					}
				}
			}
			b.log.Debug("source changed", "path", event.Name, "op", event.Op.String())
			fire = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			b.log.Info("rebuilding after change")
			rebuild()
		}
	}
}

// watchTree adds root, or the directory containing root, and every
// non-hidden directory below it.
func watchTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
