package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 200 * time.Millisecond

// Watch runs the callback once, then again whenever a SQL file under the
// given paths changes, until the context is cancelled. The callback's
// error is logged, not returned: a bad edit must not stop the watch.
func Watch(ctx context.Context, paths []string, logger *slog.Logger, run func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchDirs(paths) {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		logger.Debug("watching directory", "dir", dir)
	}

	runLogged := func() {
		if err := run(ctx); err != nil {
			logger.Error("watch run failed", "error", err)
		}
	}
	runLogged()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSQLFile(event.Name) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, runLogged)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// watchDirs maps the path arguments to the set of directories to watch:
// directories themselves, parent directories for files and globs.
func watchDirs(paths []string) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			dir = filepath.Dir(globRoot(p))
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return dirs
}

// globRoot trims a pattern back to its longest literal prefix.
func globRoot(pattern string) string {
	for i, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return pattern[:i]
		}
	}
	return pattern
}
