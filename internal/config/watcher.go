package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bolgen/internal/logfields"
)

// Watcher reloads the configuration file when it changes on disk and hands
// the fresh config to a callback. Invalid edits are logged and skipped; the
// last good configuration stays in effect.
type Watcher struct {
	path     string
	onChange func(*Config)
	fsw      *fsnotify.Watcher
}

// NewWatcher prepares a watcher for the given config path. Editors often
// replace files rather than writing in place, so the parent directory is
// watched and events are filtered by name.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{path: path, onChange: onChange, fsw: fsw}, nil
}

// Run processes file events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.fsw.Close()
	}()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("Config reload skipped", logfields.File(w.path), logfields.Error(err))
				continue
			}
			slog.Info("Configuration reloaded", logfields.File(w.path))
			w.onChange(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Config watcher error", logfields.Error(err))
		}
	}
}
