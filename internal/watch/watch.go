// Package watch reports when a file backed value is rewritten by someone
// else, so an open list can pick up changes made from another terminal.
package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher follows a single file. The parent directory is watched so that
// replace-by-rename writes are seen too.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     *zap.Logger
	last    []byte
}

func New(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{watcher: w, path: path, log: log}, nil
}

// Run calls onChange with the new content every time the file changes.
// Identical consecutive contents are reported once. Run blocks until ctx is
// done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func([]byte)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			b, err := os.ReadFile(w.path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					w.log.Warn("watch: read", zap.String("path", w.path), zap.Error(err))
				}
				continue
			}
			if w.last != nil && bytes.Equal(b, w.last) {
				continue
			}
			w.last = b
			w.log.Debug("watch: file changed", zap.String("path", w.path), zap.Stringer("op", ev.Op))
			onChange(b)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch: error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
