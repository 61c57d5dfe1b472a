package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a script must stay unchanged before
// --watch replays it.
const DefaultWatchDebounce = 300 * time.Millisecond

const scriptSaveOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// scriptWatcher reports saves of one gesture script.
type scriptWatcher struct {
	fsw      *fsnotify.Watcher
	name     string
	debounce time.Duration
}

// newScriptWatcher watches the directory holding path, so editors that
// save through a temp file and rename are still seen.
func newScriptWatcher(path string, debounce time.Duration) (*scriptWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &scriptWatcher{fsw: fsw, name: filepath.Base(path), debounce: debounce}, nil
}

// Run calls replay once per burst of saves until ctx is done, then closes
// the watcher. Replay and watcher errors go to report and do not stop it.
func (w *scriptWatcher) Run(ctx context.Context, replay func() error, report func(error)) {
	defer w.fsw.Close()

	settle := time.NewTimer(w.debounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == w.name && ev.Op&scriptSaveOps != 0 {
				settle.Reset(w.debounce)
			}
		case <-settle.C:
			if err := replay(); err != nil {
				report(err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			report(err)
		}
	}
}
