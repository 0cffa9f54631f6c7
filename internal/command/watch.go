package command

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces editor write bursts (swap files, atomic renames)
// into a single reload.
const debounce = 250 * time.Millisecond

// Watch reloads the registry whenever the commands directory changes.
// It blocks until ctx is cancelled. Newly created subdirectories are
// added to the watch so commands dropped into fresh namespaces are
// picked up without a restart.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	addTree(watcher, r.dir)

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directory: watch it for future command files.
				addTree(watcher, event.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("WARNING: command watcher: %v", err)

		case <-reload:
			timer = nil
			if err := r.Reload(); err != nil {
				log.Printf("WARNING: command reload: %v", err)
			}
		}
	}
}

// addTree watches path and every directory below it. Errors are ignored:
// the path may be a plain file, or may have vanished between the event
// and the add.
func addTree(watcher *fsnotify.Watcher, path string) {
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best-effort watch setup
		}
		if d.IsDir() {
			_ = watcher.Add(p)
		}
		return nil
	})
}
