package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcherDebounce coalesces the burst of write events a single save often
// produces into one reload notification.
const watcherDebounce = 150 * time.Millisecond

// fileWatcher notifies on external changes to one file, debounced.
// Adapted from the track-changes watcher shape used elsewhere in the
// pack: watch the containing directory (so editors that save via
// rename-into-place still trigger), filter to the one path, debounce
// bursts, and never block a slow consumer.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	events   chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

func newFileWatcher(path string) (*fileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &fileWatcher{
		watcher: fsw,
		path:    absPath,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers a notification (coalesced, non-blocking) whenever path
// changes on disk.
func (w *fileWatcher) Events() <-chan struct{} {
	return w.events
}

func (w *fileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

func (w *fileWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isWatchedFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watcherDebounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watcherDebounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			select {
			case w.events <- struct{}{}:
			default:
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *fileWatcher) isWatchedFile(eventPath string) bool {
	abs, err := filepath.Abs(eventPath)
	return err == nil && abs == w.path
}
