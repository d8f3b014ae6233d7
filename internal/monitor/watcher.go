package monitor

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce window for state DB writes; the editor rewrites state.vscdb in
// bursts.
const watchSettle = 2 * time.Second

type stateWatcher struct {
	fsw       *fsnotify.Watcher
	closeOnce sync.Once
	done      chan struct{}
}

// WatchStateDB arranges an early refresh whenever the editor rewrites its
// state database, so a sign-in or sign-out shows up before the next tick.
// The directory is watched rather than the file because SQLite replaces the
// file on checkpoint.
func (m *Monitor) WatchStateDB(path string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return err
	}

	w := &stateWatcher{fsw: fsw, done: make(chan struct{})}
	m.watcher = w

	go w.run(filepath.Base(path), m.RequestRefresh)
	return nil
}

func (w *stateWatcher) run(base string, refresh func()) {
	defer w.fsw.Close()

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchSettle, refresh)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[monitor] state DB watch: %v", err)
		}
	}
}

func (w *stateWatcher) close() {
	w.closeOnce.Do(func() { close(w.done) })
}
