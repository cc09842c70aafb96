package settingstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch starts reloading the tree whenever the settings file is modified by
// another process. Events are debounced over the throttle window (with a
// floor of DefaultInterval when throttling is disabled), and writes
// performed by this Store's own saver are ignored. Watching stops when the
// Store is closed.
func (s *Store) Watch() error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watcher != nil {
		return errors.New("settings watcher already running")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	// Watch the directory, not the file: editors that write via rename
	// would otherwise drop the watch.
	if err := w.Add(s.cfg.dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", s.cfg.dir, err)
	}

	s.watcher = w
	go s.watchLoop(w)
	s.cfg.logger.Debug("settings watcher started", "path", s.cfg.path)
	return nil
}

func (s *Store) watchLoop(w *fsnotify.Watcher) {
	window := s.cfg.interval
	if window <= 0 {
		window = DefaultInterval
	}

	var mu sync.Mutex
	var timer *time.Timer
	seen := s.saver.writeCount()

	reload := func() {
		count := s.saver.writeCount()
		mu.Lock()
		self := count != seen
		seen = count
		mu.Unlock()
		if self {
			// Our own save produced the event.
			return
		}
		s.cfg.logger.Info("settings file changed externally, reloading", "path", s.cfg.path)
		s.loadFromDisk()
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.cfg.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(window, reload)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.cfg.logger.Warn("settings watcher error", "error", err)
		}
	}
}
