package settingstore

import (
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// saver coalesces save requests into trailing-edge throttled writes.
//
// With a positive interval, the first request opens a window; requests
// landing inside it coalesce and one write of the then-current state happens
// when the window closes. A request that arrives while a write is in flight
// marks the state dirty and schedules exactly one follow-up write. With a
// zero interval every request writes before returning.
//
// Write failures are logged and swallowed; a failed write is not retried
// until the next request.
type saver struct {
	cfg config

	// marshal snapshots the current tree as serialized bytes.
	marshal func() ([]byte, error)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64 // invalidates stale timer callbacks
	writing bool
	dirty   bool

	// wmu serializes the writes themselves.
	wmu    sync.Mutex
	writes atomic.Int64
}

func newSaver(cfg config, marshal func() ([]byte, error)) *saver {
	return &saver{cfg: cfg, marshal: marshal}
}

// request records a save. Non-blocking in throttled mode; performs the write
// inline when throttling is disabled.
func (s *saver) request() {
	if s.cfg.interval <= 0 {
		s.write()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writing {
		s.dirty = true
		return
	}
	if s.timer != nil {
		// Window already open; this request coalesces into it.
		return
	}
	s.seq++
	seq := s.seq
	s.timer = time.AfterFunc(s.cfg.interval, func() { s.fire(seq) })
}

// fire runs at the trailing edge of a throttle window.
func (s *saver) fire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		// Superseded by flush; that path owns the write.
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.writing = true
	s.mu.Unlock()

	s.write()

	s.mu.Lock()
	s.writing = false
	again := s.dirty
	s.dirty = false
	if again {
		s.seq++
		next := s.seq
		s.timer = time.AfterFunc(s.cfg.interval, func() { s.fire(next) })
	}
	s.mu.Unlock()
}

// flush performs any pending throttled write now and returns once the file
// reflects the current state.
func (s *saver) flush() {
	s.mu.Lock()
	pending := false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		pending = true
	}
	if s.dirty {
		s.dirty = false
		pending = true
	}
	s.seq++
	s.mu.Unlock()

	if pending {
		s.write()
	}
}

// write serializes the current state and writes the file. The parent
// directory is created when missing; any other stat failure is logged and
// the write still attempted. All errors end at the logger.
func (s *saver) write() {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if _, err := os.Stat(s.cfg.dir); err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(s.cfg.dir, 0o755); mkErr != nil {
				s.cfg.logger.Error("creating settings directory", "dir", s.cfg.dir, "error", mkErr)
			}
		} else {
			s.cfg.logger.Warn("checking settings directory", "dir", s.cfg.dir, "error", err)
		}
	}

	data, err := s.marshal()
	if err != nil {
		s.cfg.logger.Error("serializing settings", "path", s.cfg.path, "error", err)
		return
	}
	if err := os.WriteFile(s.cfg.path, data, 0o644); err != nil {
		s.cfg.logger.Error("writing settings file", "path", s.cfg.path, "error", err)
		return
	}
	s.writes.Add(1)
	s.cfg.logger.Debug("settings written", "path", s.cfg.path, "bytes", len(data))
}

// writeCount reports completed writes. The watcher uses it to tell its own
// writes apart from external ones.
func (s *saver) writeCount() int64 {
	return s.writes.Load()
}
