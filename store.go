// Package settingstore persists a JSON settings tree to a file on disk.
//
// A Store starts from a caller-supplied default tree, reads any existing
// file at construction (creating it when absent), and reconciles partial
// file contents over the defaults with a tolerant deep merge. Saves are
// throttled on a trailing edge so bursts of mutation collapse into a single
// write. Persistence is best effort: the in-memory tree is authoritative and
// filesystem failures are logged, never returned from Save or Load.
package settingstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/schoolboyqueue/settingstore/jsonval"
)

// Store holds a live settings tree and its persistence pipeline.
type Store struct {
	cfg   config
	saver *saver

	mu       sync.RWMutex
	values   jsonval.Value
	defaults jsonval.Value

	watchMu sync.Mutex
	watcher *fsnotify.Watcher

	closeOnce sync.Once
}

// New creates a Store and performs the synchronous initial load: an existing
// file is read and reconciled over the defaults; a missing file is created
// immediately with the serialized defaults, including any missing parent
// directories. Construction fails only on invalid Options, never on I/O.
func New(opts Options) (*Store, error) {
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	s := &Store{
		cfg:      cfg,
		values:   opts.Defaults.Clone(),
		defaults: opts.Defaults.Clone(),
	}
	s.saver = newSaver(cfg, s.snapshot)

	if _, err := os.Stat(cfg.path); os.IsNotExist(err) {
		cfg.logger.Info("settings file missing, writing defaults", "path", cfg.path)
		s.saver.write()
	} else {
		s.loadFromDisk()
	}
	return s, nil
}

// Path returns the resolved absolute path of the settings file.
func (s *Store) Path() string { return s.cfg.path }

// Values returns the live root of the settings tree. Object and array
// contents are shared, so mutations through the returned value are visible
// to the Store; call Save afterwards to persist them. Callers mutating
// concurrently with Load or Save must use the Store's path accessors
// instead, which lock.
func (s *Store) Values() jsonval.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Get retrieves the value at a dot-separated path.
func (s *Store) Get(path string) (jsonval.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Get(path)
}

// Set stores a deep copy of val at a dot-separated path, creating
// intermediate objects as needed.
func (s *Store) Set(path string, val jsonval.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The root is always an object, so Set cannot fail.
	_ = s.values.Set(path, val)
}

// Delete removes the value at a dot-separated path. Returns true if a value
// was removed.
func (s *Store) Delete(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Delete(path)
}

// Defaults returns a deep copy of the default tree supplied at construction.
func (s *Store) Defaults() jsonval.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults.Clone()
}

// Reset restores the tree to the construction defaults. Call Save to
// persist the reset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = s.defaults.Clone()
}

// Replace swaps the whole tree for a deep copy of v, which must be a JSON
// object.
func (s *Store) Replace(v jsonval.Value) error {
	if v.Kind() != jsonval.KindObject {
		return fmt.Errorf("settings root must be an object, got %s", v.Kind())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = v.Clone()
	return nil
}

// Save requests a persist of the current tree. With throttling enabled it
// returns immediately and the write happens at the trailing edge of the
// throttle window; with Immediate it returns after the write attempt. Save
// never reports failure; write errors go to the logger.
func (s *Store) Save() {
	s.saver.request()
}

// Load re-reads the settings file and reconciles its contents over the
// current tree. Read and parse failures are logged and leave the tree
// unchanged.
func (s *Store) Load() {
	s.loadFromDisk()
}

// Flush performs any pending throttled write now.
func (s *Store) Flush() {
	s.saver.flush()
}

// Close stops the watcher, if any, and flushes pending writes. Safe to call
// more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.watchMu.Lock()
		w := s.watcher
		s.watcher = nil
		s.watchMu.Unlock()
		if w != nil {
			if err := w.Close(); err != nil {
				s.cfg.logger.Warn("closing settings watcher", "error", err)
			}
		}
		s.saver.flush()
	})
	return nil
}

// Unmarshal binds the subtree at a dot-separated path onto out using
// koanf:"..." struct tags. An empty path binds the whole tree.
func (s *Store) Unmarshal(path string, out any) error {
	s.mu.RLock()
	tree, ok := s.values.Interface().(map[string]any)
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("settings root is not an object")
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(tree, "."), nil); err != nil {
		return fmt.Errorf("loading settings tree: %w", err)
	}
	if err := k.Unmarshal(path, out); err != nil {
		return fmt.Errorf("unmarshaling settings at %q: %w", path, err)
	}
	return nil
}

// snapshot serializes the current tree for the saver.
func (s *Store) snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.compact {
		return json.Marshal(s.values)
	}
	return json.MarshalIndent(s.values, "", "  ")
}
