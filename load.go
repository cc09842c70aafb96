package settingstore

import (
	"encoding/json"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/schoolboyqueue/settingstore/jsonval"
)

// loadFromDisk reads and parses the settings file and reconciles its
// contents over the current tree. Any failure is logged and leaves the tree
// untouched. When an environment prefix is configured, matching variables
// are applied on top of the reconciled result.
func (s *Store) loadFromDisk() {
	k := koanf.New(".")
	if err := k.Load(file.Provider(s.cfg.path), kjson.Parser()); err != nil {
		s.cfg.logger.Error("loading settings file", "path", s.cfg.path, "error", err)
		return
	}

	loaded, err := jsonval.FromInterface(k.Raw())
	if err != nil {
		s.cfg.logger.Error("converting settings file contents", "path", s.cfg.path, "error", err)
		return
	}

	s.mu.Lock()
	s.values = jsonval.Merge(s.values, loaded)
	s.mu.Unlock()

	if s.cfg.envPrefix != "" {
		s.applyEnv()
	}
	s.cfg.logger.Debug("settings loaded", "path", s.cfg.path)
}

// applyEnv overlays PREFIX_* environment variables onto the tree. Variable
// names map to dot paths: the prefix is stripped, the rest lowercased, and
// double underscores become path separators, so PREFIX_UI__THEME sets
// ui.theme. Values are parsed as JSON scalars, falling back to plain
// strings.
func (s *Store) applyEnv() {
	prefix := s.cfg.envPrefix
	k := koanf.New(".")
	if err := k.Load(env.Provider(prefix, ".", func(name string) string {
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		s.cfg.logger.Warn("reading environment overrides", "prefix", prefix, "error", err)
		return
	}

	overrides := k.All()
	if len(overrides) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, raw := range overrides {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		_ = s.values.Set(key, parseEnvValue(str))
	}
	s.cfg.logger.Debug("environment overrides applied", "prefix", prefix, "count", len(overrides))
}

// parseEnvValue interprets an environment string as a JSON scalar where
// possible. Unparsable input stays a string, so PREFIX_NAME=alice works
// without quoting.
func parseEnvValue(raw string) jsonval.Value {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		if v, convErr := jsonval.FromInterface(decoded); convErr == nil {
			return v
		}
	}
	return jsonval.String(raw)
}
