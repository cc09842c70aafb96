package settingstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/schoolboyqueue/settingstore/jsonval"
)

const (
	// DefaultFileName is used when Options.FileName is empty.
	DefaultFileName = "settings.json"

	// DefaultInterval is the save throttle window applied when
	// Options.Interval is zero.
	DefaultInterval = 100 * time.Millisecond

	// Immediate disables save throttling: every Save performs its write
	// before returning.
	Immediate = time.Duration(-1)
)

// Options configures a Store. Dir and Defaults are required; everything else
// has a usable zero value.
type Options struct {
	// Defaults is the initial value tree. It must be a JSON object. The
	// Store keeps a deep copy; later mutation of the original has no effect.
	Defaults jsonval.Value

	// Dir is the directory holding the settings file. Relative to the
	// user's home directory unless AbsoluteDir is set.
	Dir string `validate:"required"`

	// AbsoluteDir treats Dir as an absolute path.
	AbsoluteDir bool

	// FileName of the settings file. Defaults to "settings.json"; a .json
	// suffix is appended when missing.
	FileName string

	// Interval is the save throttle window. Zero selects DefaultInterval;
	// Immediate disables throttling.
	Interval time.Duration

	// Compact selects compact serialization instead of two-space indent.
	Compact bool

	// EnvPrefix enables an environment overlay at load time. Variables
	// named PREFIX_KEY (double underscore for nesting, e.g. PREFIX_UI__THEME)
	// override loaded values. Empty disables the overlay.
	EnvPrefix string

	// Logger receives all diagnostics. Defaults to a text slog handler on
	// stderr.
	Logger Logger
}

// config is the resolved, immutable form of Options.
type config struct {
	path      string
	dir       string
	interval  time.Duration
	compact   bool
	envPrefix string
	logger    Logger
}

func (o Options) resolve() (config, error) {
	if err := validator.New().Struct(o); err != nil {
		return config{}, fmt.Errorf("invalid options: %w", err)
	}
	// validator cannot look inside jsonval.Value, so the object check is
	// explicit.
	if o.Defaults.Kind() != jsonval.KindObject {
		return config{}, errors.New("invalid options: Defaults must be a JSON object")
	}

	name := o.FileName
	if name == "" {
		name = DefaultFileName
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	dir := o.Dir
	if !o.AbsoluteDir {
		home, err := os.UserHomeDir()
		if err != nil {
			return config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, dir)
	}

	interval := o.Interval
	switch {
	case interval == 0:
		interval = DefaultInterval
	case interval < 0:
		interval = 0
	}

	logger := o.Logger
	if logger == nil {
		logger = defaultLogger()
	}

	return config{
		path:      filepath.Join(dir, name),
		dir:       dir,
		interval:  interval,
		compact:   o.Compact,
		envPrefix: o.EnvPrefix,
		logger:    logger,
	}, nil
}
