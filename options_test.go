package settingstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolboyqueue/settingstore/jsonval"
)

func TestOptionsResolve_FileName(t *testing.T) {
	tests := map[string]struct {
		fileName string
		want     string
	}{
		"default": {fileName: "", want: "settings.json"},
		"suffix kept": {fileName: "prefs.json", want: "prefs.json"},
		"suffix added": {fileName: "prefs", want: "prefs.json"},
		"odd extension": {fileName: "prefs.conf", want: "prefs.conf.json"},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Options{
				Defaults:    jsonval.Object(nil),
				Dir:         "/tmp/settingstore-test",
				AbsoluteDir: true,
				FileName:    test.fileName,
			}.resolve()
			require.NoError(t, err)
			assert.Equal(t, test.want, filepath.Base(cfg.path))
		})
	}
}

func TestOptionsResolve_Interval(t *testing.T) {
	tests := map[string]struct {
		in   time.Duration
		want time.Duration
	}{
		"zero gets default": {in: 0, want: DefaultInterval},
		"immediate disables": {in: Immediate, want: 0},
		"explicit kept": {in: 250 * time.Millisecond, want: 250 * time.Millisecond},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Options{
				Defaults:    jsonval.Object(nil),
				Dir:         "/tmp/settingstore-test",
				AbsoluteDir: true,
				Interval:    test.in,
			}.resolve()
			require.NoError(t, err)
			assert.Equal(t, test.want, cfg.interval)
		})
	}
}

func TestOptionsResolve_HomeRelativeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Options{
		Defaults: jsonval.Object(nil),
		Dir:      filepath.Join(".config", "myapp"),
	}.resolve()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "myapp", "settings.json"), cfg.path)
}

func TestOptionsResolve_DefaultLogger(t *testing.T) {
	t.Parallel()

	cfg, err := Options{
		Defaults:    jsonval.Object(nil),
		Dir:         "/tmp/settingstore-test",
		AbsoluteDir: true,
	}.resolve()
	require.NoError(t, err)
	assert.NotNil(t, cfg.logger)
}
