// Package cli provides the settingstore command line tool for inspecting
// and editing JSON settings files maintained by the settingstore library.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var settingsFile string

var rootCmd = &cobra.Command{
	Use:   "settingstore",
	Short: "Inspect and edit JSON settings files",
	Long: `settingstore inspects and edits the JSON settings files written by
applications using the settingstore library.

All commands operate on a single file selected with --file. Paths into the
document use dot notation (ui.theme, window.size.width).`,
	Example: `  # Pretty-print a settings file
  settingstore --file ~/.config/myapp/settings.json show

  # Read a single value
  settingstore --file ~/.config/myapp/settings.json get ui.theme

  # Write a value (parsed as JSON, falling back to string)
  settingstore --file ~/.config/myapp/settings.json set ui.zoom 1.25

  # Remove a key
  settingstore --file ~/.config/myapp/settings.json unset ui.zoom`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "file", "", "settings file to operate on (required)")
}

// resolveFile validates the --file flag and returns an absolute path.
func resolveFile() (string, error) {
	if settingsFile == "" {
		return "", fmt.Errorf("--file is required")
	}
	abs, err := filepath.Abs(settingsFile)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", settingsFile, err)
	}
	return abs, nil
}

// readSettings returns the raw file contents. A missing file reads as an
// empty document so set can bootstrap it.
func readSettings(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
