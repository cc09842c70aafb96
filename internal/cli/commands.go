package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings document",
	Long:  `Print the settings document, re-indented for reading or compacted with --compact.`,
	Example: `  settingstore --file settings.json show
  settingstore --file settings.json show --compact`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a path",
	Long: `Print the raw JSON value at a dot-separated path.

Exits with an error when the path is absent.`,
	Example: `  settingstore --file settings.json get ui.theme
  settingstore --file settings.json get window.size`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set the value at a path",
	Long: `Set the value at a dot-separated path and rewrite the file.

The value is parsed as JSON ("true", "42", "[1,2]", "{\"a\":1}"); anything
that fails to parse is stored as a string. A missing file is created,
including parent directories.`,
	Example: `  settingstore --file settings.json set ui.theme dark
  settingstore --file settings.json set ui.zoom 1.25
  settingstore --file settings.json set tags '["a","b"]'`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var unsetCmd = &cobra.Command{
	Use:     "unset <path>",
	Short:   "Remove the value at a path",
	Example: `  settingstore --file settings.json unset ui.zoom`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUnset,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := resolveFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(pathCmd)

	showCmd.Flags().Bool("compact", false, "print without indentation")
}

func runShow(cmd *cobra.Command, _ []string) error {
	path, err := resolveFile()
	if err != nil {
		return err
	}
	data, err := readSettings(path)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s is not valid JSON", path)
	}

	compact, _ := cmd.Flags().GetBool("compact")
	var buf bytes.Buffer
	if compact {
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("compacting %s: %w", path, err)
		}
	} else {
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indenting %s: %w", path, err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	path, err := resolveFile()
	if err != nil {
		return err
	}
	data, err := readSettings(path)
	if err != nil {
		return err
	}

	result := gjson.GetBytes(data, args[0])
	if !result.Exists() {
		return fmt.Errorf("no value at %q in %s", args[0], path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Raw)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	path, err := resolveFile()
	if err != nil {
		return err
	}
	data, err := readSettings(path)
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	var updated []byte
	if json.Valid([]byte(raw)) {
		updated, err = sjson.SetRawBytes(data, key, []byte(raw))
	} else {
		updated, err = sjson.SetBytes(data, key, raw)
	}
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	if err := writeSettings(path, updated); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, raw, path)
	return nil
}

func runUnset(cmd *cobra.Command, args []string) error {
	path, err := resolveFile()
	if err != nil {
		return err
	}
	data, err := readSettings(path)
	if err != nil {
		return err
	}

	key := args[0]
	if !gjson.GetBytes(data, key).Exists() {
		return fmt.Errorf("no value at %q in %s", key, path)
	}
	updated, err := sjson.DeleteBytes(data, key)
	if err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}

	if err := writeSettings(path, updated); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", key, path)
	return nil
}

// writeSettings re-indents and writes the document, creating parent
// directories when needed.
func writeSettings(path string, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("formatting %s: %w", path, err)
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
