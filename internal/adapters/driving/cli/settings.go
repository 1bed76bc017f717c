package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show or change settings stored in ~/.docchat/config.toml.

DOCCHAT_* environment variables (and a .env file) override stored values
without changing the file.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	orNone := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "backend.base_url\t%s\n", s.Backend.BaseURL)
	fmt.Fprintf(w, "backend.timeout_seconds\t%d\n", int(s.Backend.Timeout.Seconds()))
	fmt.Fprintf(w, "polling.interval_seconds\t%d\n", int(s.Polling.Interval.Seconds()))
	fmt.Fprintf(w, "chat.history_window\t%d\n", s.Chat.HistoryWindow)
	fmt.Fprintf(w, "upload.watch_dir\t%s\n", orNone(s.Upload.WatchDir))
	fmt.Fprintf(w, "log.file\t%s\n", orNone(s.Log.File))
	return w.Flush()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (known keys: %v)", key, err, settingsService.Keys())
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}
