package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload PDFs dropped into a folder",
	Long: `Watch a folder and upload every PDF created in it. Files already in the
folder are left alone. The document list keeps refreshing while watching.

The folder defaults to the upload.watch_dir setting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Upload.WatchDir != "" {
			return s.Upload.WatchDir, nil
		}
	}
	return "", errors.New("no folder given and upload.watch_dir is not set")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireAuth(); err != nil {
		return err
	}

	dir, err := watchDir(args)
	if err != nil {
		return err
	}

	w, err := watch.New(documentService, watch.Config{
		Dir: dir,
		OnResult: func(r watch.Result) {
			if r.Err != nil {
				cmd.PrintErrf("Failed to upload %s: %s\n", r.Path, failureMessage(r.Err))
				return
			}
			cmd.Printf("Uploaded %s (id %d)\n", r.Document.Filename, r.Document.ID)
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if lifecycle != nil {
		lifecycle.Bind(ctx, authGate)
		defer lifecycle.Stop()
	}

	cmd.Printf("Watching %s for new PDFs. Press Ctrl+C to stop.\n", w.Dir())
	return w.Run(ctx)
}
