package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc", "documents"},
	Short:   "Manage uploaded documents",
	Long:    `List, upload, or delete documents on the backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents and their processing status",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file.pdf...]",
	Short: "Upload PDF documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentUpload,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// deleteYes skips the delete confirmation.
var deleteYes bool

func init() {
	documentDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireAuth(); err != nil {
		return err
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %s", failureMessage(err))
	}

	if len(docs) == 0 {
		cmd.Println("You have no documents yet. Upload one with 'docchat document upload <file.pdf>'.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSTATUS\tUPLOADED")
	for _, d := range docs {
		uploaded := "-"
		if !d.CreatedAt.IsZero() {
			uploaded = d.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.Filename, d.Status.Description(), uploaded)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireAuth(); err != nil {
		return err
	}

	var failed int
	for _, path := range args {
		doc, err := documentService.Upload(cmd.Context(), path)
		if err != nil {
			failed++
			if errors.Is(err, domain.ErrUnsupportedFile) {
				cmd.PrintErrf("Skipped %s: only PDF documents are accepted\n", path)
			} else {
				cmd.PrintErrf("Failed to upload %s: %s\n", path, failureMessage(err))
			}
			continue
		}
		cmd.Printf("Uploaded %s (id %d, %s)\n", doc.Filename, doc.ID, doc.Status.Description())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireAuth(); err != nil {
		return err
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		name := fmt.Sprintf("document %d", id)
		if documentRegistry != nil {
			if doc, ok := documentRegistry.Get(id); ok {
				name = fmt.Sprintf("%s (id %d)", doc.Filename, id)
			}
		}
		if !confirm(cmd, inputReader(cmd), "Delete "+name+"?") {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete document %d: %s", id, failureMessage(err))
	}

	cmd.Printf("Deleted document %d\n", id)
	return nil
}
