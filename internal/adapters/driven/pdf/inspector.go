// Package pdf checks local PDF files before they are uploaded.
package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.PDFInspector = (*Inspector)(nil)

// Inspector reads PDFs with pdfcpu.
type Inspector struct{}

// pdfcpu would otherwise install a config directory under the user's home.
func init() {
	api.DisableConfigDir()
}

// NewInspector creates a PDF inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// PageCount parses the file and returns its page count.
// Files that are missing, empty, or not parseable as PDF are rejected with
// domain.ErrUnsupportedFile.
func (i *Inspector) PageCount(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFile, path)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %s is empty", domain.ErrUnsupportedFile, path)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUnsupportedFile, err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("%w: %s has no pages", domain.ErrUnsupportedFile, path)
	}
	return ctx.PageCount, nil
}
