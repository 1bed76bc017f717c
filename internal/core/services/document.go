package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService uploads, deletes and lists the user's documents.
type DocumentService struct {
	api       driven.DocumentAPI
	registry  driving.DocumentRegistry
	selection *SelectionCoordinator
	inspector driven.PDFInspector
	notifier  driven.Notifier
}

// NewDocumentService creates a document service. inspector may be nil, in
// which case only the file extension is checked.
func NewDocumentService(
	api driven.DocumentAPI,
	registry driving.DocumentRegistry,
	selection *SelectionCoordinator,
	inspector driven.PDFInspector,
	notifier driven.Notifier,
) *DocumentService {
	return &DocumentService{
		api:       api,
		registry:  registry,
		selection: selection,
		inspector: inspector,
		notifier:  notifier,
	}
}

// List refreshes the registry and returns its documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.registry == nil {
		return nil, errors.New("document registry not configured")
	}
	if err := s.registry.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.registry.Documents(), nil
}

// Upload checks that path is a readable PDF and sends it to the backend.
func (s *DocumentService) Upload(ctx context.Context, path string) (*domain.Document, error) {
	if s.api == nil {
		return nil, errors.New("document API not configured")
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrUnsupportedFile)
	}

	if s.inspector != nil {
		pages, err := s.inspector.PageCount(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", filepath.Base(path), domain.ErrUnsupportedFile, err)
		}
		logger.Debug("upload %s: %d pages", path, pages)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := s.api.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		notify(s.notifier, domain.NotifyError, "Upload failed: "+failureText(err))
		return nil, fmt.Errorf("failed to upload %s: %w", filepath.Base(path), err)
	}

	notify(s.notifier, domain.NotifySuccess, fmt.Sprintf("Uploaded %s (id %d)", doc.Filename, doc.ID))
	s.refresh(ctx)
	return doc, nil
}

// Delete removes a document. Its conversation is dropped only after the
// server confirms.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if s.api == nil {
		return errors.New("document API not configured")
	}

	if err := s.api.Delete(ctx, id); err != nil {
		notify(s.notifier, domain.NotifyError, "Delete failed: "+failureText(err))
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}

	if s.selection != nil {
		s.selection.OnDocumentDeleted(id)
	}
	notify(s.notifier, domain.NotifySuccess, fmt.Sprintf("Deleted document %d", id))
	s.refresh(ctx)
	return nil
}

// refresh updates the registry after a change. A failure is already
// reported by the registry.
func (s *DocumentService) refresh(ctx context.Context) {
	if s.registry == nil {
		return
	}
	if err := s.registry.Refresh(ctx); err != nil {
		logger.Debug("refresh after change failed: %v", err)
	}
}
