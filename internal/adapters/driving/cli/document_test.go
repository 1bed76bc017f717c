package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(documentCmd.Commands()))
	for _, c := range documentCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"list", "upload", "delete"}, names)
}

func TestDocumentListCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("", "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "FILENAME")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "Ready")
	assert.Contains(t, out, "draft.pdf")
	assert.Contains(t, out, "Processing")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.documents.docs = nil

	out, err := execute("", "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "You have no documents yet.")
}

func TestDocumentListCmd_RequiresLogin(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.auth.authenticated = false

	_, err := execute("", "document", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDocumentListCmd_ErrorsWithoutService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, err := execute("", "document", "list")

	assert.EqualError(t, err, "document service not configured")
}

func TestDocumentUploadCmd(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	var paths []string
	svc.documents.uploadFunc = func(_ context.Context, path string) (*domain.Document, error) {
		paths = append(paths, path)
		return &domain.Document{ID: int64(len(paths)) + 10, Filename: path, Status: domain.StatusProcessing}, nil
	}

	out, err := execute("", "document", "upload", "a.pdf", "b.pdf")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, paths)
	assert.Contains(t, out, "Uploaded a.pdf (id 11, Processing)")
	assert.Contains(t, out, "Uploaded b.pdf (id 12, Processing)")
}

func TestDocumentUploadCmd_PartialFailure(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.documents.uploadFunc = func(_ context.Context, path string) (*domain.Document, error) {
		if path == "notes.txt" {
			return nil, fmt.Errorf("notes.txt: %w", domain.ErrUnsupportedFile)
		}
		return &domain.Document{ID: 5, Filename: path}, nil
	}

	out, err := execute("", "document", "upload", "notes.txt", "a.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 uploads failed")
	assert.Contains(t, out, "Skipped notes.txt")
	assert.Contains(t, out, "Uploaded a.pdf")
}

func TestDocumentUploadCmd_RequiresArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "document", "upload")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestDocumentDeleteCmd_Confirmed(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("y\n", "document", "delete", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Delete report.pdf (id 1)? [y/N]")
	assert.Contains(t, out, "Deleted document 1")
	assert.Equal(t, []int64{1}, svc.documents.deleted)
}

func TestDocumentDeleteCmd_Declined(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("n\n", "document", "delete", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Empty(t, svc.documents.deleted)
}

func TestDocumentDeleteCmd_Yes(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("", "document", "delete", "2", "--yes")

	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Equal(t, []int64{2}, svc.documents.deleted)
}

func TestDocumentDeleteCmd_InvalidID(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "document", "delete", "abc", "--yes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document id")
}

func TestDocumentDeleteCmd_Failure(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.documents.deleteErr = errors.New("gone")

	_, err := execute("", "document", "delete", "1", "--yes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete document 1")
}
