package domain

import "time"

// DocumentStatus is the server-side processing state of a document.
type DocumentStatus string

// Processing states reported by the backend.
const (
	// StatusUploading means the file is still being received.
	StatusUploading DocumentStatus = "UPLOADING"

	// StatusProcessing means the backend is extracting and indexing the file.
	StatusProcessing DocumentStatus = "PROCESSING"

	// StatusCompleted means the document is indexed and can be chatted with.
	StatusCompleted DocumentStatus = "COMPLETED"

	// StatusFailed means processing failed on the server.
	StatusFailed DocumentStatus = "FAILED"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s DocumentStatus) Description() string {
	switch s {
	case StatusUploading:
		return "Uploading"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Ready"
	case StatusFailed:
		return "Processing failed"
	default:
		return "Unknown"
	}
}

// Document is a file uploaded to the backend.
// Status transitions are observed by re-fetching, never predicted locally.
type Document struct {
	// ID is the server-assigned identifier.
	ID int64

	// Filename is the original file name.
	Filename string

	// Status is the processing state.
	Status DocumentStatus

	// CreatedAt is when the backend accepted the upload.
	CreatedAt time.Time
}

// Selectable reports whether the document can become the active chat target.
func (d Document) Selectable() bool {
	return d.Status == StatusCompleted
}

// FindDocument returns the document with the given id, if present.
func FindDocument(docs []Document, id int64) (Document, bool) {
	for i := range docs {
		if docs[i].ID == id {
			return docs[i], true
		}
	}
	return Document{}, false
}
