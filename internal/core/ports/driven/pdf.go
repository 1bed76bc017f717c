package driven

// PDFInspector checks local files before upload.
type PDFInspector interface {
	// PageCount opens the file as a PDF and returns its page count.
	// Returns an error if the file is not a readable PDF.
	PageCount(path string) (int, error)
}
