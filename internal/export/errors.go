// Package export turns rendered HTML into downloadable PDF files by
// rasterizing the page in a headless browser and embedding the image on an
// A4 sheet.
package export

import "fmt"

// ExportError represents a failure anywhere in the export pipeline. The
// caller surfaces a generic failure; the cause is for logs.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
