package server

import (
	"context"

	"github.com/resumeforge/resumeforge/internal/export"
	"github.com/resumeforge/resumeforge/internal/invoice"
	"github.com/resumeforge/resumeforge/internal/resume"
)

// pdfExporter adapts the export package to the Exporter interface.
type pdfExporter struct{}

func (pdfExporter) Resume(ctx context.Context, doc *resume.Document) ([]byte, string, error) {
	return export.Resume(ctx, doc)
}

func (pdfExporter) Invoice(ctx context.Context, doc *invoice.Document) ([]byte, string, error) {
	return export.Invoice(ctx, doc)
}
