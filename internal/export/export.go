package export

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/resumeforge/resumeforge/internal/invoice"
	"github.com/resumeforge/resumeforge/internal/render"
	"github.com/resumeforge/resumeforge/internal/resume"
)

// ToPDF rasterizes rendered HTML and embeds it on a single A4 page.
func ToPDF(ctx context.Context, html []byte) ([]byte, error) {
	shot, err := rasterize(ctx, html)
	if err != nil {
		return nil, err
	}
	return assemblePDF(shot)
}

// assemblePDF builds a one-page A4 PDF around a PNG screenshot, scaled to
// fit and centered.
func assemblePDF(png []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, &ExportError{Message: "failed to decode screenshot", Cause: err}
	}
	place := fitToPage(cfg.Width, cfg.Height)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(png))
	pdf.ImageOptions("page", place.X, place.Y, place.W, place.H, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Message: "failed to write pdf", Cause: err}
	}
	return buf.Bytes(), nil
}

// Resume exports a resume document as PDF using its selected template and
// theme. The second return value is the download filename.
func Resume(ctx context.Context, doc *resume.Document) ([]byte, string, error) {
	html, err := render.Resume(doc)
	if err != nil {
		return nil, "", &ExportError{Message: "failed to render resume", Cause: err}
	}
	pdf, err := ToPDF(ctx, html)
	if err != nil {
		return nil, "", err
	}
	return pdf, ResumeFilename(doc.Title), nil
}

// Invoice exports an invoice document as PDF.
func Invoice(ctx context.Context, doc *invoice.Document) ([]byte, string, error) {
	html, err := render.Invoice(doc)
	if err != nil {
		return nil, "", &ExportError{Message: "failed to render invoice", Cause: err}
	}
	pdf, err := ToPDF(ctx, html)
	if err != nil {
		return nil, "", err
	}
	return pdf, doc.Filename(), nil
}

var filenameSanitizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	" ", "_",
	"\"", "",
	"'", "",
	";", "",
)

// ResumeFilename derives a download filename from a resume title.
func ResumeFilename(title string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		return "resume.pdf"
	}
	return filenameSanitizer.Replace(base) + ".pdf"
}
