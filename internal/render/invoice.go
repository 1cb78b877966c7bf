package render

import (
	"bytes"
	"embed"
	"html/template"
	"sync"

	"github.com/resumeforge/resumeforge/internal/invoice"
)

//go:embed templates/invoice.tmpl
var invoiceFS embed.FS

var (
	invoiceOnce sync.Once
	invoiceTmpl *template.Template
	invoiceErr  error
)

// Invoice renders the single fixed invoice layout. There is no template or
// theme selection for invoices.
func Invoice(doc *invoice.Document) ([]byte, error) {
	invoiceOnce.Do(func() {
		content, err := invoiceFS.ReadFile("templates/invoice.tmpl")
		if err != nil {
			invoiceErr = &TemplateError{Message: "missing invoice template", Cause: err}
			return
		}
		invoiceTmpl, invoiceErr = template.New("invoice").Parse(string(content))
		if invoiceErr != nil {
			invoiceErr = &TemplateError{Message: "failed to parse invoice template", Cause: invoiceErr}
		}
	})
	if invoiceErr != nil {
		return nil, invoiceErr
	}
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, doc.Content); err != nil {
		return nil, &TemplateError{Message: "failed to execute invoice template", Cause: err}
	}
	return buf.Bytes(), nil
}
