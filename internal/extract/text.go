package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text pulls plain text from a PDF payload locally, without any model call.
// It feeds the improve-text flow when the user uploads a document rather
// than pasting text.
func Text(p Payload) (string, error) {
	if err := p.Verify(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(p.Data), int64(len(p.Data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable PDF: %v", ErrUnsupportedPayload, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
