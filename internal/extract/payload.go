package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

const mimePDF = "application/pdf"

// Payload is an uploaded document ready for extraction.
type Payload struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes a "data:<mime>;base64,<payload>" URI into a Payload.
// This is the transport encoding the upload endpoint accepts.
func ParseDataURI(uri string) (Payload, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Payload{}, fmt.Errorf("not a data URI")
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return Payload{}, fmt.Errorf("malformed data URI: missing payload")
	}

	mimeType, encoding := meta, ""
	if m, e, found := strings.Cut(meta, ";"); found {
		mimeType, encoding = m, e
	}
	if encoding != "base64" {
		return Payload{}, fmt.Errorf("unsupported data URI encoding: %q", encoding)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	p := Payload{MIMEType: mimeType, Data: data}
	if p.MIMEType == "" || p.MIMEType == "application/octet-stream" {
		p.MIMEType = sniffMIMEType(data)
	}
	return p, nil
}

// Verify checks the payload against the supported document types. Size is
// not enforced locally; the upstream model bounds accepted payload size.
func (p Payload) Verify() error {
	if p.MIMEType != mimePDF {
		return fmt.Errorf("%w: %s", ErrUnsupportedPayload, p.MIMEType)
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrUnsupportedPayload)
	}
	return nil
}

// sniffMIMEType inspects payload bytes when the declared type is absent or
// generic.
func sniffMIMEType(data []byte) string {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return mimePDF
	}
	return "application/octet-stream"
}
