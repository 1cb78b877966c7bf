// Package extract converts uploaded source documents into schema-shaped
// structured records via the generative model, and pulls plain text from
// PDF payloads for the text-improvement flow.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resumeforge/resumeforge/internal/invoice"
	"github.com/resumeforge/resumeforge/internal/llm"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/schema"
)

// Service performs structured extraction against the generative model.
// A nil client means the credential was never configured; every upstream
// operation then fails fast with ErrMissingAPIKey.
type Service struct {
	client llm.Client
}

// New creates an extraction service. client may be nil when no API key is
// configured.
func New(client llm.Client) *Service {
	return &Service{client: client}
}

// Resume extracts structured resume data from a document payload. Every
// field declared by the resume schema is present in the result; fields not
// found in the source carry the schema's declared empty value.
func (s *Service) Resume(ctx context.Context, p Payload) (*resume.ExtractedResume, error) {
	raw, err := s.extract(ctx, p, schema.ResumeSchema())
	if err != nil {
		return nil, err
	}

	var out resume.ExtractedResume
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed result: %v", ErrExtraction, err)
	}
	return &out, nil
}

// Invoice extracts structured invoice data from a document payload.
func (s *Service) Invoice(ctx context.Context, p Payload) (*invoice.Content, error) {
	raw, err := s.extract(ctx, p, schema.InvoiceSchema())
	if err != nil {
		return nil, err
	}

	var out invoice.Content
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed result: %v", ErrExtraction, err)
	}
	return &out, nil
}

// extract runs one schema-constrained extraction: a single upstream attempt,
// validated against the schema, with defaults applied so no declared field
// is ever omitted.
func (s *Service) extract(ctx context.Context, p Payload, sch schema.Schema) ([]byte, error) {
	if s.client == nil {
		return nil, ErrMissingAPIKey
	}
	if err := p.Verify(); err != nil {
		return nil, err
	}

	prompt := sch.Description + "\n\n" + sch.PromptFragment()
	attachment := llm.Attachment{MIMEType: p.MIMEType, Data: p.Data}

	text, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard, attachment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: model returned invalid JSON: %v", ErrExtraction, err)
	}

	filled := sch.ApplyDefaults(parsed)
	raw, err := json.Marshal(filled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return raw, nil
}
