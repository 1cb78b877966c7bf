// Package generate produces and rewrites resume content via the generative
// model: structured generation from role parameters, and free-text
// improvement of existing content.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/llm"
	"github.com/resumeforge/resumeforge/internal/prompts"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/schema"
)

// ErrEmptyText indicates an improve-text call with nothing to improve.
// Caught locally; no upstream call is made.
var ErrEmptyText = errors.New("text to improve is empty")

// ErrGeneration indicates the upstream call failed or returned no usable
// result. Retryable by the user; never retried automatically.
var ErrGeneration = errors.New("generation failed")

// ErrInvalidParams indicates missing required generation parameters.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Params are the inputs to generate-from-parameters. Identity fields are
// optional; empty ones are omitted from the prompt context entirely.
type Params struct {
	JobTitle        string   `json:"jobTitle"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	PhoneNumber     string   `json:"phoneNumber,omitempty"`
	Address         string   `json:"address,omitempty"`
	LinkedinURL     *string  `json:"linkedinUrl,omitempty"`
	PhotoDataURI    *string  `json:"photoDataUri,omitempty"`
	TemplateStyle   string   `json:"templateStyle,omitempty"`
}

// normalize coerces empty-string optional URLs to explicit absence. An
// empty string would otherwise fail URL validation upstream.
func (p *Params) normalize() {
	if p.LinkedinURL != nil && *p.LinkedinURL == "" {
		p.LinkedinURL = nil
	}
	if p.PhotoDataURI != nil && *p.PhotoDataURI == "" {
		p.PhotoDataURI = nil
	}
}

// validate checks the required parameters locally.
func (p *Params) validate() error {
	if strings.TrimSpace(p.JobTitle) == "" {
		return fmt.Errorf("%w: jobTitle is required", ErrInvalidParams)
	}
	if len(p.Skills) == 0 {
		return fmt.Errorf("%w: at least one skill is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.ExperienceLevel) == "" {
		return fmt.Errorf("%w: experienceLevel is required", ErrInvalidParams)
	}
	return nil
}

// promptContext renders the parameters into prompt lines. Empty optional
// identity fields produce no line at all rather than an empty value.
func (p *Params) promptContext() string {
	var sb strings.Builder
	line := func(label, value string) {
		if value != "" {
			sb.WriteString(label + ": " + value + "\n")
		}
	}
	line("Name", p.Name)
	line("Email", p.Email)
	line("Phone Number", p.PhoneNumber)
	line("Address", p.Address)
	if p.LinkedinURL != nil {
		line("LinkedIn", *p.LinkedinURL)
	}
	line("Job Title", p.JobTitle)
	line("Skills", strings.Join(p.Skills, ", "))
	line("Experience Level", p.ExperienceLevel)
	line("Template Style", p.TemplateStyle)
	return sb.String()
}

// Service generates and enhances resume content. A nil client means the
// credential was never configured.
type Service struct {
	client llm.Client
}

// New creates a generation service. client may be nil when no API key is
// configured.
func New(client llm.Client) *Service {
	return &Service{client: client}
}

// FromParams generates a structured resume bundle (summary, experience,
// education, skills) from role parameters. The underlying model is
// non-deterministic: identical input may yield different text. Results are
// never cached.
func (s *Service) FromParams(ctx context.Context, p Params) (*resume.ExtractedResume, error) {
	p.normalize()
	if err := p.validate(); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, extract.ErrMissingAPIKey
	}

	sch := schema.GenerationSchema()
	body := prompts.Format(prompts.MustGet("generation.json", "generate_resume"), map[string]string{
		"CandidateInfo": p.promptContext(),
	})
	prompt := sch.Description + "\n\n" + body + "\n" + sch.PromptFragment()

	text, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: model returned invalid JSON: %v", ErrGeneration, err)
	}
	raw, err := json.Marshal(sch.ApplyDefaults(parsed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var out resume.ExtractedResume
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed result: %v", ErrGeneration, err)
	}

	// The photo never goes through the model; it is attached to the result
	// as supplied.
	if p.PhotoDataURI != nil {
		if out.PersonalDetails == nil {
			out.PersonalDetails = &resume.ExtractedPersonalDetails{}
		}
		out.PersonalDetails.PhotoURL = *p.PhotoDataURI
	}
	return &out, nil
}

// Improve rewrites a piece of resume text, optionally tailored to a context
// string such as a target role. Empty input fails locally: there is nothing
// to improve.
func (s *Service) Improve(ctx context.Context, text, context_ string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if s.client == nil {
		return "", extract.ErrMissingAPIKey
	}

	var prompt string
	if strings.TrimSpace(context_) != "" {
		prompt = prompts.Format(prompts.MustGet("generation.json", "improve_text_context"), map[string]string{
			"Text":    text,
			"Context": context_,
		})
	} else {
		prompt = prompts.Format(prompts.MustGet("generation.json", "improve_text"), map[string]string{
			"Text": text,
		})
	}

	improved, err := s.client.GenerateText(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return "", fmt.Errorf("%w: model returned no text", ErrGeneration)
	}
	return improved, nil
}
