package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/llm"
)

type fakeClient struct {
	jsonResponse string
	textResponse string
	err          error
	calls        int
	lastPrompt   string
}

func (f *fakeClient) GenerateText(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.textResponse, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, attachments ...llm.Attachment) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.jsonResponse, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestFromParams_GeneratesStructuredBundle(t *testing.T) {
	client := &fakeClient{jsonResponse: `{
		"summary": "Backend engineer building reliable services in Go.",
		"experience": [{"jobTitle": "Backend Engineer", "company": "Acme", "startDate": "2021-03-01", "endDate": "", "description": "Built APIs."}],
		"education": [{"degree": "B.S. Computer Science", "institution": "State University", "graduationDate": "2020-05-01"}],
		"skills": "Go, PostgreSQL"
	}`}
	svc := New(client)

	out, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceLevel: "Mid-level",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Summary)
	require.Len(t, out.Experience, 1)
	assert.Equal(t, "Backend Engineer", out.Experience[0].JobTitle)
	require.Len(t, out.Education, 1)
	assert.NotEmpty(t, out.Skills)
}

func TestFromParams_OmitsEmptyIdentityFields(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"summary": "s", "experience": [], "education": [], "skills": "Go"}`}
	svc := New(client)

	_, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
		Name:            "Dana Smith",
	})
	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "Name: Dana Smith")
	assert.NotContains(t, client.lastPrompt, "Email:")
	assert.NotContains(t, client.lastPrompt, "Phone Number:")
	assert.NotContains(t, client.lastPrompt, "LinkedIn:")
}

func TestFromParams_EmptyLinkedinTreatedAsAbsent(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"summary": "s", "experience": [], "education": [], "skills": "Go"}`}
	svc := New(client)

	empty := ""
	_, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
		LinkedinURL:     &empty,
	})
	require.NoError(t, err)
	assert.NotContains(t, client.lastPrompt, "LinkedIn:")
}

func TestFromParams_PhotoBypassesModel(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"summary": "s", "experience": [], "education": [], "skills": "Go"}`}
	svc := New(client)

	photo := "data:image/png;base64,iVBORw0KGgo="
	out, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
		PhotoDataURI:    &photo,
	})
	require.NoError(t, err)
	require.NotNil(t, out.PersonalDetails)
	assert.Equal(t, photo, out.PersonalDetails.PhotoURL)
	assert.NotContains(t, client.lastPrompt, photo)
}

func TestFromParams_MissingRequiredParams(t *testing.T) {
	client := &fakeClient{}
	svc := New(client)

	cases := []Params{
		{Skills: []string{"Go"}, ExperienceLevel: "Senior"},
		{JobTitle: "Backend Engineer", ExperienceLevel: "Senior"},
		{JobTitle: "Backend Engineer", Skills: []string{"Go"}},
	}
	for _, p := range cases {
		_, err := svc.FromParams(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
	assert.Equal(t, 0, client.calls)
}

func TestFromParams_MissingAPIKey(t *testing.T) {
	svc := New(nil)
	_, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
	})
	assert.ErrorIs(t, err, extract.ErrMissingAPIKey)
	assert.NotErrorIs(t, err, ErrGeneration)
}

func TestFromParams_UpstreamFailureSingleAttempt(t *testing.T) {
	client := &fakeClient{err: assert.AnError}
	svc := New(client)

	_, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
	})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Equal(t, 1, client.calls)
}

func TestFromParams_FillsMissingSections(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"summary": "s", "skills": "Go"}`}
	svc := New(client)

	out, err := svc.FromParams(context.Background(), Params{
		JobTitle:        "Backend Engineer",
		Skills:          []string{"Go"},
		ExperienceLevel: "Senior",
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Experience)
	assert.NotNil(t, out.Education)
}

func TestImprove_RewritesText(t *testing.T) {
	client := &fakeClient{textResponse: "Led a team of five engineers delivering quarterly releases."}
	svc := New(client)

	got, err := svc.Improve(context.Background(), "I managed some people.", "")
	require.NoError(t, err)
	assert.Equal(t, "Led a team of five engineers delivering quarterly releases.", got)
	assert.Contains(t, client.lastPrompt, "I managed some people.")
}

func TestImprove_ContextTailorsPrompt(t *testing.T) {
	client := &fakeClient{textResponse: "Improved."}
	svc := New(client)

	_, err := svc.Improve(context.Background(), "Wrote code.", "Senior Platform Engineer role")
	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "Senior Platform Engineer role")
}

func TestImprove_EmptyTextFailsLocally(t *testing.T) {
	client := &fakeClient{textResponse: "should not be reached"}
	svc := New(client)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Improve(context.Background(), text, "")
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Equal(t, 0, client.calls)
}

func TestImprove_MissingAPIKey(t *testing.T) {
	svc := New(nil)
	_, err := svc.Improve(context.Background(), "Some text.", "")
	assert.ErrorIs(t, err, extract.ErrMissingAPIKey)
}

func TestImprove_BlankModelOutput(t *testing.T) {
	client := &fakeClient{textResponse: "   "}
	svc := New(client)

	_, err := svc.Improve(context.Background(), "Some text.", "")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestImprove_PreservesWorkFromPromptFile(t *testing.T) {
	// The prompt templates live in the embedded prompt files and must not
	// leak template markers into the rendered prompt.
	client := &fakeClient{textResponse: "ok"}
	svc := New(client)

	_, err := svc.Improve(context.Background(), "Some text.", "ctx")
	require.NoError(t, err)
	assert.False(t, strings.Contains(client.lastPrompt, "{{"))
}
