package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/resume"
)

func pdfDataURI() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 test"))
}

func TestExtractResumeHandler(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.extractor = &fakeExtractor{resumeResult: &resume.ExtractedResume{
		Summary: "Extracted summary.",
		Skills:  "Go, SQL",
	}}
	token, _ := ts.register(t, "extract@example.com")

	w := ts.do(t, http.MethodPost, "/ai/extract/resume", token, map[string]string{"dataUri": pdfDataURI()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out resume.ExtractedResume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Extracted summary.", out.Summary)
}

func TestExtractResumeMalformedDataURI(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "baduri@example.com")

	w := ts.do(t, http.MethodPost, "/ai/extract/resume", token, map[string]string{"dataUri": "not a data uri"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractMissingAPIKeyIsConfigError(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.extractor = &fakeExtractor{err: extract.ErrMissingAPIKey}
	token, _ := ts.register(t, "nokey@example.com")

	w := ts.do(t, http.MethodPost, "/ai/extract/resume", token, map[string]string{"dataUri": pdfDataURI()})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "API key is not configured")
}

func TestExtractUpstreamFailureIsBadGateway(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.extractor = &fakeExtractor{err: fmt.Errorf("%w: model call failed", extract.ErrExtraction)}
	token, _ := ts.register(t, "upstream@example.com")

	w := ts.do(t, http.MethodPost, "/ai/extract/resume", token, map[string]string{"dataUri": pdfDataURI()})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateHandler(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.generator = &fakeGenerator{result: &resume.ExtractedResume{
		Summary: "Generated summary.",
		Skills:  "Go, PostgreSQL",
	}}
	token, _ := ts.register(t, "gen@example.com")

	w := ts.do(t, http.MethodPost, "/ai/generate", token, map[string]any{
		"jobTitle":        "Backend Engineer",
		"skills":          []string{"Go", "PostgreSQL"},
		"experienceLevel": "Mid-level",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out resume.ExtractedResume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Summary)
}

func TestGenerateMissingParams(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "genbad@example.com")

	w := ts.do(t, http.MethodPost, "/ai/generate", token, map[string]any{
		"skills": []string{"Go"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImproveHandler(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.generator = &fakeGenerator{improved: "Led a team of five engineers."}
	token, _ := ts.register(t, "improve@example.com")

	w := ts.do(t, http.MethodPost, "/ai/improve", token, map[string]string{
		"text":    "I managed some people.",
		"context": "Engineering manager role",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out improveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Led a team of five engineers.", out.Improved)
}

func TestImproveEmptyText(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "improvebad@example.com")

	w := ts.do(t, http.MethodPost, "/ai/improve", token, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImproveMalformedDocumentURI(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "improvedoc@example.com")

	w := ts.do(t, http.MethodPost, "/ai/improve", token, map[string]string{
		"dataUri": "not-a-data-uri",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImprovePastedTextWinsOverDocument(t *testing.T) {
	ts := newTestServer(t)
	gen := &fakeGenerator{improved: "Better."}
	ts.srv.generator = gen
	token, _ := ts.register(t, "improveboth@example.com")

	// When both are supplied the pasted text is improved; the document is
	// never opened (the URI here is deliberately unparseable as a PDF).
	w := ts.do(t, http.MethodPost, "/ai/improve", token, map[string]string{
		"text":    "I did things.",
		"dataUri": pdfDataURI(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out improveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Better.", out.Improved)
}
