package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resumeforge/internal/resume"
)

func TestHealthRequiresNoAuth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	ts := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/resumes"},
		{http.MethodPost, "/resumes"},
		{http.MethodGet, "/invoices"},
		{http.MethodPost, "/ai/generate"},
		{http.MethodGet, "/templates"},
	}
	for _, p := range paths {
		w := ts.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestAuthenticatedRoutesRejectGarbageToken(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/resumes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func validResumeBody() map[string]any {
	return map[string]any{
		"title":      "My Resume",
		"templateId": "modern",
		"themeId":    "default",
		"personalDetails": map[string]string{
			"fullName": "Dana Smith",
			"email":    "dana@example.com",
		},
		"summary":    "A summary.",
		"experience": []map[string]any{{"jobTitle": "Engineer", "company": "Acme", "startDate": "2021-03-01"}},
		"education":  []map[string]any{},
		"projects":   []map[string]any{},
		"skills":     "Go, SQL",
	}
}

func TestResumeCRUDFlow(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "crud@example.com")

	// Create.
	w := ts.do(t, http.MethodPost, "/resumes", token, validResumeBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "My Resume", created.Title)

	// Get.
	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "A summary.", got.Summary)
	require.Len(t, got.Experience, 1)
	assert.Nil(t, got.Experience[0].EndDate)

	// List.
	w = ts.do(t, http.MethodGet, "/resumes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Update overwrites the document whole.
	body := validResumeBody()
	body["title"] = "Renamed"
	body["summary"] = "Rewritten."
	w = ts.do(t, http.MethodPut, "/resumes/"+created.ID.String(), token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String(), token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "Rewritten.", got.Summary)

	// Delete.
	w = ts.do(t, http.MethodDelete, "/resumes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumeValidationFailureHasFieldPaths(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "fields@example.com")

	body := validResumeBody()
	body["personalDetails"] = map[string]string{"fullName": "Dana", "email": "not-an-email"}
	w := ts.do(t, http.MethodPost, "/resumes", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var failure validationFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	require.NotEmpty(t, failure.Fields)
	assert.Equal(t, "personalDetails.email", failure.Fields[0].Path)
}

func TestResumeUnknownTemplateRejected(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "tmpl@example.com")

	body := validResumeBody()
	body["templateId"] = "brutalist"
	w := ts.do(t, http.MethodPost, "/resumes", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown template")
}

func TestOwnershipScoping(t *testing.T) {
	ts := newTestServer(t)
	ownerToken, _ := ts.register(t, "owner@example.com")
	otherToken, _ := ts.register(t, "other@example.com")

	w := ts.do(t, http.MethodPost, "/resumes", ownerToken, validResumeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Another user's document reads as not found, never as forbidden.
	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodDelete, "/resumes/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/resumes", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestExportResume(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "export@example.com")

	w := ts.do(t, http.MethodPost, "/resumes", token, validResumeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String()+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "%PDF-")
}

func TestExportResumeUnknownTemplateOverride(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "exportbad@example.com")

	w := ts.do(t, http.MethodPost, "/resumes", token, validResumeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String()+"/export?template=nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumePreviewsReturnAllTemplates(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "previews@example.com")

	w := ts.do(t, http.MethodPost, "/resumes", token, validResumeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID.String()+"/previews", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var previews map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &previews))
	assert.Len(t, previews, 10)
	assert.Contains(t, previews["modern"], "Dana Smith")
}

func TestListTemplatesAndThemes(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "meta@example.com")

	w := ts.do(t, http.MethodGet, "/templates", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tmpls []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tmpls))
	assert.Len(t, tmpls, 10)
	assert.Equal(t, "modern", tmpls[0]["id"])

	w = ts.do(t, http.MethodGet, "/themes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var themes []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &themes))
	assert.NotEmpty(t, themes)
}
