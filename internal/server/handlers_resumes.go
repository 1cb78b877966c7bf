package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/resumeforge/resumeforge/internal/render"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/server/middleware"
)

// requireUser pulls the authenticated user out of the context. The auth
// middleware guarantees it for every route that reaches here.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document ID")
		return uuid.Nil, false
	}
	return id, true
}

// resumeRequest is the write payload for create and update. Content arrives
// whole; updates overwrite the stored document.
type resumeRequest struct {
	Title      string `json:"title"`
	TemplateID string `json:"templateId"`
	ThemeID    string `json:"themeId"`
	resume.Content
}

// validationFailure is the 400 body for field-level errors. The request is
// rejected whole; nothing is partially applied.
type validationFailure struct {
	Error  string              `json:"error"`
	Fields []resume.FieldError `json:"fields"`
}

func buildResumeDoc(req *resumeRequest, ownerID uuid.UUID) *resume.Document {
	doc := resume.NewDocument(req.Title)
	doc.OwnerID = ownerID
	if req.TemplateID != "" {
		doc.TemplateID = req.TemplateID
	}
	if req.ThemeID != "" {
		doc.ThemeID = req.ThemeID
	}
	doc.Content = req.Content
	doc.Normalize()
	return doc
}

// checkResumeDoc validates the document and its template choice. Returns
// false after writing the failure response.
func (s *Server) checkResumeDoc(w http.ResponseWriter, doc *resume.Document) bool {
	if _, err := render.Get(doc.TemplateID); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown template %q", doc.TemplateID))
		return false
	}
	if fields := doc.Validate(); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, validationFailure{Error: "validation failed", Fields: fields})
		return false
	}
	return true
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := buildResumeDoc(&req, userID)
	if !s.checkResumeDoc(w, doc) {
		return
	}

	created, err := s.storage.CreateResume(r.Context(), doc)
	if err != nil {
		log.WithError(err).Error("failed to create resume")
		writeError(w, HTTPStatus(err), "Failed to save resume")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := s.storage.ListResumes(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("failed to list resumes")
		writeError(w, HTTPStatus(err), "Failed to list resumes")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.storage.GetResume(r.Context(), userID, id)
	if err != nil {
		writeError(w, HTTPStatus(err), "Resume not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := buildResumeDoc(&req, userID)
	doc.ID = id
	if !s.checkResumeDoc(w, doc) {
		return
	}

	// Full overwrite, last write wins.
	updated, err := s.storage.UpdateResume(r.Context(), doc)
	if err != nil {
		writeError(w, HTTPStatus(err), "Failed to update resume")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.storage.DeleteResume(r.Context(), userID, id); err != nil {
		writeError(w, HTTPStatus(err), "Resume not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportResume streams the resume as a PDF download. Template and
// theme can be overridden per export without touching the saved document.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.storage.GetResume(r.Context(), userID, id)
	if err != nil {
		writeError(w, HTTPStatus(err), "Resume not found")
		return
	}

	if t := r.URL.Query().Get("template"); t != "" {
		if _, err := render.Get(t); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown template %q", t))
			return
		}
		doc.TemplateID = t
	}
	if th := r.URL.Query().Get("theme"); th != "" {
		doc.ThemeID = th
	}

	pdf, filename, err := s.exporter.Resume(r.Context(), doc)
	if err != nil {
		log.WithError(err).Error("resume export failed")
		writeError(w, HTTPStatus(err), "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.WithError(err).Error("failed to write pdf response")
	}
}

// handleResumePreviews renders the document through every template for the
// gallery view.
func (s *Server) handleResumePreviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.storage.GetResume(r.Context(), userID, id)
	if err != nil {
		writeError(w, HTTPStatus(err), "Resume not found")
		return
	}

	rendered, err := render.All(doc)
	if err != nil {
		log.WithError(err).Error("preview rendering failed")
		writeError(w, http.StatusInternalServerError, "Preview rendering failed")
		return
	}

	previews := make(map[string]string, len(rendered))
	for tid, html := range rendered {
		previews[tid] = string(html)
	}
	writeJSON(w, http.StatusOK, previews)
}

// handleListTemplates lists the built-in templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	tmpls, err := render.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	type templateInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]templateInfo, 0, len(tmpls))
	for _, t := range tmpls {
		out = append(out, templateInfo{ID: t.ID(), Name: t.Name()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleListThemes lists the accent themes.
func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	type themeInfo struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Accent string `json:"accent"`
	}
	themes := render.Themes()
	out := make([]themeInfo, 0, len(themes))
	for _, th := range themes {
		out = append(out, themeInfo{ID: th.ID, Name: th.Name, Accent: th.Accent})
	}
	writeJSON(w, http.StatusOK, out)
}
