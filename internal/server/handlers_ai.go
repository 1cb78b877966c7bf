package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/generate"
)

// extractRequest carries an uploaded document as a base64 data URI, the way
// browser file readers produce them.
type extractRequest struct {
	DataURI string `json:"dataUri"`
}

func (s *Server) decodePayload(w http.ResponseWriter, r *http.Request) (extract.Payload, bool) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return extract.Payload{}, false
	}
	payload, err := extract.ParseDataURI(req.DataURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return extract.Payload{}, false
	}
	return payload, true
}

// handleExtractResume pulls structured resume content out of an uploaded
// PDF. One upstream attempt; failures are the caller's to retry.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.decodePayload(w, r)
	if !ok {
		return
	}

	extracted, err := s.extractor.Resume(r.Context(), payload)
	if err != nil {
		log.WithError(err).Warn("resume extraction failed")
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, extracted)
}

// handleExtractInvoice pulls a structured invoice out of an uploaded PDF.
func (s *Server) handleExtractInvoice(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.decodePayload(w, r)
	if !ok {
		return
	}

	extracted, err := s.extractor.Invoice(r.Context(), payload)
	if err != nil {
		log.WithError(err).Warn("invoice extraction failed")
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, extracted)
}

// handleGenerate builds a resume content bundle from role parameters.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var params generate.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bundle, err := s.generator.FromParams(r.Context(), params)
	if err != nil {
		log.WithError(err).Warn("generation failed")
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// improveRequest carries either pasted text or an uploaded document to pull
// the text from.
type improveRequest struct {
	Text    string `json:"text"`
	DataURI string `json:"dataUri,omitempty"`
	Context string `json:"context,omitempty"`
}

type improveResponse struct {
	Improved string `json:"improved"`
}

// handleImprove rewrites a piece of resume text. When no text is supplied
// but a document is, its plain text is extracted locally first.
func (s *Server) handleImprove(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" && req.DataURI != "" {
		payload, err := extract.ParseDataURI(req.DataURI)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		text, err := extract.Text(payload)
		if err != nil {
			log.WithError(err).Warn("text extraction failed")
			writeError(w, HTTPStatus(err), err.Error())
			return
		}
		req.Text = text
	}

	improved, err := s.generator.Improve(r.Context(), req.Text, req.Context)
	if err != nil {
		log.WithError(err).Warn("improve failed")
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, improveResponse{Improved: improved})
}
