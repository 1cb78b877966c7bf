package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/resumeforge/resumeforge/internal/invoice"
)

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var content invoice.Content
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := &invoice.Document{OwnerID: userID, Content: content}
	created, err := s.storage.CreateInvoice(r.Context(), doc)
	if err != nil {
		log.WithError(err).Error("failed to create invoice")
		writeError(w, HTTPStatus(err), "Failed to save invoice")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := s.storage.ListInvoices(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("failed to list invoices")
		writeError(w, HTTPStatus(err), "Failed to list invoices")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.storage.GetInvoice(r.Context(), userID, id)
	if err != nil {
		writeError(w, HTTPStatus(err), "Invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var content invoice.Content
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := &invoice.Document{ID: id, OwnerID: userID, Content: content}
	updated, err := s.storage.UpdateInvoice(r.Context(), doc)
	if err != nil {
		writeError(w, HTTPStatus(err), "Failed to update invoice")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.storage.DeleteInvoice(r.Context(), userID, id); err != nil {
		writeError(w, HTTPStatus(err), "Invoice not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.storage.GetInvoice(r.Context(), userID, id)
	if err != nil {
		writeError(w, HTTPStatus(err), "Invoice not found")
		return
	}

	pdf, filename, err := s.exporter.Invoice(r.Context(), doc)
	if err != nil {
		log.WithError(err).Error("invoice export failed")
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
