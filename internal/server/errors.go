// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/resumeforge/resumeforge/internal/export"
	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/generate"
	"github.com/resumeforge/resumeforge/internal/render"
	"github.com/resumeforge/resumeforge/internal/schema"
	"github.com/resumeforge/resumeforge/internal/store"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials. It never says
// which part was wrong.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to its response status. The classes matter to
// the client: configuration problems are actionable (set the API key),
// upstream failures are retryable by the user, validation failures are
// local and carry field detail.
func HTTPStatus(err error) int {
	var emailTaken *ErrEmailAlreadyExists
	var badCreds *ErrInvalidCredentials
	var badRequest *ErrValidation
	var schemaErr *schema.ValidationError
	var renderErr *render.RenderError
	var exportErr *export.ExportError

	switch {
	case errors.Is(err, extract.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, extract.ErrExtraction), errors.Is(err, generate.ErrGeneration):
		return http.StatusBadGateway
	case errors.Is(err, extract.ErrUnsupportedPayload),
		errors.Is(err, generate.ErrEmptyText),
		errors.Is(err, generate.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &emailTaken):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &badRequest), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &renderErr):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
