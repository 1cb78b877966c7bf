package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/generate"
	"github.com/resumeforge/resumeforge/internal/invoice"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/store"
)

// mockStorage is an in-memory Storage for handler tests.
type mockStorage struct {
	users    map[string]*store.User
	resumes  map[uuid.UUID]*resume.Document
	invoices map[uuid.UUID]*invoice.Document
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		users:    make(map[string]*store.User),
		resumes:  make(map[uuid.UUID]*resume.Document),
		invoices: make(map[uuid.UUID]*invoice.Document),
	}
}

func (m *mockStorage) CreateUser(_ context.Context, email, name, passwordHash string) (*store.User, error) {
	if _, exists := m.users[email]; exists {
		return nil, store.ErrDuplicate
	}
	u := &store.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[email] = u
	return u, nil
}

func (m *mockStorage) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (m *mockStorage) CreateResume(_ context.Context, doc *resume.Document) (*resume.Document, error) {
	doc.ID = uuid.New()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()
	cp := *doc
	m.resumes[doc.ID] = &cp
	return doc, nil
}

func (m *mockStorage) GetResume(_ context.Context, ownerID, id uuid.UUID) (*resume.Document, error) {
	doc, ok := m.resumes[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *mockStorage) ListResumes(_ context.Context, ownerID uuid.UUID) ([]resume.Document, error) {
	out := []resume.Document{}
	for _, doc := range m.resumes {
		if doc.OwnerID == ownerID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (m *mockStorage) UpdateResume(_ context.Context, doc *resume.Document) (*resume.Document, error) {
	existing, ok := m.resumes[doc.ID]
	if !ok || existing.OwnerID != doc.OwnerID {
		return nil, store.ErrNotFound
	}
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = time.Now()
	cp := *doc
	m.resumes[doc.ID] = &cp
	return doc, nil
}

func (m *mockStorage) DeleteResume(_ context.Context, ownerID, id uuid.UUID) error {
	doc, ok := m.resumes[id]
	if !ok || doc.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

func (m *mockStorage) CreateInvoice(_ context.Context, doc *invoice.Document) (*invoice.Document, error) {
	doc.ID = uuid.New()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()
	cp := *doc
	m.invoices[doc.ID] = &cp
	return doc, nil
}

func (m *mockStorage) GetInvoice(_ context.Context, ownerID, id uuid.UUID) (*invoice.Document, error) {
	doc, ok := m.invoices[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *mockStorage) ListInvoices(_ context.Context, ownerID uuid.UUID) ([]invoice.Document, error) {
	out := []invoice.Document{}
	for _, doc := range m.invoices {
		if doc.OwnerID == ownerID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (m *mockStorage) UpdateInvoice(_ context.Context, doc *invoice.Document) (*invoice.Document, error) {
	existing, ok := m.invoices[doc.ID]
	if !ok || existing.OwnerID != doc.OwnerID {
		return nil, store.ErrNotFound
	}
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = time.Now()
	cp := *doc
	m.invoices[doc.ID] = &cp
	return doc, nil
}

func (m *mockStorage) DeleteInvoice(_ context.Context, ownerID, id uuid.UUID) error {
	doc, ok := m.invoices[id]
	if !ok || doc.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

// fakeExtractor returns canned results or errors.
type fakeExtractor struct {
	resumeResult  *resume.ExtractedResume
	invoiceResult *invoice.Content
	err           error
}

func (f *fakeExtractor) Resume(_ context.Context, _ extract.Payload) (*resume.ExtractedResume, error) {
	return f.resumeResult, f.err
}

func (f *fakeExtractor) Invoice(_ context.Context, _ extract.Payload) (*invoice.Content, error) {
	return f.invoiceResult, f.err
}

// fakeGenerator mirrors the real service's local validation so handler
// tests exercise the full error mapping.
type fakeGenerator struct {
	result   *resume.ExtractedResume
	improved string
	err      error
}

func (f *fakeGenerator) FromParams(_ context.Context, p generate.Params) (*resume.ExtractedResume, error) {
	if p.JobTitle == "" {
		return nil, generate.ErrInvalidParams
	}
	return f.result, f.err
}

func (f *fakeGenerator) Improve(_ context.Context, text, _ string) (string, error) {
	if text == "" {
		return "", generate.ErrEmptyText
	}
	return f.improved, f.err
}

// fakePDFExporter skips the headless browser.
type fakePDFExporter struct{}

func (fakePDFExporter) Resume(_ context.Context, doc *resume.Document) ([]byte, string, error) {
	return []byte("%PDF-fake"), "resume.pdf", nil
}

func (fakePDFExporter) Invoice(_ context.Context, doc *invoice.Document) ([]byte, string, error) {
	return []byte("%PDF-fake"), doc.Filename(), nil
}

type testServer struct {
	srv     *Server
	storage *mockStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	storage := newMockStorage()
	srv, err := newServer(0, storage, &fakeExtractor{}, &fakeGenerator{}, fakePDFExporter{})
	require.NoError(t, err)
	return &testServer{srv: srv, storage: storage}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.srv.httpServer.Handler.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token and ID.
func (ts *testServer) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}
