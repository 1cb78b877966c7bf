package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/resumeforge/resumeforge/internal/config"
	"github.com/resumeforge/resumeforge/internal/extract"
	"github.com/resumeforge/resumeforge/internal/generate"
	"github.com/resumeforge/resumeforge/internal/invoice"
	"github.com/resumeforge/resumeforge/internal/llm"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/server/middleware"
	"github.com/resumeforge/resumeforge/internal/server/ratelimit"
	"github.com/resumeforge/resumeforge/internal/store"
)

var log = logrus.StandardLogger()

// Storage is the slice of the store the handlers use. An interface so
// tests can run against a mock.
type Storage interface {
	UserAccounts

	CreateResume(ctx context.Context, doc *resume.Document) (*resume.Document, error)
	GetResume(ctx context.Context, ownerID, id uuid.UUID) (*resume.Document, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]resume.Document, error)
	UpdateResume(ctx context.Context, doc *resume.Document) (*resume.Document, error)
	DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error

	CreateInvoice(ctx context.Context, doc *invoice.Document) (*invoice.Document, error)
	GetInvoice(ctx context.Context, ownerID, id uuid.UUID) (*invoice.Document, error)
	ListInvoices(ctx context.Context, ownerID uuid.UUID) ([]invoice.Document, error)
	UpdateInvoice(ctx context.Context, doc *invoice.Document) (*invoice.Document, error)
	DeleteInvoice(ctx context.Context, ownerID, id uuid.UUID) error
}

// Extractor pulls structured documents out of uploaded PDFs.
type Extractor interface {
	Resume(ctx context.Context, p extract.Payload) (*resume.ExtractedResume, error)
	Invoice(ctx context.Context, p extract.Payload) (*invoice.Content, error)
}

// Generator produces and rewrites resume content.
type Generator interface {
	FromParams(ctx context.Context, p generate.Params) (*resume.ExtractedResume, error)
	Improve(ctx context.Context, text, context string) (string, error)
}

// Exporter turns a document into a downloadable PDF.
type Exporter interface {
	Resume(ctx context.Context, doc *resume.Document) ([]byte, string, error)
	Invoice(ctx context.Context, doc *invoice.Document) ([]byte, string, error)
}

// Server is the HTTP API.
type Server struct {
	httpServer  *http.Server
	storage     Storage
	extractor   Extractor
	generator   Generator
	exporter    Exporter
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	closeStore  func()
	closeLLM    func() error
}

// New builds a fully wired server from configuration: database pool, model
// client (absent when no key is configured), and all services.
func New(cfg *config.Config) (*Server, error) {
	st, err := store.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		st.Close()
		return nil, err
	}

	// A missing key is not fatal: model-backed endpoints surface it
	// per-request as a configuration error.
	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = llm.NewGeminiClient(context.Background(), nil, cfg.GeminiAPIKey)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
	} else {
		log.Warn("no Gemini API key configured, AI endpoints will return configuration errors")
	}

	closeLLM := func() error { return nil }
	if client != nil {
		closeLLM = client.Close
	}

	s, err := newServer(cfg.Port, st, extract.New(client), generate.New(client), pdfExporter{})
	if err != nil {
		st.Close()
		return nil, err
	}
	s.closeStore = st.Close
	s.closeLLM = closeLLM
	return s, nil
}

// newServer wires handlers around explicit dependencies. Tests call this
// with fakes.
func newServer(port int, storage Storage, extractor Extractor, generator Generator, exporter Exporter) (*Server, error) {
	s := &Server{
		storage:   storage,
		extractor: extractor,
		generator: generator,
		exporter:  exporter,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(storage, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export holds the connection
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except health and the identity
// boundary requires a valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := http.NewServeMux()

	authed.HandleFunc("POST /ai/extract/resume", s.handleExtractResume)
	authed.HandleFunc("POST /ai/extract/invoice", s.handleExtractInvoice)
	authed.HandleFunc("POST /ai/generate", s.handleGenerate)
	authed.HandleFunc("POST /ai/improve", s.handleImprove)

	authed.HandleFunc("GET /templates", s.handleListTemplates)
	authed.HandleFunc("GET /themes", s.handleListThemes)

	authed.HandleFunc("POST /resumes", s.handleCreateResume)
	authed.HandleFunc("GET /resumes", s.handleListResumes)
	authed.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	authed.HandleFunc("PUT /resumes/{id}", s.handleUpdateResume)
	authed.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	authed.HandleFunc("GET /resumes/{id}/export", s.handleExportResume)
	authed.HandleFunc("GET /resumes/{id}/previews", s.handleResumePreviews)

	authed.HandleFunc("POST /invoices", s.handleCreateInvoice)
	authed.HandleFunc("GET /invoices", s.handleListInvoices)
	authed.HandleFunc("GET /invoices/{id}", s.handleGetInvoice)
	authed.HandleFunc("PUT /invoices/{id}", s.handleUpdateInvoice)
	authed.HandleFunc("DELETE /invoices/{id}", s.handleDeleteInvoice)
	authed.HandleFunc("GET /invoices/{id}/export", s.handleExportInvoice)

	mux.Handle("/", middleware.Auth(s.jwtService.AsTokenValidator())(authed))

	return mux
}

// Start begins listening and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-stop
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeLLM != nil {
		if err := s.closeLLM(); err != nil {
			log.WithError(err).Warn("failed to close model client")
		}
	}
	if s.closeStore != nil {
		s.closeStore()
	}
	log.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles requests per client IP.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request completed")
	})
}

func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":    "rate_limit_exceeded",
		"message":  "Rate limit exceeded. Please try again later.",
		"limit":    info.Limit,
		"reset_at": info.ResetTime.Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// writeError writes an error JSON response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
