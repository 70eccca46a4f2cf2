// Package web provides the HTTP server and handlers for the questionnaire UI.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/JonMunkholm/questionnaire/internal/config"
	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/remote"
	"github.com/JonMunkholm/questionnaire/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Converter turns an uploaded file into a questionnaire.
type Converter interface {
	Convert(ctx context.Context, raw []byte) (*core.Result, error)
}

// Submitter posts a carried-forward questionnaire to the remote repository.
type Submitter interface {
	Submit(ctx context.Context, payload string) (*remote.Response, error)
}

// Server is the HTTP server for the questionnaire application.
type Server struct {
	converter Converter
	submitter Submitter // nil when submission is disabled
	cfg       *config.Config
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a new Server instance. A nil submitter disables the
// submission route.
func NewServer(converter Converter, submitter Submitter, cfg *config.Config) *Server {
	s := &Server{
		converter: converter,
		submitter: submitter,
		cfg:       cfg,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/upload", s.handleUpload)
	s.router.Post("/upload_to_server", s.handleSubmit)
	s.router.Get("/healthz", s.handleHealth)
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", ln.Addr().String())
	return s.server.Serve(ln)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
// The page carries inline styles, so style-src allows them.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}
