// Package server serves the artifacts written by the last run, plus the latest
// published rows when Redis publishing is enabled.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/XavierBriggs/Pythia/internal/publisher"
	"github.com/XavierBriggs/Pythia/internal/report"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures the server
type Options struct {
	OutputDir      string
	AllowedOrigins []string

	// Latest is optional; the reports API is not mounted without it
	Latest publisher.LatestSource

	Logger *zap.Logger
}

// Server serves report artifacts over HTTP
type Server struct {
	dir    string
	latest publisher.LatestSource
	logger *zap.Logger
	router chi.Router
}

// New creates a server and its routes
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		dir:    opts.OutputDir,
		latest: opts.Latest,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.HealthCheck)
	r.Get("/", s.artifact(report.HTMLFile, "text/html; charset=utf-8"))
	r.Get("/"+report.HTMLFile, s.artifact(report.HTMLFile, "text/html; charset=utf-8"))
	r.Get("/"+report.JSONFile, s.artifact(report.JSONFile, "application/json"))

	if s.latest != nil {
		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/reports/{sport}/latest", s.GetLatestReport)
		})
	}

	s.router = r
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr), zap.String("dir", s.dir))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// HealthCheck reports whether the page artifact exists
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	_, err := os.Stat(filepath.Join(s.dir, report.HTMLFile))
	if err != nil {
		status = "no report"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "pythia",
	})
}

// GetLatestReport returns the rows of the most recently published report
func (s *Server) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sport := chi.URLParam(r, "sport")
	data, err := s.latest.Latest(ctx, sport)
	if errors.Is(err, publisher.ErrNoReport) {
		s.respondError(w, http.StatusNotFound, "no report published for "+sport, nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusServiceUnavailable, "failed to read latest report", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) artifact(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "failed to read "+name, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// ErrorResponse is the body of every error reply from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.logger.Error(message, zap.Error(err))
	}

	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
