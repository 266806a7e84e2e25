// Package server exposes document rendering and compilation over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	POST /v1/render     TOML description in, LaTeX source out
//	POST /v1/compile    TOML description in, PDF out
//
// Every request builds its own document, so handlers share no mutable state
// beyond the artifact cache. Compilation happens in a scratch directory
// named after a fresh UUID and removed when the request finishes.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/texforge/pkg/buildinfo"
	"github.com/matzehuels/texforge/pkg/cache"
	"github.com/matzehuels/texforge/pkg/compile"
	"github.com/matzehuels/texforge/pkg/docfile"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
	"github.com/matzehuels/texforge/pkg/observability"
)

const (
	// DefaultMaxBodyBytes bounds the size of a document description.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultJobName is used when the request does not name its output.
	DefaultJobName = "document"

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Engine       string      // TeX engine binary, defaults to pdflatex
	Cache        cache.Cache // Artifact cache, defaults to NullCache
	Logger       *log.Logger // Defaults to a discarding logger
	WorkDir      string      // Parent of per-request scratch dirs, defaults to os.TempDir()
	MaxBodyBytes int64       // Defaults to DefaultMaxBodyBytes
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	engine *compile.Engine
	router chi.Router
}

// New creates a server and its routes.
func New(cfg Config) *Server {
	if cfg.Engine == "" {
		cfg.Engine = compile.DefaultBinary
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		cfg: cfg,
		engine: compile.New(
			compile.WithBinary(cfg.Engine),
			compile.WithCache(cfg.Cache),
			compile.WithLogger(cfg.Logger),
		),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/compile", s.handleCompile)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	src := doc.Render()
	observability.Render().OnRender(r.Context(), middleware.GetReqID(r.Context()), len(src), time.Since(start))

	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	_, _ = io.WriteString(w, src)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	job := r.URL.Query().Get("name")
	if job == "" {
		job = DefaultJobName
	}
	if err := errors.ValidateJobName(job); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dir := filepath.Join(s.cfg.WorkDir, "texforge-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeIO, err, "create scratch dir"))
		return
	}
	defer os.RemoveAll(dir)

	doc.Filename = filepath.Join(dir, job)
	if err := doc.GeneratePDF(r.Context(), s.engine, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	pdf, err := os.ReadFile(doc.Filename + compile.PDFExtension)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeIO, err, "read compiled PDF"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+job+compile.PDFExtension+`"`)
	_, _ = w.Write(pdf)
}

// readDocument decodes the request body as a TOML description.
func (s *Server) readDocument(r *http.Request) (*latex.Document, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read request body")
	}
	if int64(len(body)) > s.cfg.MaxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document description exceeds %d bytes", s.cfg.MaxBodyBytes)
	}
	return docfile.Parse(body)
}
