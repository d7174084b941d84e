package ui

import (
	"context"
	"embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/google/uuid"

	"hypocalc/app"
	"hypocalc/internal"
)

//go:embed docs/formulas.md
var embeddedDocs embed.FS

// Server exposes the calculator over HTTP. It is a thin shell around
// app.CalcService: JSON in, TestResult JSON out, no verdict rendering and
// no persisted state.
type Server struct {
	router *chi.Mux
	calc   *app.CalcService
	log    *internal.Logger
}

// NewServer creates a new HTTP surface for the calculator
func NewServer(calc *app.CalcService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	s := &Server{
		router: chi.NewRouter(),
		calc:   calc,
		log:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler (exported for tests).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("calculator API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/reference", s.handleReference)
	s.router.Route("/api/tests", func(r chi.Router) {
		r.Get("/", s.handleListTests)
		r.Post("/{kind}", s.handleEvaluate)
	})
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReference serves the formula sheet as rendered HTML. The document is
// informational only; the engine never consumes it.
func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	src, err := embeddedDocs.ReadFile("docs/formulas.md")
	if err != nil {
		http.Error(w, "reference document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(markdown.ToHTML(src, nil, nil))
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.calc.Kinds())
}
