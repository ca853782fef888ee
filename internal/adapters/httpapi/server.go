// Package httpapi serves the recommendation and selection endpoints over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Searcher interface {
	Recommend(ctx context.Context, cmd application.SearchCommand) (application.Search, error)
}

type SelectionSaver interface {
	SaveSelection(ctx context.Context, cmd application.SaveSelectionCommand) (application.SaveSelectionResult, error)
}

type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func DefaultConfig(address string) Config {
	return Config{
		Address:         address,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    3 * time.Minute,
		IdleTimeout:     time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server
	searcher   Searcher
	saver      SelectionSaver
	metrics    *observability.Metrics
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewServer(cfg Config, searcher Searcher, saver SelectionSaver, metrics *observability.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		searcher: searcher,
		saver:    saver,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "http-server").Logger(),
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.indexHandler)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/get-papers", s.getPapers)
		r.Post("/save-selection", s.saveSelection)
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address and blocks until ctx is done,
// then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server starting")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")

	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(started)).
			Msg("request served")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
