package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pbaille/glossary/internal/config"
	"github.com/pbaille/glossary/internal/domain"
	"github.com/pbaille/glossary/internal/fetcher"
	"github.com/pbaille/glossary/internal/store"
	"github.com/rs/cors"
)

// Server handles HTTP requests for the glossary API
type Server struct {
	store   *store.Store
	fetcher *fetcher.Fetcher
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a new API server
func New(s *store.Store, cfg *config.Config, logger *slog.Logger) *Server {
	return &Server{
		store:   s,
		fetcher: fetcher.New(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, cfg.Fetch.UserAgent),
		cfg:     cfg,
		logger:  logger,
	}
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Sessions
	mux.HandleFunc("POST /sessions", s.createSession)
	mux.HandleFunc("GET /sessions/{id}", s.getSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.deleteSession)

	// User dictionary
	mux.HandleFunc("PUT /sessions/{id}/dictionary", s.uploadDictionary)
	mux.HandleFunc("DELETE /sessions/{id}/dictionary", s.clearDictionary)

	// Glossary
	mux.HandleFunc("POST /sessions/{id}/glossary", s.generateGlossary)
	mux.HandleFunc("GET /sessions/{id}/glossary", s.getGlossary)
	mux.HandleFunc("GET /sessions/{id}/glossary.csv", s.exportGlossary)
	mux.HandleFunc("POST /sessions/{id}/glossary/entries", s.addEntry)
	mux.HandleFunc("PATCH /sessions/{id}/glossary/entries/{abbr}", s.updateEntry)
	mux.HandleFunc("DELETE /sessions/{id}/glossary/entries/{abbr}", s.deleteEntry)

	// Built-in dictionary
	mux.HandleFunc("GET /builtin", s.builtin)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return s.wrap(mux)
}

// wrap applies the middleware chain, outermost last
func (s *Server) wrap(h http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORS.Origins(),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", passwordHeader, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	h = requirePassword(s.cfg.Auth.Password)(h)
	h = c.Handler(h)
	h = recoverPanics(s.logger)(h)
	h = logRequests(s.logger)(h)
	h = withRequestID(h)
	return h
}

// Run starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	go s.purgeLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// purgeLoop drops sessions idle for longer than the configured TTL
func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Session.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.store.PurgeIdleSessions(now.Add(-s.cfg.Session.TTL))
			if err != nil {
				s.logger.Error("purge sessions", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.Info("purged idle sessions", slog.Int64("count", n))
			}
		}
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps domain errors to HTTP statuses
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "store error", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
