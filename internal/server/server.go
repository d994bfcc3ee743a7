package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/metrics"
	"github.com/roach88/rigcheck/internal/session"
	"github.com/roach88/rigcheck/internal/store"
)

// Options wires the server's collaborators. Catalog, Engine and Sessions
// are required; Builds enables the gallery routes.
type Options struct {
	Catalog  *catalog.Holder
	Engine   *compat.Engine
	Sessions *session.Manager
	Builds   *store.Store
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Server is the rigcheck HTTP API.
type Server struct {
	catalog  *catalog.Holder
	engine   *compat.Engine
	sessions *session.Manager
	builds   *store.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
	router   *mux.Router
}

// New validates opts and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Catalog == nil || opts.Engine == nil || opts.Sessions == nil {
		return nil, errors.New("server: catalog, engine and sessions are required")
	}

	s := &Server{
		catalog:  opts.Catalog,
		engine:   opts.Engine,
		sessions: opts.Sessions,
		builds:   opts.Builds,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.New(s.sessions.Len)
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(observe(s.logger, s.metrics))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	v1.HandleFunc("/catalog/{category}", s.handleCatalogCategory).Methods(http.MethodGet)

	v1.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/parts/{category}", s.handleSelectPart).Methods(http.MethodPut)
	v1.HandleFunc("/sessions/{id}/parts/{category}", s.handleDeselectPart).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/check", s.handleCheck).Methods(http.MethodPost)

	if s.builds != nil {
		v1.HandleFunc("/builds", s.handleListBuilds).Methods(http.MethodGet)
		v1.HandleFunc("/builds", s.handleSaveBuild).Methods(http.MethodPost)
		v1.HandleFunc("/builds/{id}", s.handleGetBuild).Methods(http.MethodGet)
		v1.HandleFunc("/builds/{id}/like", s.handleLikeBuild).Methods(http.MethodPost)
		v1.HandleFunc("/builds/{id}/copy", s.handleCopyBuild).Methods(http.MethodPost)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
