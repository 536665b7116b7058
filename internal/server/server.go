// Package server is a local implementation of the tutoring chat API, so the
// client can be used end to end without the hosted service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/config"
	"github.com/abhisek/solvewise/internal/tutor"
)

const (
	sessionHeader = "X-Session-Id"
	maxBodyBytes  = 64 << 10
)

// Answerer produces one reply for one message.
type Answerer interface {
	Answer(ctx context.Context, q tutor.Question) (any, error)
}

type Options struct {
	Tutor  Answerer
	Config config.Server
	Logger *zap.Logger

	// NewSessionID is used when a request carries no session; defaults to a
	// random UUID.
	NewSessionID func() string
}

type Server struct {
	router *chi.Mux
	tutor  Answerer
	cfg    config.Server
	logger *zap.Logger
	newID  func() string
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	newID := opts.NewSessionID
	if newID == nil {
		newID = newSessionID
	}

	s := &Server{
		router: chi.NewRouter(),
		tutor:  opts.Tutor,
		cfg:    opts.Config,
		logger: logger.Named("server"),
		newID:  newID,
	}

	origin := s.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", sessionHeader},
		ExposedHeaders: []string{sessionHeader},
		MaxAge:         300,
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
