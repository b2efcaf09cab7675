// Package server provides the HTTP API for Kensaku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/corpus"
	"github.com/hyperjump/kensaku/internal/search"
)

// ReloadFunc reloads the corpus file and rebuilds both ranking models,
// returning the new store and engine. Set by the entry point; nil when
// the server has no corpus file to reload from.
type ReloadFunc func() (*corpus.Store, *search.Engine, error)

// Server is the HTTP server for the Kensaku API. The engine and store are
// immutable; reloads build fresh ones and swap them under the lock.
type Server struct {
	mu     sync.RWMutex
	engine *search.Engine
	store  *corpus.Store

	config *config.Config
	logger *zap.Logger
	reload ReloadFunc
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *search.Engine, store *corpus.Store, cfg *config.Config, logger *zap.Logger, reload ReloadFunc) *Server {
	return &Server{
		engine: engine,
		store:  store,
		config: cfg,
		logger: logger,
		reload: reload,
	}
}

// SetEngine swaps in a freshly built store and engine (after a reload).
func (s *Server) SetEngine(store *corpus.Store, engine *search.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	s.engine = engine
}

// current returns the store and engine under the read lock.
func (s *Server) current() (*corpus.Store, *search.Engine) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store, s.engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/documents/{index}", s.handleGetDocument)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
