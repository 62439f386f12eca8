package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"talentflow-backend/internal/config"
	"talentflow-backend/internal/store"
)

// Server binds the simulated service to its configuration and entity store.
type Server struct {
	cfg   *config.Config
	store *store.Store
	log   *zap.Logger
}

// New constructs a Server over an initialized store.
func New(cfg *config.Config, st *store.Store, lg *zap.Logger) *Server {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Server{cfg: cfg, store: st, log: lg}
}

// HTTPServer wraps the registered routes in an http.Server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Service.Address,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
