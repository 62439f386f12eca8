// Command talentflow serves the simulated recruiting backend.
package main

import (
	"net/http"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"talentflow-backend/internal/config"
	"talentflow-backend/internal/mirror"
	"talentflow-backend/internal/server"
	"talentflow-backend/internal/store"
	"talentflow-backend/pkg/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	lvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger := log.InitLog(lvl)
	defer func() { _ = logger.Sync() }()

	m, err := mirror.Open(cfg.Mirror.DSN, logger)
	if err != nil {
		logger.Fatal("mirror failed to open", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	st := store.New(m, logger)
	if err := st.Init(store.SeedCounts{
		Jobs:        cfg.Seed.Jobs,
		Candidates:  cfg.Seed.Candidates,
		Assessments: cfg.Seed.Assessments,
	}); err != nil {
		logger.Fatal("store failed to initialize", zap.Error(err))
	}

	srv := server.New(cfg, st, logger).HTTPServer()
	logger.Info("serving simulated backend", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
