// Command lexicod serves the lexical analysis API.
//
// Endpoints:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/languages
//	POST /api/v1/analyze                      body: {"text":"...","language":"es"}
//	POST /api/v1/documents                    body: {"title":"...","language":"es","text":"..."}
//	GET  /api/v1/documents
//	GET  /api/v1/documents/{id}
//	POST /api/v1/documents/{id}/analyses[?lang=en]
//	GET  /api/v1/documents/{id}/analyses
//	GET  /api/v1/documents/{id}/summary[?top=20&low=20&lang=en]
//	POST /api/v1/analyses/batch               body: {"document_ids":["..."]}
//	GET  /api/v1/analyses/{id}
//	GET  /api/v1/analyses/{id}/report[?page_len=60]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tsawler/lexico/internal/api"
	"github.com/tsawler/lexico/internal/config"
	"github.com/tsawler/lexico/internal/logger"
	"github.com/tsawler/lexico/internal/metrics"
	"github.com/tsawler/lexico/internal/service"
	"github.com/tsawler/lexico/internal/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("LEXICO_CONFIG"), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(string(cfg.Environment), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.NewCollector("lexico")
	svc := service.New(st, cfg, m, logger)
	router := api.NewRouter(svc, m, logger, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		// JSON escaping can double the size of a text.
		MaxBodyBytes: int64(cfg.Analysis.MaxDocumentBytes)*2 + 64<<10,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.Server.Address),
			zap.String("environment", string(cfg.Environment)),
			zap.String("dataDir", cfg.DataDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
