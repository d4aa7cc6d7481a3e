package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/korjavin/fitnourish/internal/api"
	"github.com/korjavin/fitnourish/internal/auth"
	"github.com/korjavin/fitnourish/internal/config"
	"github.com/korjavin/fitnourish/internal/dataset"
	"github.com/korjavin/fitnourish/internal/logging"
	"github.com/korjavin/fitnourish/internal/metrics"
	"github.com/korjavin/fitnourish/internal/middleware"
	"github.com/korjavin/fitnourish/internal/present"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger, logCloser := logging.New(os.Stdout, logging.Options{Level: level, JSON: true, File: cfg.LogFile})
	defer logCloser.Close()
	slog.SetDefault(logger)

	if len(cfg.APIKeys) == 0 {
		slog.Warn("API_KEYS not set, all requests will be accepted without authentication")
	}

	slog.Info("loading dataset", "data_file", cfg.DataFile)
	ds, err := dataset.LoadFile(cfg.DataFile)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	m := ds.Manifest()
	slog.Info("dataset loaded",
		"records", m.RecordCount,
		"names", m.NameCount,
		"duplicates", m.DuplicateCount,
		"missing_cells", m.MissingCells,
		"duration", m.LoadDuration,
	)

	idx, err := dataset.NewSearchIndex(ds)
	if err != nil {
		slog.Error("failed to build search index", "error", err)
		os.Exit(1)
	}
	defer idx.Close()

	prom := metrics.NewProm()
	h := &api.Handler{
		Data:        ds,
		Search:      idx,
		Presenter:   present.New(ds, prom),
		SearchLimit: cfg.SearchLimit,
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h, api.Deps{
		Keys:     auth.NewKeys(cfg.APIKeys),
		Registry: metrics.NewRegistry(),
		Prom:     prom,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", auth.Header, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	}).Handler

	// Middleware chain (outer to inner): RequestID → Logging → Observe → CORS → RateLimit → mux
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.Observe(prom),
		corsHandler,
		middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	stop()

	slog.Info("server exited")
}
