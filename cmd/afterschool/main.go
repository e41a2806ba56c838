package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/config"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/handler"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/metrics"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/service"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage/memory"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage/postgres"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/worker"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Services
	catalogSvc := service.NewCatalogService(store)

	if cfg.SeedLessons {
		ctxSeed, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		err := catalogSvc.Reset(ctxSeed)
		cancelSeed()
		if err != nil {
			slog.Error("failed to seed lessons", "error", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	bookingSvc := service.NewBookingService(store, m, cfg.BookingAttempts)

	// Worker
	spacesWorker := worker.NewSpacesWorker(catalogSvc, m, cfg.MetricsInterval)

	// Router
	r := handler.NewRouter(handler.RouterConfig{
		Catalog:        catalogSvc,
		Booking:        bookingSvc,
		Health:         store,
		Observer:       m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StaticDir:      cfg.StaticDir,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go spacesWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "memory_store", cfg.UseMemoryStore)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.UseMemoryStore {
		slog.Warn("using in-memory store; data is lost on exit")
		return memory.New(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.NewDB(ctx, cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func setupLogger(level, format string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
