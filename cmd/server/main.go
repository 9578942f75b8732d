package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csai-playback/internal/platform/config"
	"csai-playback/internal/platform/logger"
	"csai-playback/internal/platform/metrics"
	"csai-playback/internal/platform/sched"
	"csai-playback/internal/playback"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	contentFile := config.GetEnv("CONTENT_FILE", "")
	seekDelta := config.GetEnvFloat("SEEK_DELTA", 5)
	seekWindowMS := config.GetEnvInt("SEEK_WINDOW_MS", 2000)

	log := logger.New(logLevel, logFormat)

	catalog := playback.ExampleCatalog()
	if contentFile != "" {
		loaded, err := playback.LoadCatalog(contentFile)
		if err != nil {
			log.Error("content catalog load failed", "file", contentFile, "error", err)
			os.Exit(1)
		}
		catalog = loaded
	}

	seekCfg := playback.SeekConfig{
		SeekDelta:          seekDelta,
		AccumulationWindow: time.Duration(seekWindowMS) * time.Millisecond,
	}

	repo := playback.NewInMemoryRepository()
	met := metrics.New()
	svc := playback.NewService(repo, catalog, seekCfg, sched.NewReal(), log, met)
	h := playback.NewHandler(svc, log, met)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetActiveSessions(repo.ActiveSessionCount()) }).ServeHTTP(w, r)
	})
	h.Routes(r)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"contents", len(catalog.Contents),
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
