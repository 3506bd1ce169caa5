package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
	"github.com/bryanwahyu/osintmap/internal/infra/httpserver"
	"github.com/bryanwahyu/osintmap/internal/logger"
	"github.com/bryanwahyu/osintmap/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	lg, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	app, err := bootstrap.New(ctx, cfg, lg, bootstrap.Options{})
	if err != nil {
		lg.Fatalw("startup failed", "error", err)
	}
	defer app.Close()

	// the map exists before the first request
	if err := app.Service.RegenerateMap(ctx); err != nil {
		lg.Warnw("initial map generation failed", "error", err)
	}

	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst)
	dbCheck := &middleware.DatabaseHealthChecker{DB: app.DB}

	handler := httpserver.NewRouter(app.Service, app.Analysis, httpserver.Options{
		Log:            lg,
		Metrics:        metrics,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checks: map[string]middleware.HealthChecker{
			"database":  dbCheck,
			"artifacts": &middleware.ArtifactDirChecker{Dir: filepath.Dir(cfg.Artifacts.MapPath)},
		},
		Readiness: dbCheck,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.Report.Timeout > srv.WriteTimeout {
		srv.WriteTimeout = cfg.Report.Timeout + 5*time.Second
	}

	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-pruneCtx.Done():
				return
			case <-t.C:
				limiter.Prune(5 * time.Minute)
			}
		}
	}()

	// run server
	go func() {
		lg.Infow("server listening", "addr", addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatalw("server error", "error", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	lg.Infow("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		lg.Errorw("shutdown error", "error", err)
	}
}
