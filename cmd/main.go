package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openhack/arena/internal/adapters/http/api"
	"github.com/openhack/arena/internal/adapters/identity"
	"github.com/openhack/arena/internal/adapters/objectstore"
	"github.com/openhack/arena/internal/adapters/repository"
	"github.com/openhack/arena/internal/adapters/roster"
	"github.com/openhack/arena/internal/app"
	"github.com/openhack/arena/internal/config"
	"github.com/openhack/arena/internal/domain/acl"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second

	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Error(ctx, "failed to open database", logger.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	objects, err := objectstore.NewFSStore(cfg.StorageDir)
	if err != nil {
		log.Error(ctx, "failed to open object store", logger.Error(err))
		return
	}

	upstreamClient := &http.Client{Timeout: time.Duration(cfg.UpstreamTimeoutMS) * time.Millisecond}
	rosterClient := roster.NewHTTPClient(cfg.RosterURL, roster.WithHTTPClient(upstreamClient))
	identityClient := identity.NewHTTPClient(cfg.IdentityURL, identity.WithHTTPClient(upstreamClient))

	svc := app.New(store, rosterClient, identityClient, objects,
		app.WithLogger(log),
		app.WithRescorePolicy(app.RescorePolicy(cfg.RescorePolicy)),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.EventQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	auth := api.NewAuthenticator(cfg.JWTSecret, acl.DefaultTable())
	apiServer := api.NewServer(svc, svc, auth)
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes service-level gauges in the
// background.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := svc.Stats()
			if queueLen, ok := stats["queue_length"].(int); ok {
				metrics.UpdateQueueSize(queueLen)
			}
		}
	}
}
