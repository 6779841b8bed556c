// Package server boots the HTTP process: config, logging, database,
// cache, storage, background workers, routes, and graceful shutdown.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/treasuryofflair/flairmarket/app/jobs"
	"github.com/treasuryofflair/flairmarket/app/routes"
	"github.com/treasuryofflair/flairmarket/config"
	"github.com/treasuryofflair/flairmarket/pkg/cache"
	"github.com/treasuryofflair/flairmarket/pkg/database"
	"github.com/treasuryofflair/flairmarket/pkg/logger"
	"github.com/treasuryofflair/flairmarket/pkg/metrics"
	"github.com/treasuryofflair/flairmarket/pkg/middleware"
	"github.com/treasuryofflair/flairmarket/pkg/queue"
	"github.com/treasuryofflair/flairmarket/pkg/reqid"
	"github.com/treasuryofflair/flairmarket/pkg/router"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
	"github.com/treasuryofflair/flairmarket/pkg/workerpool"
)

// taskPoolSize bounds the fire-and-forget pool; a full pool only drops
// view bumps.
const taskPoolSize = 50

const shutdownTimeout = 10 * time.Second

// Start runs the server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLog, err := logger.Setup()
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Redis is optional: sessions and the durable queue degrade to
	// in-process fallbacks without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-process fallbacks", "error", err)
	}

	storage.Connect()

	jobs.Register()
	queue.UseDB(db)
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, config.QueueWorkers())

	pool := workerpool.New(taskPoolSize)
	defer pool.Shutdown()

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	routes.RegisterAPI(r, db, pool)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
