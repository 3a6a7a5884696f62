package main

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"mediaforge/internal/config"
	"mediaforge/internal/engine"
	"mediaforge/internal/httpapi"
	"mediaforge/internal/jobs"
	"mediaforge/internal/orchestrator"
	"mediaforge/internal/pkg/logger"
	"mediaforge/internal/pkg/shutdown"
	"mediaforge/internal/storage"
	"mediaforge/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault().LogFatal("invalid configuration", err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "mediaforge-api",
	})

	log.Info("starting mediaforge API",
		"version", "0.1.0",
	)

	ctx := context.Background()

	// Initialize shutdown manager
	shutdownMgr := shutdown.NewManager(log, 30*time.Second)

	// Initialize storage provider
	log.Info("initializing storage provider", "provider", cfg.Storage.Provider)
	sp, err := storage.NewProvider(ctx, cfg.Storage)
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err)
	}
	if err := sp.EnsureBucket(ctx); err != nil {
		log.LogFatal("failed to ensure storage bucket", err)
	}
	log.Info("storage provider ready", "provider", sp.Provider(), "bucket", cfg.Storage.Bucket)

	// Initialize job store
	store := newJobStore(ctx, cfg.Jobs, shutdownMgr, log)

	// Initialize transcoding engine and worker pool
	eng := engine.New(cfg.Engine.FFmpegPath, cfg.Engine.FFprobePath, cfg.Engine.FontDir, log)
	pool := worker.NewPool(cfg.Worker.Size, cfg.Worker.AdmitWait, cfg.Worker.JobTimeout, log)

	orch := orchestrator.New(orchestrator.Deps{
		Engine:    eng,
		Storage:   sp,
		Store:     store,
		Pool:      pool,
		TempDir:   cfg.Engine.TempDir,
		KeyPrefix: cfg.Storage.KeyPrefix,
		Retry:     cfg.Retry,
		Log:       log,
	})

	// Create HTTP router
	router := httpapi.NewRouter(httpapi.Deps{
		Orch:        orch,
		Store:       store,
		SP:          sp,
		APIKey:      cfg.APIKey,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Log:         log,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Worker.JobTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Register server shutdown
	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening",
			"addr", server.Addr,
			"port", cfg.HTTPPort,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	// Wait for shutdown signal
	shutdownMgr.Wait()
}

// newJobStore builds the configured job-store backend and verifies its
// connectivity before the server starts taking requests.
func newJobStore(ctx context.Context, cfg config.Jobs, shutdownMgr *shutdown.Manager, log *logger.Logger) jobs.Store {
	switch cfg.Backend {
	case "redis":
		log.Info("connecting to Redis", "addr", cfg.RedisAddr)
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		shutdownMgr.Register("redis", func(ctx context.Context) error {
			return rdb.Close()
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.LogFatal("failed to ping Redis", err)
		}
		log.Info("Redis connected")
		return jobs.NewRedisStore(rdb, cfg.TTL)

	case "postgres":
		log.Info("connecting to PostgreSQL")
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.LogFatal("failed to connect to PostgreSQL", err)
		}
		shutdownMgr.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		if err := pool.Ping(ctx); err != nil {
			log.LogFatal("failed to ping PostgreSQL", err)
		}
		store := jobs.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.LogFatal("failed to ensure jobs schema", err)
		}
		log.Info("PostgreSQL connected")
		return store

	default:
		return jobs.NewMemoryStore()
	}
}
