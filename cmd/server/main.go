package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/database"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/handler"
	"github.com/cbnu/campus-ontology/internal/logger"
	"github.com/cbnu/campus-ontology/internal/repository"
	"github.com/cbnu/campus-ontology/internal/router"
	"github.com/cbnu/campus-ontology/internal/service"
	"github.com/cbnu/campus-ontology/internal/validator"
	"github.com/cbnu/campus-ontology/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting campus ontology server")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Neo4j ──────────────────────────────────────────────
	driver, err := database.NewNeo4jDriver(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Neo4j")
	}
	store := graphstore.NewNeo4jStore(driver, cfg.Neo4jDatabase, log)
	defer store.Close(context.Background())

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Connect to PostgreSQL (optional run ledger) ───────────────────
	var runRepo repository.RunRepository
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		runRepo = repository.NewRunRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set; run ledger and reload API disabled")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	queryService := service.NewQueryService(store, rdb, cfg.QueryCacheTTL, log)
	runService := service.NewRunService(runRepo, rdb, cfg, log)

	pipelineOpts := []service.PipelineOption{
		service.WithProgress(service.NewRedisProgressPublisher(rdb, log)),
		service.WithCache(queryService),
	}
	if runRepo != nil {
		pipelineOpts = append(pipelineOpts, service.WithRunLedger(runRepo))
	}
	pipeline := service.NewPipelineService(store, cfg, log, pipelineOpts...)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Graph:    handler.NewGraphHandler(queryService, store),
		Run:      handler.NewRunHandler(runService),
		Progress: handler.NewProgressHandler(rdb, runService, log, cfg.AllowedOrigins),
		System:   handler.NewSystemHandler(store, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	// A single reload worker keeps the graph single-writer.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup
	reloadWorker := worker.NewReloadWorker(pipeline, rdb, log)
	workers.Go(func() { reloadWorker.Start(workerCtx) })

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the reload worker. A load in flight is abandoned and its run
	// recorded as failed; the next reload recovers the graph.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
