package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/database"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/logger"
	"github.com/cbnu/campus-ontology/internal/repository"
	"github.com/cbnu/campus-ontology/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	seed := flag.Int64("seed", cfg.Seed, "Generator seed; the same seed always yields the same graph")
	students := flag.Int("students", cfg.StudentCount, "Number of students to generate")
	batch := flag.Int("batch", cfg.BatchSize, "Rows per write transaction")
	largeBatch := flag.Int("large-batch", cfg.LargeBatchSize, "Rows per write transaction for the bulkiest groups")
	writers := flag.Int("writers", cfg.NodeWriters, "Concurrent node writers")
	ledger := flag.Bool("ledger", cfg.DatabaseURL != "", "Record the run in the PostgreSQL ledger")
	flag.Parse()

	cfg.StudentCount = *students
	cfg.BatchSize = *batch
	cfg.LargeBatchSize = *largeBatch
	cfg.NodeWriters = *writers

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, *seed, *ledger, log))
}

func run(ctx context.Context, cfg *config.Config, seed int64, ledger bool, log zerolog.Logger) int {
	// ─── Connect to Neo4j ──────────────────────────────────────────────
	driver, err := database.NewNeo4jDriver(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Neo4j")
		return 1
	}
	store := graphstore.NewNeo4jStore(driver, cfg.Neo4jDatabase, log)
	defer store.Close(context.Background())

	var opts []service.PipelineOption

	// ─── Connect to PostgreSQL (optional ledger) ───────────────────────
	if ledger {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to PostgreSQL")
			return 1
		}
		defer pool.Close()
		opts = append(opts, service.WithRunLedger(repository.NewRunRepository(pool)))
	}

	pipeline := service.NewPipelineService(store, cfg, log, opts...)

	start := time.Now()
	result, err := pipeline.Run(ctx, service.RunOptions{Seed: seed, Students: cfg.StudentCount})
	if err != nil {
		var bwe *apperrors.BatchWriteError
		switch {
		case errors.As(err, &bwe):
			log.Error().Str("target", bwe.Target).Int("chunk", bwe.Chunk).Msg("Load aborted; rerun to recover")
		case errors.Is(err, apperrors.ErrGeneration):
			log.Error().Msg("Generation failed; the graph was not touched")
		}
		return 1
	}

	log.Info().
		Str("run_id", result.ID.String()).
		Int("nodes", result.NodeCount).
		Int("edges", result.EdgeCount).
		Int("dropped", result.DroppedEdges).
		Dur("took", time.Since(start)).
		Msg("Load complete")
	return 0
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
