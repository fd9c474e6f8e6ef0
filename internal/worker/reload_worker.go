package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/service"
)

// Runner executes one load run.
type Runner interface {
	Run(ctx context.Context, opts service.RunOptions) (*model.LoadRun, error)
}

// ReloadWorker consumes reload_jobs_queue and runs one load at a time, so
// two reloads never write the graph concurrently.
type ReloadWorker struct {
	runner Runner
	rdb    *redis.Client
	queue  string
	wait   time.Duration
	log    zerolog.Logger
}

// NewReloadWorker creates a new ReloadWorker.
func NewReloadWorker(runner Runner, rdb *redis.Client, log zerolog.Logger) *ReloadWorker {
	return &ReloadWorker{
		runner: runner,
		rdb:    rdb,
		queue:  config.WorkerKey.ReloadJobsQueue,
		wait:   time.Second,
		log:    log.With().Str("component", "reload_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ReloadWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

// processNext handles at most one job. It reports whether a job was taken.
func (w *ReloadWorker) processNext(ctx context.Context) bool {
	result, err := w.rdb.BLPop(ctx, w.wait, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			// Back off so a dead Redis does not spin the loop.
			select {
			case <-ctx.Done():
			case <-time.After(w.wait):
			}
		}
		return false
	}
	if len(result) < 2 {
		return false
	}

	var job model.ReloadJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		w.log.Error().Err(err).Str("payload", result[1]).Msg("Dropping malformed reload job")
		return true
	}

	// A failed load is recorded on the run itself; recovery is a new job.
	run, err := w.runner.Run(ctx, service.RunOptions{
		RunID:    job.RunID,
		Seed:     job.Seed,
		Students: job.Students,
	})
	if err != nil {
		w.log.Error().Err(err).Str("run_id", job.RunID.String()).Msg("Reload job failed")
		return true
	}
	w.log.Info().
		Str("run_id", run.ID.String()).
		Int("nodes", run.NodeCount).
		Int("edges", run.EdgeCount).
		Msg("Reload job finished")
	return true
}
