package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/repository"
)

var (
	ErrLedgerDisabled   = errors.New("run ledger is not configured")
	ErrQueueUnavailable = errors.New("reload queue unavailable")
)

const (
	defaultRunListLimit = 20
	maxRunListLimit     = 100
)

// RunService queues reloads for the worker and reads the run ledger.
type RunService struct {
	runs repository.RunRepository
	rdb  *redis.Client
	cfg  *config.Config
	log  zerolog.Logger
}

// NewRunService creates a RunService. A nil runs repository disables every
// operation with ErrLedgerDisabled.
func NewRunService(runs repository.RunRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *RunService {
	return &RunService{
		runs: runs,
		rdb:  rdb,
		cfg:  cfg,
		log:  log.With().Str("component", "run_service").Logger(),
	}
}

// Enqueue records a queued run and hands it to the reload worker. Omitted
// request fields fall back to the configured seed and student count.
func (s *RunService) Enqueue(ctx context.Context, req model.ReloadRequest) (*model.LoadRun, error) {
	if s.runs == nil {
		return nil, ErrLedgerDisabled
	}

	run := &model.LoadRun{
		ID:           uuid.New(),
		Seed:         s.cfg.Seed,
		StudentCount: s.cfg.StudentCount,
		Status:       model.RunQueued,
		StartedAt:    time.Now().UTC(),
	}
	if req.Seed != nil {
		run.Seed = *req.Seed
	}
	if req.Students > 0 {
		run.StudentCount = req.Students
	}

	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("record queued run: %w", err)
	}

	payload, err := json.Marshal(model.ReloadJob{RunID: run.ID, Seed: run.Seed, Students: run.StudentCount})
	if err == nil {
		err = s.rdb.RPush(ctx, config.WorkerKey.ReloadJobsQueue, payload).Err()
	}
	if err != nil {
		// Close the ledger entry so it does not sit in queued forever.
		run.Status = model.RunFailed
		run.Error = "enqueue: " + err.Error()
		if ferr := s.runs.Finish(context.WithoutCancel(ctx), run); ferr != nil {
			s.log.Error().Err(ferr).Str("run_id", run.ID.String()).Msg("Failed to close unqueued run")
		}
		return nil, fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}

	s.log.Info().
		Str("run_id", run.ID.String()).
		Int64("seed", run.Seed).
		Int("students", run.StudentCount).
		Msg("Reload queued")
	return run, nil
}

// Get returns one run.
func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*model.LoadRun, error) {
	if s.runs == nil {
		return nil, ErrLedgerDisabled
	}
	return s.runs.GetByID(ctx, id)
}

// List returns the most recent runs first.
func (s *RunService) List(ctx context.Context, limit int) ([]*model.LoadRun, error) {
	if s.runs == nil {
		return nil, ErrLedgerDisabled
	}
	if limit <= 0 {
		limit = defaultRunListLimit
	}
	return s.runs.List(ctx, min(limit, maxRunListLimit))
}
