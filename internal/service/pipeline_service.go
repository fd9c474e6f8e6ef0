package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/generator"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/loader"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/relation"
	"github.com/cbnu/campus-ontology/internal/repository"
	"github.com/cbnu/campus-ontology/internal/schema"
	"github.com/cbnu/campus-ontology/internal/websocket"
)

// GenerationBumper is told about every successful load so cached reads of
// the previous graph stop being served.
type GenerationBumper interface {
	BumpGeneration(ctx context.Context, generation string) error
}

// RunOptions selects what one run generates. A zero RunID starts a fresh
// run; a non-zero one continues a run queued through the API.
type RunOptions struct {
	RunID    uuid.UUID
	Seed     int64
	Students int
}

// PipelineService performs the full clear-and-reload: generate, derive,
// verify, clear, declare constraints, write. It is the only writer of the
// graph; callers must not run two pipelines against one store at once.
type PipelineService struct {
	client   graphstore.Client
	runs     repository.RunRepository
	progress ProgressPublisher
	cache    GenerationBumper
	schema   *schema.Manager
	cfg      *config.Config
	log      zerolog.Logger
}

// PipelineOption configures optional collaborators.
type PipelineOption func(*PipelineService)

// WithRunLedger records every run in the ledger.
func WithRunLedger(runs repository.RunRepository) PipelineOption {
	return func(s *PipelineService) { s.runs = runs }
}

// WithProgress publishes progress events for every run.
func WithProgress(p ProgressPublisher) PipelineOption {
	return func(s *PipelineService) { s.progress = p }
}

// WithCache invalidates cached reads after a successful run.
func WithCache(c GenerationBumper) PipelineOption {
	return func(s *PipelineService) { s.cache = c }
}

func NewPipelineService(client graphstore.Client, cfg *config.Config, log zerolog.Logger, opts ...PipelineOption) *PipelineService {
	s := &PipelineService{
		client:   client,
		progress: nopPublisher{},
		schema:   schema.NewManager(log),
		cfg:      cfg,
		log:      log.With().Str("component", "pipeline").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full load. The returned run is populated even when err is
// non-nil. Recovery from any failure is another full Run.
func (s *PipelineService) Run(ctx context.Context, opts RunOptions) (*model.LoadRun, error) {
	if opts.Students == 0 {
		opts.Students = s.cfg.StudentCount
	}
	run := &model.LoadRun{
		ID:           opts.RunID,
		Seed:         opts.Seed,
		StudentCount: opts.Students,
		Status:       model.RunRunning,
		StartedAt:    time.Now().UTC(),
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	log := s.log.With().Str("run_id", run.ID.String()).Int64("seed", run.Seed).Logger()
	progress := progressFor{pub: s.progress, runID: run.ID, log: log}

	if s.runs != nil {
		var err error
		if opts.RunID == uuid.Nil {
			err = s.runs.Create(ctx, run)
		} else {
			err = s.runs.MarkRunning(ctx, run.ID)
		}
		if err != nil {
			return run, fmt.Errorf("record run start: %w", err)
		}
	}

	log.Info().Int("students", run.StudentCount).Msg("Load run started")

	sum, err := s.execute(ctx, run, progress, log)
	if sum != nil {
		run.NodeCount = sum.Nodes
		run.EdgeCount = sum.EdgesCreated
		run.DroppedEdges = sum.Dropped
	}
	if err != nil {
		s.fail(ctx, run, progress, log, err)
		return run, err
	}

	run.Status = model.RunSucceeded
	s.finish(ctx, run, log)
	if s.cache != nil {
		if err := s.cache.BumpGeneration(context.WithoutCancel(ctx), run.ID.String()); err != nil {
			log.Warn().Err(err).Msg("Cache generation bump failed")
		}
	}
	progress.send(ctx, websocket.ProgressEvent{
		Event: websocket.EventSucceeded,
		Nodes: run.NodeCount,
		Edges: run.EdgeCount,
		Drops: run.DroppedEdges,
	})
	log.Info().
		Int("nodes", run.NodeCount).
		Int("edges", run.EdgeCount).
		Int("dropped", run.DroppedEdges).
		Msg("Load run succeeded")
	return run, nil
}

func (s *PipelineService) execute(ctx context.Context, run *model.LoadRun, progress progressFor, log zerolog.Logger) (*loader.Summary, error) {
	// Everything up to Verify is in memory; a failure leaves the store as is.
	progress.phase(ctx, websocket.PhaseGenerate)
	ds, err := generator.New(run.Seed, generator.Options{Students: run.StudentCount}, log).Generate(ctx)
	if err != nil {
		return nil, err
	}

	progress.phase(ctx, websocket.PhaseVerify)
	sizes := relation.BatchSizes{Default: s.cfg.BatchSize, Large: s.cfg.LargeBatchSize}
	plan := loader.Plan{
		Nodes: relation.Nodes(ds, sizes),
		Edges: relation.Derive(ds, sizes),
	}
	if err := relation.Verify(plan.Nodes, plan.Edges); err != nil {
		return nil, err
	}

	if err := s.client.VerifyConnectivity(ctx); err != nil {
		return nil, err
	}

	if err := s.prepare(ctx, progress); err != nil {
		return nil, err
	}

	writer := loader.NewWriter(s.client, loader.Options{
		NodeWriters: s.cfg.NodeWriters,
		Progress: func(p loader.Progress) {
			progress.send(ctx, websocket.ProgressEvent{
				Event:  websocket.EventChunk,
				Phase:  string(p.Phase),
				Target: p.Target,
				Chunk:  p.Chunk,
				Chunks: p.Chunks,
				Rows:   p.Rows,
			})
		},
	}, log)
	progress.phase(ctx, websocket.PhaseNodes)
	return writer.Load(ctx, plan)
}

// prepare clears the graph and declares constraints on one session.
func (s *PipelineService) prepare(ctx context.Context, progress progressFor) error {
	session := s.client.NewSession(ctx)
	defer session.Close(context.WithoutCancel(ctx))

	progress.phase(ctx, websocket.PhaseClear)
	if err := session.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear graph: %w", err)
	}

	progress.phase(ctx, websocket.PhaseSchema)
	return s.schema.Ensure(ctx, session)
}

func (s *PipelineService) fail(ctx context.Context, run *model.LoadRun, progress progressFor, log zerolog.Logger, cause error) {
	run.Status = model.RunFailed
	run.Error = cause.Error()
	s.finish(ctx, run, log)
	progress.send(ctx, websocket.ProgressEvent{Event: websocket.EventFailed, Error: run.Error})
	log.Error().Err(cause).Msg("Load run failed")
}

func (s *PipelineService) finish(ctx context.Context, run *model.LoadRun, log zerolog.Logger) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	if s.runs == nil {
		return
	}
	if err := s.runs.Finish(context.WithoutCancel(ctx), run); err != nil {
		log.Error().Err(err).Msg("Failed to record run result")
	}
}
