package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
	"github.com/cbnu/campus-ontology/internal/websocket"
)

func testConfig() *config.Config {
	return &config.Config{
		Seed:           2024,
		StudentCount:   600,
		BatchSize:      500,
		LargeBatchSize: 1000,
		NodeWriters:    4,
		JWTSecret:      "test-secret",
		BcryptCost:     4,
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []websocket.ProgressEvent
}

func (l *eventLog) Publish(_ context.Context, ev websocket.ProgressEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *eventLog) last() websocket.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[len(l.events)-1]
}

type fakeRuns struct {
	mu       sync.Mutex
	created  []*model.LoadRun
	running  []uuid.UUID
	finished []model.LoadRun
}

func (f *fakeRuns) Create(_ context.Context, run *model.LoadRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRuns) MarkRunning(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = append(f.running, id)
	return nil
}

func (f *fakeRuns) Finish(_ context.Context, run *model.LoadRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, *run)
	return nil
}

func (f *fakeRuns) GetByID(context.Context, uuid.UUID) (*model.LoadRun, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeRuns) List(context.Context, int) ([]*model.LoadRun, error) { return nil, nil }

type bumper struct{ generations []string }

func (b *bumper) BumpGeneration(_ context.Context, gen string) error {
	b.generations = append(b.generations, gen)
	return nil
}

func TestPipeline_EndToEndOnMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := graphstore.NewMemoryStore()
	events := &eventLog{}
	runs := &fakeRuns{}
	cache := &bumper{}
	svc := NewPipelineService(store, testConfig(), zerolog.Nop(),
		WithProgress(events), WithRunLedger(runs), WithCache(cache))

	run, err := svc.Run(ctx, RunOptions{Seed: 2024})
	require.NoError(t, err)

	assert.Equal(t, model.RunSucceeded, run.Status)
	assert.Equal(t, 600, run.StudentCount)
	assert.Zero(t, run.DroppedEdges)
	require.NotNil(t, run.FinishedAt)

	nodes, _ := store.CountNodes(ctx)
	edges, _ := store.CountEdges(ctx)
	assert.Equal(t, run.NodeCount, nodes)
	assert.Equal(t, run.EdgeCount, edges)
	assert.Len(t, store.Constraints(), len(ontology.Labels()))

	taught, err := store.CoursesByDepartment(ctx, "DEP-CSE")
	require.NoError(t, err)
	require.NotEmpty(t, taught)
	for _, row := range taught {
		assert.Equal(t, "DEP-CSE", row.Professor.String("departmentId"))
	}

	grads, err := store.StudentsByStatus(ctx, model.StudentGraduating, 0)
	require.NoError(t, err)
	require.NotEmpty(t, grads)
	for _, s := range grads {
		assert.GreaterOrEqual(t, s.Int("creditsEarned"), 120, s.ID())
	}

	require.Len(t, runs.created, 1)
	require.Len(t, runs.finished, 1)
	assert.Equal(t, model.RunSucceeded, runs.finished[0].Status)
	assert.Equal(t, []string{run.ID.String()}, cache.generations)
	assert.Equal(t, websocket.EventSucceeded, events.last().Event)
}

func TestPipeline_RerunReplacesGraph(t *testing.T) {
	ctx := context.Background()
	store := graphstore.NewMemoryStore()
	svc := NewPipelineService(store, testConfig(), zerolog.Nop())

	first, err := svc.Run(ctx, RunOptions{Seed: 7, Students: 200})
	require.NoError(t, err)
	second, err := svc.Run(ctx, RunOptions{Seed: 7, Students: 200})
	require.NoError(t, err)

	assert.Equal(t, first.NodeCount, second.NodeCount)
	assert.Equal(t, first.EdgeCount, second.EdgeCount)
	nodes, _ := store.CountNodes(ctx)
	assert.Equal(t, second.NodeCount, nodes)
}

func TestPipeline_QueuedRunIsMarkedRunning(t *testing.T) {
	runs := &fakeRuns{}
	svc := NewPipelineService(graphstore.NewMemoryStore(), testConfig(), zerolog.Nop(), WithRunLedger(runs))

	id := uuid.New()
	run, err := svc.Run(context.Background(), RunOptions{RunID: id, Seed: 1, Students: 50})
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Empty(t, runs.created)
	assert.Equal(t, []uuid.UUID{id}, runs.running)
}

func TestPipeline_GenerationErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := graphstore.NewMemoryStore()
	require.NoError(t, store.NewSession(ctx).BulkCreateNodes(ctx, ontology.College, []map[string]any{{"id": "COL-OLD"}}))

	events := &eventLog{}
	runs := &fakeRuns{}
	svc := NewPipelineService(store, testConfig(), zerolog.Nop(), WithProgress(events), WithRunLedger(runs))

	run, err := svc.Run(ctx, RunOptions{Seed: 1, Students: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGeneration)
	assert.Equal(t, model.RunFailed, run.Status)
	assert.NotEmpty(t, run.Error)

	_, ok := store.Node(ontology.College, "COL-OLD")
	assert.True(t, ok, "store must be untouched")
	assert.Empty(t, store.Constraints())
	assert.Equal(t, websocket.EventFailed, events.last().Event)
	require.Len(t, runs.finished, 1)
	assert.Equal(t, model.RunFailed, runs.finished[0].Status)
}

type flakyStore struct {
	*graphstore.MemoryStore
}

func (f flakyStore) NewSession(ctx context.Context) graphstore.Session {
	return flakySession{f.MemoryStore.NewSession(ctx)}
}

type flakySession struct {
	graphstore.Session
}

func (flakySession) BulkCreateEdges(context.Context, *ontology.EdgeType, []model.Edge) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestPipeline_BatchFailureAbortsRun(t *testing.T) {
	ctx := context.Background()
	store := flakyStore{graphstore.NewMemoryStore()}
	cache := &bumper{}
	svc := NewPipelineService(store, testConfig(), zerolog.Nop(), WithCache(cache))

	run, err := svc.Run(ctx, RunOptions{Seed: 3, Students: 100})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBatchWrite)
	assert.Equal(t, model.RunFailed, run.Status)
	assert.Empty(t, cache.generations)

	// Node phase completed and stays in place; no edge made it.
	nodes, _ := store.CountNodes(ctx)
	edges, _ := store.CountEdges(ctx)
	assert.Equal(t, run.NodeCount, nodes)
	assert.Positive(t, nodes)
	assert.Zero(t, edges)
}

type offlineStore struct {
	*graphstore.MemoryStore
}

func (offlineStore) VerifyConnectivity(context.Context) error {
	return apperrors.NewConnectivityError("neo4j", errors.New("dial tcp: connection refused"))
}

func TestPipeline_Unreachable(t *testing.T) {
	svc := NewPipelineService(offlineStore{graphstore.NewMemoryStore()}, testConfig(), zerolog.Nop())
	_, err := svc.Run(context.Background(), RunOptions{Seed: 3, Students: 10})
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)
}
