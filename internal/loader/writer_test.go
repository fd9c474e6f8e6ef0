package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
	"github.com/cbnu/campus-ontology/internal/relation"
)

type call struct {
	kind  string
	label string
	size  int
	first string
}

// recorder wraps a MemoryStore and logs every bulk call in order.
type recorder struct {
	*graphstore.MemoryStore

	mu       sync.Mutex
	calls    []call
	sessions int
	failOn   string
	failAt   int
	seen     map[string]int
}

func newRecorder() *recorder {
	return &recorder{MemoryStore: graphstore.NewMemoryStore(), seen: map[string]int{}, failAt: -1}
}

func (r *recorder) NewSession(ctx context.Context) graphstore.Session {
	r.mu.Lock()
	r.sessions++
	r.mu.Unlock()
	return &recSession{Session: r.MemoryStore.NewSession(ctx), rec: r}
}

func (r *recorder) record(c call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.seen[c.label]
	r.seen[c.label]++
	if c.label == r.failOn && idx == r.failAt {
		return errors.New("server unavailable")
	}
	r.calls = append(r.calls, c)
	return nil
}

type recSession struct {
	graphstore.Session
	rec *recorder
}

func (s *recSession) BulkCreateNodes(ctx context.Context, label *ontology.Label, rows []map[string]any) error {
	first, _ := rows[0]["id"].(string)
	if err := s.rec.record(call{"node", label.Name(), len(rows), first}); err != nil {
		return err
	}
	return s.Session.BulkCreateNodes(ctx, label, rows)
}

func (s *recSession) BulkCreateEdges(ctx context.Context, et *ontology.EdgeType, edges []model.Edge) (int, error) {
	if err := s.rec.record(call{"edge", et.String(), len(edges), edges[0].FromID}); err != nil {
		return 0, err
	}
	return s.Session.BulkCreateEdges(ctx, et, edges)
}

func rows(prefix string, n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"id": fmt.Sprintf("%s-%04d", prefix, i)}
	}
	return out
}

func TestChunk_SplitsInOrder(t *testing.T) {
	items := make([]int, 1203)
	for i := range items {
		items[i] = i
	}

	chunks := Chunk(items, 500)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 500)
	assert.Len(t, chunks[2], 203)
	assert.Equal(t, 0, chunks[0][0])
	assert.Equal(t, 500, chunks[1][0])
	assert.Equal(t, 1202, chunks[2][202])
}

func TestChunk_Defaults(t *testing.T) {
	assert.Nil(t, Chunk([]int{}, 500))
	assert.Len(t, Chunk(make([]int, 501), 0), 2)
}

func TestWriteNodes_IssuesOneCallPerChunk(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	w := NewWriter(rec, Options{}, zerolog.Nop())

	chunks, err := w.WriteNodes(ctx, rec.NewSession(ctx), ontology.Book, rows("BOOK", 1203), 500)
	require.NoError(t, err)
	assert.Equal(t, 3, chunks)

	require.Len(t, rec.calls, 3)
	assert.Equal(t, call{"node", "Book", 500, "BOOK-0000"}, rec.calls[0])
	assert.Equal(t, call{"node", "Book", 500, "BOOK-0500"}, rec.calls[1])
	assert.Equal(t, call{"node", "Book", 203, "BOOK-1000"}, rec.calls[2])
}

func TestWriteNodes_EmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	w := NewWriter(rec, Options{}, zerolog.Nop())

	chunks, err := w.WriteNodes(ctx, rec.NewSession(ctx), ontology.Book, nil, 500)
	require.NoError(t, err)
	assert.Zero(t, chunks)
	assert.Empty(t, rec.calls)
}

func TestWriteNodes_FailedChunkAborts(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	rec.failOn, rec.failAt = "Book", 1
	w := NewWriter(rec, Options{}, zerolog.Nop())

	_, err := w.WriteNodes(ctx, rec.NewSession(ctx), ontology.Book, rows("BOOK", 1203), 500)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBatchWrite)

	var bErr *apperrors.BatchWriteError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "Book", bErr.Target)
	assert.Equal(t, 1, bErr.Chunk)
	assert.Equal(t, 500, bErr.Rows)

	// The first chunk stays written; the third is never attempted.
	assert.Len(t, rec.calls, 1)
	n, _ := rec.CountNodes(ctx)
	assert.Equal(t, 500, n)
}

func plan() Plan {
	courses := rows("COURSE", 30)
	profs := rows("PROF", 3)
	edges := make([]model.Edge, len(courses))
	for i, c := range courses {
		edges[i] = model.Edge{FromID: c["id"].(string), ToID: profs[i%len(profs)]["id"].(string)}
	}
	return Plan{
		Nodes: []relation.NodeGroup{
			{Label: ontology.Course, Rows: courses, BatchSize: 7},
			{Label: ontology.Professor, Rows: profs, BatchSize: 2},
			{Label: ontology.Book, Rows: rows("BOOK", 11), BatchSize: 5},
			{Label: ontology.Term},
		},
		Edges: []relation.Group{
			{Type: ontology.CourseTaughtBy, Edges: edges, BatchSize: 8},
			{Type: ontology.CourseHeldInTerm},
		},
	}
}

func TestLoad_NodesBeforeEdges(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()

	var events []Progress
	w := NewWriter(rec, Options{NodeWriters: 3, Progress: func(p Progress) { events = append(events, p) }}, zerolog.Nop())

	sum, err := w.Load(ctx, plan())
	require.NoError(t, err)

	lastNode, firstEdge := -1, len(rec.calls)
	for i, c := range rec.calls {
		if c.kind == "node" {
			lastNode = i
		} else if i < firstEdge {
			firstEdge = i
		}
	}
	assert.Less(t, lastNode, firstEdge)

	assert.Equal(t, 44, sum.Nodes)
	assert.Equal(t, 30, sum.EdgesTried)
	assert.Equal(t, 30, sum.EdgesCreated)
	assert.Zero(t, sum.Dropped)
	assert.Equal(t, 5+2+3+4, sum.Chunks)
	assert.Len(t, events, sum.Chunks)

	// One session per non-empty label plus one for the edge phase.
	assert.Equal(t, 4, rec.sessions)
}

func TestLoad_NodeFailureStopsBeforeEdges(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	rec.failOn, rec.failAt = "Professor", 0
	w := NewWriter(rec, Options{NodeWriters: 1}, zerolog.Nop())

	_, err := w.Load(ctx, plan())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBatchWrite)

	for _, c := range rec.calls {
		assert.Equal(t, "node", c.kind)
	}
	edges, _ := rec.CountEdges(ctx)
	assert.Zero(t, edges)
}

func TestLoad_EdgeFailureAborts(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	rec.failOn, rec.failAt = ontology.CourseTaughtBy.String(), 2
	w := NewWriter(rec, Options{NodeWriters: 2}, zerolog.Nop())

	sum, err := w.Load(ctx, plan())
	var bErr *apperrors.BatchWriteError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, 2, bErr.Chunk)
	assert.Equal(t, 16, sum.EdgesCreated)
}

func TestLoad_CountsDroppedEdges(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	w := NewWriter(rec, Options{}, zerolog.Nop())

	p := plan()
	p.Edges[0].Edges = append(p.Edges[0].Edges, model.Edge{FromID: "COURSE-0000", ToID: "PROF-0999"})

	sum, err := w.Load(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 31, sum.EdgesTried)
	assert.Equal(t, 30, sum.EdgesCreated)
	assert.Equal(t, 1, sum.Dropped)
}
