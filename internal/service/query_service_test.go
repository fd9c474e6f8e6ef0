package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/model"
)

// countingReader counts how often the store is actually hit.
type countingReader struct {
	graphstore.Reader
	calls int
}

func (r *countingReader) StudentContext(ctx context.Context, id string) (*model.StudentContext, error) {
	r.calls++
	return r.Reader.StudentContext(ctx, id)
}

func setupQuery(t *testing.T) (*QueryService, *countingReader, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := graphstore.NewMemoryStore()
	svc := NewPipelineService(store, testConfig(), zerolog.Nop())
	_, err := svc.Run(context.Background(), RunOptions{Seed: 2024, Students: 100})
	require.NoError(t, err)

	reader := &countingReader{Reader: store}
	return NewQueryService(reader, rdb, time.Minute, zerolog.Nop()), reader, mr
}

func TestQueryService_CachesUnderGeneration(t *testing.T) {
	ctx := context.Background()
	q, reader, mr := setupQuery(t)

	first, err := q.StudentContext(ctx, "STD-00000")
	require.NoError(t, err)
	second, err := q.StudentContext(ctx, "STD-00000")
	require.NoError(t, err)

	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, first.Student.ID(), second.Student.ID())
	assert.Len(t, second.Courses, len(first.Courses))
	assert.True(t, mr.Exists(config.CacheKey.StudentContextKey(initialGeneration, "STD-00000")))

	require.NoError(t, q.BumpGeneration(ctx, "run-2"))
	_, err = q.StudentContext(ctx, "STD-00000")
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
	assert.True(t, mr.Exists(config.CacheKey.StudentContextKey("run-2", "STD-00000")))
}

func TestQueryService_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	q, reader, mr := setupQuery(t)

	_, err := q.StudentContext(ctx, "STD-99999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, mr.Exists(config.CacheKey.StudentContextKey(initialGeneration, "STD-99999")))

	_, _ = q.StudentContext(ctx, "STD-99999")
	assert.Equal(t, 2, reader.calls)
}

func TestQueryService_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	q, reader, mr := setupQuery(t)
	mr.Close()

	got, err := q.StudentContext(ctx, "STD-00001")
	require.NoError(t, err)
	assert.Equal(t, "STD-00001", got.Student.ID())
	assert.Equal(t, 1, reader.calls)
}

func TestQueryService_StudentsByStatus(t *testing.T) {
	ctx := context.Background()
	q, _, _ := setupQuery(t)

	rows, err := q.StudentsByStatus(ctx, "active", 5)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	for i, r := range rows {
		assert.Equal(t, "active", r.String("status"))
		if i > 0 {
			assert.Less(t, rows[i-1].ID(), r.ID())
		}
	}

	_, err = q.StudentsByStatus(ctx, "expelled", 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestQueryService_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	store := graphstore.NewMemoryStore()
	q := NewQueryService(store, nil, time.Minute, zerolog.Nop())

	gen, err := q.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, initialGeneration, gen)
	require.NoError(t, q.BumpGeneration(ctx, "x"))

	_, err = q.CourseResources(ctx, "COURSE-0000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
