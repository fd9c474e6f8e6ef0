package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/model"
)

var ErrInvalidStatus = errors.New("unknown student status")

const (
	defaultStudentLimit = 50
	maxStudentLimit     = 500
	// initialGeneration namespaces cache entries written before any load
	// was recorded.
	initialGeneration = "0"
)

// QueryService serves the downstream read patterns. Results are cached in
// Redis under the current graph generation; a finished load bumps the
// generation so stale entries are never read again and expire on their own.
type QueryService struct {
	reader graphstore.Reader
	rdb    *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewQueryService creates a QueryService. A nil rdb disables caching.
func NewQueryService(reader graphstore.Reader, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *QueryService {
	return &QueryService{
		reader: reader,
		rdb:    rdb,
		ttl:    ttl,
		log:    log.With().Str("component", "query_service").Logger(),
	}
}

// BumpGeneration switches reads to a new cache namespace.
func (s *QueryService) BumpGeneration(ctx context.Context, generation string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, config.CacheKey.GraphGenerationKey(), generation, 0).Err()
}

// Generation returns the current cache namespace.
func (s *QueryService) Generation(ctx context.Context) (string, error) {
	if s.rdb == nil {
		return initialGeneration, nil
	}
	gen, err := s.rdb.Get(ctx, config.CacheKey.GraphGenerationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return initialGeneration, nil
	}
	return gen, err
}

func (s *QueryService) StudentContext(ctx context.Context, studentID string) (*model.StudentContext, error) {
	return cached(ctx, s, func(gen string) string {
		return config.CacheKey.StudentContextKey(gen, studentID)
	}, func() (*model.StudentContext, error) {
		return s.reader.StudentContext(ctx, studentID)
	})
}

func (s *QueryService) CourseResources(ctx context.Context, courseID string) (*model.CourseResources, error) {
	return cached(ctx, s, func(gen string) string {
		return config.CacheKey.CourseResourcesKey(gen, courseID)
	}, func() (*model.CourseResources, error) {
		return s.reader.CourseResources(ctx, courseID)
	})
}

func (s *QueryService) CoursesByDepartment(ctx context.Context, departmentID string) ([]model.TaughtCourse, error) {
	return cached(ctx, s, func(gen string) string {
		return config.CacheKey.DepartmentCoursesKey(gen, departmentID)
	}, func() ([]model.TaughtCourse, error) {
		return s.reader.CoursesByDepartment(ctx, departmentID)
	})
}

// StudentsByStatus lists students with the given status, ordered by id.
// It is not cached.
func (s *QueryService) StudentsByStatus(ctx context.Context, status string, limit int) ([]model.Record, error) {
	st := model.StudentStatus(status)
	if st != model.StudentActive && st != model.StudentGraduating {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if limit <= 0 {
		limit = defaultStudentLimit
	}
	limit = min(limit, maxStudentLimit)
	return s.reader.StudentsByStatus(ctx, st, limit)
}

// cached reads key from Redis or fills it from fetch. Cache failures only
// degrade to a direct read.
func cached[T any](ctx context.Context, s *QueryService, key func(gen string) string, fetch func() (T, error)) (T, error) {
	if s.rdb == nil {
		return fetch()
	}

	gen, err := s.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Cache generation lookup failed")
		return fetch()
	}
	k := key(gen)

	if raw, err := s.rdb.Get(ctx, k).Bytes(); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		s.log.Warn().Str("key", k).Msg("Discarding undecodable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("key", k).Msg("Cache read failed")
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := s.rdb.Set(ctx, k, raw, s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", k).Msg("Cache write failed")
		}
	}
	return v, nil
}
