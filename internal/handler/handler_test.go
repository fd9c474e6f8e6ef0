package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/response"
	"github.com/cbnu/campus-ontology/internal/service"
	"github.com/cbnu/campus-ontology/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// loadedGraph runs the pipeline once against an in-memory store.
func loadedGraph(t *testing.T) *graphstore.MemoryStore {
	t.Helper()
	store := graphstore.NewMemoryStore()
	cfg := &config.Config{BatchSize: 500, LargeBatchSize: 1000, NodeWriters: 2, StudentCount: 80}
	_, err := service.NewPipelineService(store, cfg, zerolog.Nop()).Run(context.Background(), service.RunOptions{Seed: 11})
	require.NoError(t, err)
	return store
}

func graphRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := loadedGraph(t)
	h := NewGraphHandler(service.NewQueryService(store, nil, time.Minute, zerolog.Nop()), store)

	r := gin.New()
	r.GET("/stats", h.Stats)
	r.GET("/students", h.ListStudents)
	r.GET("/students/:id/context", h.StudentContext)
	r.GET("/courses/:id/resources", h.CourseResources)
	r.GET("/departments/:id/courses", h.DepartmentCourses)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGraphHandler_StudentContext(t *testing.T) {
	r := graphRouter(t)

	w := get(r, "/students/STD-00003/context")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Student map[string]any   `json:"student"`
		Courses []map[string]any `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &body))
	assert.Equal(t, "STD-00003", body.Student["id"])
	assert.NotEmpty(t, body.Courses)

	w = get(r, "/students/STD-99999/context")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrNotFound, decode(t, w).Error.Code)

	w = get(r, "/students/not%20an%20id/context")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidID, decode(t, w).Error.Code)
}

func TestGraphHandler_DepartmentCourses(t *testing.T) {
	r := graphRouter(t)

	w := get(r, "/departments/DEP-CSE/courses")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Courses []struct {
			Course    map[string]any `json:"course"`
			Professor map[string]any `json:"professor"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &body))
	require.NotEmpty(t, body.Courses)
	for _, tc := range body.Courses {
		assert.Equal(t, "DEP-CSE", tc.Professor["departmentId"])
	}
}

func TestGraphHandler_ListStudentsValidatesQuery(t *testing.T) {
	r := graphRouter(t)

	w := get(r, "/students?status=graduating&limit=3")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/students?status=expelled")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, response.ErrValidation, env.Error.Code)
	assert.Contains(t, env.Error.Fields, "status")

	w = get(r, "/students?status=active&limit=9000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGraphHandler_Stats(t *testing.T) {
	r := graphRouter(t)

	w := get(r, "/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct{ Nodes, Edges int }
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &body))
	assert.Positive(t, body.Nodes)
	assert.Positive(t, body.Edges)
}

type downGraph struct{}

func (downGraph) VerifyConnectivity(context.Context) error {
	return apperrors.NewConnectivityError("neo4j", fmt.Errorf("dial tcp: refused"))
}

func TestSystemHandler_Health(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	_, err := mr.RPush(config.WorkerKey.ReloadJobsQueue, "{}")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/up", NewSystemHandler(graphstore.NewMemoryStore(), rdb, zerolog.Nop()).Health)
	r.GET("/down", NewSystemHandler(downGraph{}, rdb, zerolog.Nop()).Health)

	w := get(r, "/up")
	require.Equal(t, http.StatusOK, w.Code)
	var report healthReport
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, int64(1), report.QueueReloadJobs)

	w = get(r, "/down")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &report))
	assert.Equal(t, "unreachable", report.Checks["graph"])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2m 5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h 0m 1s", formatDuration(time.Hour+time.Second))
	assert.Equal(t, "1d 2h 0m 0s", formatDuration(26*time.Hour))
}
