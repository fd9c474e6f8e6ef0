package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/response"
)

const healthCheckTimeout = 3 * time.Second

// ConnectivityChecker is satisfied by the graph store client.
type ConnectivityChecker interface {
	VerifyConnectivity(ctx context.Context) error
}

// SystemHandler reports process health and backend reachability.
type SystemHandler struct {
	graph     ConnectivityChecker
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(graph ConnectivityChecker, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		graph:     graph,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthReport struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
	Timestamp int64             `json:"timestamp"`

	// Go Application
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	NumGC      uint32 `json:"num_gc"`
	GoVersion  string `json:"go_version"`

	// Worker Queues
	QueueReloadJobs int64 `json:"queue_reload_jobs"`
}

// Health godoc
// GET /health
// Returns 200 when the graph store and Redis answer, 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{
		Status:    "ok",
		Uptime:    formatDuration(time.Since(h.startTime)),
		Checks:    map[string]string{"graph": "ok", "redis": "ok"},
		Timestamp: time.Now().Unix(),
		GoVersion: runtime.Version(),
	}

	if err := h.graph.VerifyConnectivity(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Graph store health check failed")
		report.Checks["graph"] = "unreachable"
		report.Status = "degraded"
	}

	depth, err := h.rdb.LLen(ctx, config.WorkerKey.ReloadJobsQueue).Result()
	if err != nil {
		h.log.Warn().Err(err).Msg("Redis health check failed")
		report.Checks["redis"] = "unreachable"
		report.Status = "degraded"
	}
	report.QueueReloadJobs = depth

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	report.Goroutines = runtime.NumGoroutine()
	report.HeapAlloc = ms.HeapAlloc
	report.NumGC = ms.NumGC

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
