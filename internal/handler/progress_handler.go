package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/response"
	ws "github.com/cbnu/campus-ontology/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// RunLookup reads a run from the ledger.
type RunLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*model.LoadRun, error)
}

// ProgressHandler streams load run progress over WebSocket.
type ProgressHandler struct {
	rdb      *redis.Client
	runs     RunLookup
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewProgressHandler creates a new ProgressHandler. runs may be nil when the
// ledger is disabled; the stream then only relays live events.
func NewProgressHandler(rdb *redis.Client, runs RunLookup, log zerolog.Logger, allowedOrigins []string) *ProgressHandler {
	return &ProgressHandler{
		rdb:      rdb,
		runs:     runs,
		log:      log.With().Str("component", "progress_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// RunProgressStream godoc
// WS /ws/v1/admin/runs/:id/progress?token=...
// Relays the run's progress events until it succeeds or fails.
func (h *ProgressHandler) RunProgressStream(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	wsLog := h.log.With().Str("run_id", runID.String()).Logger()

	// Subscribe before looking at the ledger so a run finishing in between
	// is still seen.
	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.RunProgressChannel(runID.String()))
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		wsLog.Error().Err(err).Msg("Progress subscribe failed")
		ws.WriteError(conn, "progress stream unavailable")
		return
	}

	if done := h.sendSnapshot(ctx, conn, runID, wsLog); done {
		ws.Close(conn, "run finished")
		return
	}

	pings := make(chan struct{}, 1)
	go h.readLoop(conn, pings, cancel, wsLog)

	wsLog.Info().Msg("Admin attached to run progress")
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Progress stream closed")
			return

		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}
			// Forward raw JSON directly; only peek at the event kind.
			if err := ws.WriteRaw(conn, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Progress write failed")
				return
			}
			var ev ws.ProgressEvent
			if json.Unmarshal([]byte(msg.Payload), &ev) == nil && ev.Terminal() {
				ws.Close(conn, "run finished")
				return
			}
		}
	}
}

// sendSnapshot reports the run's ledger state. It returns true when the run
// has already finished and nothing more will be published.
func (h *ProgressHandler) sendSnapshot(ctx context.Context, conn *websocket.Conn, runID uuid.UUID, log zerolog.Logger) bool {
	if h.runs == nil {
		return false
	}
	run, err := h.runs.Get(ctx, runID)
	if err != nil {
		log.Debug().Err(err).Msg("No ledger entry for streamed run")
		return false
	}

	ev := ws.ProgressEvent{
		RunID: run.ID.String(),
		Nodes: run.NodeCount,
		Edges: run.EdgeCount,
		Drops: run.DroppedEdges,
		Error: run.Error,
		At:    run.StartedAt,
	}
	switch run.Status {
	case model.RunSucceeded:
		ev.Event = ws.EventSucceeded
	case model.RunFailed:
		ev.Event = ws.EventFailed
	default:
		ev.Event = ws.EventQueued
	}
	if run.FinishedAt != nil {
		ev.At = *run.FinishedAt
	}
	if err := ws.WriteTyped(conn, ev); err != nil {
		return true
	}
	return ev.Terminal()
}

// readLoop answers client pings and cancels the stream when the client goes
// away. It is the only reader of conn.
func (h *ProgressHandler) readLoop(conn *websocket.Conn, pings chan<- struct{}, cancel context.CancelFunc, log zerolog.Logger) {
	defer cancel()
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		switch msg.Action {
		case ws.ActionPing:
			select {
			case pings <- struct{}{}:
			default:
			}
		default:
			log.Debug().Str("action", string(msg.Action)).Msg("Ignoring unknown action")
		}
	}
}
