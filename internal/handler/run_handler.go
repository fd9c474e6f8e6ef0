package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/response"
	"github.com/cbnu/campus-ontology/internal/service"
	"github.com/cbnu/campus-ontology/internal/validator"
)

// RunHandler handles reload requests and the run ledger.
type RunHandler struct {
	runService *service.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService *service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// EnqueueRun godoc
// POST /api/v1/admin/runs
// Queues a full clear-and-reload. Progress is streamed on the run's websocket.
func (h *RunHandler) EnqueueRun(c *gin.Context) {
	var req model.ReloadRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	run, err := h.runService.Enqueue(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"run": run})
}

// ListRuns godoc
// GET /api/v1/admin/runs?limit=20
func (h *RunHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.runService.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"runs": runs})
}

// GetRun godoc
// GET /api/v1/admin/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	run, err := h.runService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"run": run})
}

func (h *RunHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLedgerDisabled):
		response.Fail(c, http.StatusNotImplemented, response.ErrLedgerDisabled)
	case errors.Is(err, service.ErrQueueUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrQueueUnavailable)
	case errors.Is(err, apperrors.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
