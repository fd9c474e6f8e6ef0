package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/response"
	"github.com/cbnu/campus-ontology/internal/service"
	"github.com/cbnu/campus-ontology/internal/validator"
)

// GraphQuerier is the read side the graph handler serves from.
type GraphQuerier interface {
	StudentContext(ctx context.Context, studentID string) (*model.StudentContext, error)
	CourseResources(ctx context.Context, courseID string) (*model.CourseResources, error)
	CoursesByDepartment(ctx context.Context, departmentID string) ([]model.TaughtCourse, error)
	StudentsByStatus(ctx context.Context, status string, limit int) ([]model.Record, error)
}

// GraphCounter reports the size of the loaded graph.
type GraphCounter interface {
	CountNodes(ctx context.Context) (int, error)
	CountEdges(ctx context.Context) (int, error)
}

// GraphHandler serves the downstream read patterns over the loaded graph.
type GraphHandler struct {
	query   GraphQuerier
	counter GraphCounter
}

// NewGraphHandler creates a new GraphHandler.
func NewGraphHandler(query GraphQuerier, counter GraphCounter) *GraphHandler {
	return &GraphHandler{query: query, counter: counter}
}

type studentListQuery struct {
	Status string `form:"status" binding:"required,oneof=active graduating"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// StudentContext godoc
// GET /api/v1/graph/students/:id/context
// Returns a student with the courses, books, programs and scholarships
// reachable through their enrollments.
func (h *GraphHandler) StudentContext(c *gin.Context) {
	id, ok := graphID(c)
	if !ok {
		return
	}

	result, err := h.query.StudentContext(c.Request.Context(), id)
	if err != nil {
		response.FailErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CourseResources godoc
// GET /api/v1/graph/courses/:id/resources
func (h *GraphHandler) CourseResources(c *gin.Context) {
	id, ok := graphID(c)
	if !ok {
		return
	}

	result, err := h.query.CourseResources(c.Request.Context(), id)
	if err != nil {
		response.FailErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// DepartmentCourses godoc
// GET /api/v1/graph/departments/:id/courses
// Lists courses offered by the department with the teaching professor.
func (h *GraphHandler) DepartmentCourses(c *gin.Context) {
	id, ok := graphID(c)
	if !ok {
		return
	}

	courses, err := h.query.CoursesByDepartment(c.Request.Context(), id)
	if err != nil {
		response.FailErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListStudents godoc
// GET /api/v1/graph/students?status=graduating&limit=50
func (h *GraphHandler) ListStudents(c *gin.Context) {
	var q studentListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	students, err := h.query.StudentsByStatus(c.Request.Context(), q.Status, q.Limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
			return
		}
		response.FailErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// Stats godoc
// GET /api/v1/graph/stats
func (h *GraphHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	nodes, err := h.counter.CountNodes(ctx)
	if err != nil {
		response.FailErr(c, err)
		return
	}
	edges, err := h.counter.CountEdges(ctx)
	if err != nil {
		response.FailErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nodes": nodes, "edges": edges})
}

// graphID reads and validates the :id path param, failing the request when
// it is not a node key.
func graphID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !validator.IsGraphID(id) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id, true
}
