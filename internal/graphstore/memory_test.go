package graphstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

func seed(t *testing.T, s Session) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Department, []map[string]any{
		{"id": "DEP-CSE", "name": "Computer Science and Engineering"},
		{"id": "DEP-MAT", "name": "Mathematics"},
	}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Professor, []map[string]any{
		{"id": "PROF-001", "departmentId": "DEP-CSE"},
	}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Course, []map[string]any{
		{"id": "COURSE-0001", "departmentId": "DEP-CSE"},
		{"id": "COURSE-0000", "departmentId": "DEP-CSE"},
	}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Book, []map[string]any{
		{"id": "BOOK-0001"}, {"id": "BOOK-0002"},
	}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Scholarship, []map[string]any{
		{"id": "SCH-000"},
	}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Student, []map[string]any{
		{"id": "STD-00001", "status": "graduating", "creditsEarned": int64(150)},
		{"id": "STD-00000", "status": "active", "creditsEarned": int64(40)},
	}))

	edges := []struct {
		et    *ontology.EdgeType
		edges []model.Edge
	}{
		{ontology.CourseOfferedBy, []model.Edge{{FromID: "COURSE-0000", ToID: "DEP-CSE"}, {FromID: "COURSE-0001", ToID: "DEP-CSE"}}},
		{ontology.CourseTaughtBy, []model.Edge{{FromID: "COURSE-0000", ToID: "PROF-001"}, {FromID: "COURSE-0001", ToID: "PROF-001"}}},
		{ontology.CourseRecommendsBook, []model.Edge{
			{FromID: "COURSE-0000", ToID: "BOOK-0002"},
			{FromID: "COURSE-0000", ToID: "BOOK-0001"},
			{FromID: "COURSE-0001", ToID: "BOOK-0001"},
		}},
		{ontology.ScholarshipRequiresCourse, []model.Edge{{FromID: "SCH-000", ToID: "COURSE-0001"}}},
		{ontology.StudentEnrolledIn, []model.Edge{
			{FromID: "STD-00000", ToID: "COURSE-0000"},
			{FromID: "STD-00000", ToID: "COURSE-0001"},
		}},
	}
	for _, e := range edges {
		n, err := s.BulkCreateEdges(ctx, e.et, e.edges)
		require.NoError(t, err)
		require.Equal(t, len(e.edges), n, e.et.String())
	}
}

func TestMemoryStore_MissingEndpointIsSilentlySkipped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := store.NewSession(ctx)

	// Edges before their nodes: nothing is created and nothing fails.
	n, err := s.BulkCreateEdges(ctx, ontology.CourseTaughtBy, []model.Edge{{FromID: "COURSE-0000", ToID: "PROF-001"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Course, []map[string]any{{"id": "COURSE-0000"}}))
	n, err = s.BulkCreateEdges(ctx, ontology.CourseTaughtBy, []model.Edge{{FromID: "COURSE-0000", ToID: "PROF-001"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := store.CountEdges(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStore_MergeOverwritesProperties(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := store.NewSession(ctx)

	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Book, []map[string]any{{"id": "BOOK-0001", "title": "old", "topic": "AI"}}))
	require.NoError(t, s.BulkCreateNodes(ctx, ontology.Book, []map[string]any{{"id": "BOOK-0001", "title": "new"}}))

	node, ok := store.Node(ontology.Book, "BOOK-0001")
	require.True(t, ok)
	assert.Equal(t, "new", node.String("title"))
	assert.NotContains(t, node, "topic")

	count, err := store.CountNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryStore_RowWithoutKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore().NewSession(ctx)
	assert.Error(t, s.BulkCreateNodes(ctx, ontology.Book, []map[string]any{{"title": "orphan"}}))
}

func TestMemoryStore_ConstraintsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := store.NewSession(ctx)

	require.NoError(t, s.DeclareUniqueConstraint(ctx, ontology.Student))
	before := store.Constraints()
	require.NoError(t, s.DeclareUniqueConstraint(ctx, ontology.Student))
	assert.Equal(t, before, store.Constraints())
	assert.Equal(t, map[string]string{"student_id_cons": "Student"}, before)
}

func TestMemoryStore_ClearAllKeepsConstraints(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := store.NewSession(ctx)
	require.NoError(t, s.DeclareUniqueConstraint(ctx, ontology.Course))
	seed(t, s)

	require.NoError(t, s.ClearAll(ctx))

	nodes, _ := store.CountNodes(ctx)
	edges, _ := store.CountEdges(ctx)
	assert.Zero(t, nodes)
	assert.Zero(t, edges)
	assert.Len(t, store.Constraints(), 1)
}

func TestMemoryStore_ClosedSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore().NewSession(ctx)
	require.NoError(t, s.Close(ctx))
	assert.ErrorIs(t, s.ClearAll(ctx), ErrSessionClosed)
}

func TestMemoryStore_StudentContext(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store.NewSession(ctx))

	got, err := store.StudentContext(ctx, "STD-00000")
	require.NoError(t, err)

	assert.Equal(t, "STD-00000", got.Student.ID())
	require.Len(t, got.Courses, 2)
	assert.Equal(t, "COURSE-0000", got.Courses[0].ID())
	require.Len(t, got.Books, 2, "books are distinct")
	assert.Equal(t, "BOOK-0001", got.Books[0].ID())
	require.Len(t, got.Scholarships, 1)
	assert.Empty(t, got.Programs)

	_, err = store.StudentContext(ctx, "STD-99999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryStore_CourseResources(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store.NewSession(ctx))

	got, err := store.CourseResources(ctx, "COURSE-0001")
	require.NoError(t, err)
	assert.Equal(t, "COURSE-0001", got.Course.ID())
	assert.Len(t, got.Books, 1)
	assert.Len(t, got.Scholarships, 1)

	_, err = store.CourseResources(ctx, "COURSE-9999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryStore_CoursesByDepartment(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store.NewSession(ctx))

	rows, err := store.CoursesByDepartment(ctx, "DEP-CSE")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "COURSE-0000", rows[0].Course.ID())
	assert.Equal(t, "DEP-CSE", rows[0].Professor.String("departmentId"))

	rows, err = store.CoursesByDepartment(ctx, "DEP-MAT")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_StudentsByStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store.NewSession(ctx))

	rows, err := store.StudentsByStatus(ctx, model.StudentGraduating, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 150, rows[0].Int("creditsEarned"))

	rows, err = store.StudentsByStatus(ctx, model.StudentActive, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
