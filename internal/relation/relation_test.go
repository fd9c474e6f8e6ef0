package relation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/generator"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

func dataset(t *testing.T, seed int64) *model.Dataset {
	t.Helper()
	ds, err := generator.New(seed, generator.Options{Students: 300}, zerolog.Nop()).Generate(context.Background())
	require.NoError(t, err)
	return ds
}

func TestDerive_ReferentialIntegrity(t *testing.T) {
	ds := dataset(t, 2024)
	nodes := Nodes(ds, BatchSizes{})
	edges := Derive(ds, BatchSizes{})

	require.NoError(t, Verify(nodes, edges))
}

func TestDerive_FollowsEdgeTypeOrder(t *testing.T) {
	edges := Derive(dataset(t, 2024), BatchSizes{})
	types := ontology.EdgeTypes()

	require.Len(t, edges, len(types))
	for i, g := range edges {
		assert.Same(t, types[i], g.Type)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	a := Derive(dataset(t, 11), BatchSizes{})
	b := Derive(dataset(t, 11), BatchSizes{})
	assert.Equal(t, a, b)
}

func TestDerive_OneEdgePerReference(t *testing.T) {
	ds := dataset(t, 2024)
	edges := Derive(ds, BatchSizes{})

	byType := make(map[*ontology.EdgeType][]model.Edge)
	for _, g := range edges {
		byType[g.Type] = g.Edges
	}

	assert.Len(t, byType[ontology.CourseTaughtBy], len(ds.Courses))
	assert.Len(t, byType[ontology.CourseHeldInTerm], len(ds.Courses))
	assert.Len(t, byType[ontology.StudentMajorIn], len(ds.Students))

	enrolled := 0
	for _, s := range ds.Students {
		enrolled += len(s.CourseIDs)
	}
	assert.Len(t, byType[ontology.StudentEnrolledIn], enrolled)

	for _, e := range byType[ontology.StudentParticipatedIn] {
		assert.Contains(t, e.Props, "hours")
	}
	for _, e := range byType[ontology.ProgramForYear] {
		assert.Contains(t, e.Props, "targetYear")
	}
}

func TestDerive_BatchSizes(t *testing.T) {
	ds := dataset(t, 2024)

	for _, g := range Derive(ds, BatchSizes{Default: 200, Large: 900}) {
		switch g.Type {
		case ontology.StudentMajorIn, ontology.StudentEnrolledIn,
			ontology.StudentParticipatedIn, ontology.CourseRecommendsBook:
			assert.Equal(t, 900, g.BatchSize, g.Type.String())
		default:
			assert.Equal(t, 200, g.BatchSize, g.Type.String())
		}
	}

	for _, g := range Nodes(ds, BatchSizes{}) {
		if g.Label == ontology.Student {
			assert.Equal(t, LargeBatchSize, g.BatchSize)
		} else {
			assert.Equal(t, DefaultBatchSize, g.BatchSize)
		}
	}
}

func TestNodes_ProjectDeclaredProperties(t *testing.T) {
	ds := dataset(t, 2024)
	for _, g := range Nodes(ds, BatchSizes{}) {
		for _, row := range g.Rows {
			for k := range row {
				assert.Contains(t, g.Label.Properties(), k, g.Label.Name())
			}
		}
	}
}

func TestVerify_DanglingEdge(t *testing.T) {
	ds := dataset(t, 2024)
	nodes := Nodes(ds, BatchSizes{})
	edges := []Group{{
		Type:  ontology.CourseTaughtBy,
		Edges: []model.Edge{{FromID: ds.Courses[0].ID, ToID: "PROF-999"}},
	}}

	err := Verify(nodes, edges)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGeneration)
	assert.Contains(t, err.Error(), "PROF-999")
}

func TestVerify_DuplicateKey(t *testing.T) {
	nodes := []NodeGroup{{
		Label: ontology.College,
		Rows:  []map[string]any{{"id": "COL-ENG"}, {"id": "COL-ENG"}},
	}}
	assert.ErrorIs(t, Verify(nodes, nil), apperrors.ErrGeneration)
}
