package ontology

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels_AreClosedAndKeyed(t *testing.T) {
	names := map[string]bool{}
	constraints := map[string]bool{}
	for _, l := range Labels() {
		assert.False(t, names[l.Name()], "duplicate label %s", l)
		assert.False(t, constraints[l.ConstraintName()], "duplicate constraint %s", l.ConstraintName())
		names[l.Name()] = true
		constraints[l.ConstraintName()] = true

		assert.Contains(t, l.Properties(), l.Key(), "%s key must be a property", l)
	}
	assert.Len(t, names, 11)
}

func TestLabels_ReturnsCopy(t *testing.T) {
	ls := Labels()
	ls[0] = nil
	assert.Same(t, College, Labels()[0])
}

func TestLabelByName(t *testing.T) {
	l, ok := LabelByName("NonCurricularProgram")
	require.True(t, ok)
	assert.Same(t, Program, l)
	assert.Equal(t, "program_id_cons", l.ConstraintName())

	_, ok = LabelByName("Exam")
	assert.False(t, ok)
}

func TestLabel_ProjectKeepsDeclaredProperties(t *testing.T) {
	row := Book.Project(map[string]any{"id": "BOOK-001", "title": "Go", "internal": true})
	assert.Equal(t, "BOOK-001", row["id"])
	assert.Equal(t, "Go", row["title"])
	assert.NotContains(t, row, "internal")
}

func TestEdgeTypes_EndpointsAreKnownLabels(t *testing.T) {
	labels := Labels()
	seen := map[string]bool{}
	for _, et := range EdgeTypes() {
		assert.True(t, slices.Contains(labels, et.From()), "%s: unknown source", et)
		assert.True(t, slices.Contains(labels, et.To()), "%s: unknown target", et)
		assert.False(t, seen[et.String()], "duplicate edge type %s", et)
		seen[et.String()] = true
	}
}

func TestEdgeType_String(t *testing.T) {
	assert.Equal(t, "Course-TAUGHT_BY->Professor", CourseTaughtBy.String())
	assert.Equal(t, []string{"targetYear"}, ProgramForYear.Properties())
}
