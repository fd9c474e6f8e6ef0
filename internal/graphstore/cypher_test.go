package graphstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbnu/campus-ontology/internal/ontology"
)

func TestConstraintCypher(t *testing.T) {
	assert.Equal(t,
		"CREATE CONSTRAINT program_id_cons IF NOT EXISTS FOR (n:NonCurricularProgram) REQUIRE n.id IS UNIQUE",
		constraintCypher(ontology.Program),
	)
}

func TestNodeCypher(t *testing.T) {
	q := nodeCypher(ontology.MajorTrack)
	assert.Contains(t, q, "MERGE (n:MajorTrack {id: row.id})")
	assert.Contains(t, q, "SET n = row")
	assert.Contains(t, q, "SET n:AcademicInfo")

	assert.NotContains(t, nodeCypher(ontology.College), "SET n:")
}

func TestEdgeCypher(t *testing.T) {
	q := edgeCypher(ontology.StudentParticipatedIn)
	assert.Contains(t, q, "MATCH (a:Student {id: row.from})")
	assert.Contains(t, q, "MATCH (b:NonCurricularProgram {id: row.to})")
	assert.Contains(t, q, "CREATE (a)-[r:PARTICIPATED_IN]->(b)")
	assert.Contains(t, q, "RETURN count(r) AS created")
}
