package graphstore

import (
	"fmt"
	"strings"

	"github.com/cbnu/campus-ontology/internal/ontology"
)

// Label and relationship names come from the closed ontology set, so they
// are safe to splice into query text.

func constraintCypher(label *ontology.Label) string {
	return fmt.Sprintf(
		"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
		label.ConstraintName(), label.Name(), label.Key(),
	)
}

func nodeCypher(label *ontology.Label) string {
	q := fmt.Sprintf("UNWIND $rows AS row\nMERGE (n:%s {%s: row.%s})\nSET n = row",
		label.Name(), label.Key(), label.Key())
	if len(label.ExtraLabels()) > 0 {
		q += "\nSET n:" + strings.Join(label.ExtraLabels(), ":")
	}
	return q
}

func edgeCypher(et *ontology.EdgeType) string {
	return fmt.Sprintf(`UNWIND $rows AS row
MATCH (a:%s {%s: row.from})
MATCH (b:%s {%s: row.to})
CREATE (a)-[r:%s]->(b)
SET r += row.props
RETURN count(r) AS created`,
		et.From().Name(), et.From().Key(),
		et.To().Name(), et.To().Key(),
		et.Name(),
	)
}

const clearCypher = "MATCH (n) DETACH DELETE n"

var studentContextCypher = fmt.Sprintf(`MATCH (s:%s {id: $id})
OPTIONAL MATCH (s)-[:%s]->(c:%s)
OPTIONAL MATCH (c)-[:%s]->(b:%s)
OPTIONAL MATCH (c)-[:%s]->(p:%s)
OPTIONAL MATCH (sc:%s)-[:%s]->(c)
RETURN s,
       collect(DISTINCT c) AS courses,
       collect(DISTINCT b) AS books,
       collect(DISTINCT p) AS programs,
       collect(DISTINCT sc) AS scholarships`,
	ontology.Student.Name(),
	ontology.StudentEnrolledIn.Name(), ontology.Course.Name(),
	ontology.CourseRecommendsBook.Name(), ontology.Book.Name(),
	ontology.CourseRelatedProgram.Name(), ontology.Program.Name(),
	ontology.Scholarship.Name(), ontology.ScholarshipRequiresCourse.Name(),
)

var courseResourcesCypher = fmt.Sprintf(`MATCH (c:%s {id: $id})
OPTIONAL MATCH (c)-[:%s]->(b:%s)
OPTIONAL MATCH (c)-[:%s]->(p:%s)
OPTIONAL MATCH (sc:%s)-[:%s]->(c)
RETURN c,
       collect(DISTINCT b) AS books,
       collect(DISTINCT p) AS programs,
       collect(DISTINCT sc) AS scholarships`,
	ontology.Course.Name(),
	ontology.CourseRecommendsBook.Name(), ontology.Book.Name(),
	ontology.CourseRelatedProgram.Name(), ontology.Program.Name(),
	ontology.Scholarship.Name(), ontology.ScholarshipRequiresCourse.Name(),
)

var departmentCoursesCypher = fmt.Sprintf(`MATCH (c:%s)-[:%s]->(:%s {id: $id})
MATCH (c)-[:%s]->(p:%s)
RETURN c, p
ORDER BY c.id, p.id`,
	ontology.Course.Name(), ontology.CourseOfferedBy.Name(), ontology.Department.Name(),
	ontology.CourseTaughtBy.Name(), ontology.Professor.Name(),
)

var studentsByStatusCypher = fmt.Sprintf(`MATCH (s:%s {status: $status})
RETURN s
ORDER BY s.id
LIMIT $limit`, ontology.Student.Name())

const (
	countNodesCypher = "MATCH (n) RETURN count(n) AS total"
	countEdgesCypher = "MATCH ()-[r]->() RETURN count(r) AS total"
)
