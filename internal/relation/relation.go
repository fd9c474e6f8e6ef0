// Package relation turns a generated dataset into node rows and edge tuples.
// It reads only fields already set on the entities and never touches a store.
package relation

import (
	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

// Default chunk sizes.
const (
	DefaultBatchSize = 500
	LargeBatchSize   = 1000
)

// BatchSizes selects the chunk size for regular and large groups.
type BatchSizes struct {
	Default int
	Large   int
}

func (b BatchSizes) pick(large bool) int {
	if large {
		if b.Large > 0 {
			return b.Large
		}
		return LargeBatchSize
	}
	if b.Default > 0 {
		return b.Default
	}
	return DefaultBatchSize
}

// NodeGroup holds the rows of one label.
type NodeGroup struct {
	Label     *ontology.Label
	Rows      []map[string]any
	BatchSize int
}

// Group holds the edges of one edge type.
type Group struct {
	Type      *ontology.EdgeType
	Edges     []model.Edge
	BatchSize int
}

// Nodes builds one group per label in dependency order.
func Nodes(ds *model.Dataset, sizes BatchSizes) []NodeGroup {
	group := func(label *ontology.Label, items []model.Node, large bool) NodeGroup {
		rows := make([]map[string]any, len(items))
		for i, n := range items {
			rows[i] = label.Project(n.Properties())
		}
		return NodeGroup{Label: label, Rows: rows, BatchSize: sizes.pick(large)}
	}
	return []NodeGroup{
		group(ontology.College, model.Nodes(ds.Colleges), false),
		group(ontology.Department, model.Nodes(ds.Departments), false),
		group(ontology.MajorTrack, model.Nodes(ds.MajorTracks), false),
		group(ontology.Term, model.Nodes(ds.Terms), false),
		group(ontology.AcademicEvent, model.Nodes(ds.Events), false),
		group(ontology.Book, model.Nodes(ds.Books), false),
		group(ontology.Program, model.Nodes(ds.Programs), false),
		group(ontology.Professor, model.Nodes(ds.Professors), false),
		group(ontology.Course, model.Nodes(ds.Courses), false),
		group(ontology.Scholarship, model.Nodes(ds.Scholarships), false),
		group(ontology.Student, model.Nodes(ds.Students), true),
	}
}

type builder struct {
	groups []Group
	sizes  BatchSizes
}

func (b *builder) add(et *ontology.EdgeType, large bool, fill func(emit func(from, to string, props map[string]any))) {
	var edges []model.Edge
	fill(func(from, to string, props map[string]any) {
		edges = append(edges, model.Edge{FromID: from, ToID: to, Props: props})
	})
	b.groups = append(b.groups, Group{Type: et, Edges: edges, BatchSize: b.sizes.pick(large)})
}

// Derive emits one edge per embedded reference and one edge per id in an
// id set. Groups come back in the fixed write order of ontology.EdgeTypes.
func Derive(ds *model.Dataset, sizes BatchSizes) []Group {
	b := &builder{sizes: sizes}

	b.add(ontology.DepartmentInCollege, false, func(emit func(string, string, map[string]any)) {
		for _, d := range ds.Departments {
			emit(d.ID, d.CollegeID, nil)
		}
	})
	b.add(ontology.TrackInDepartment, false, func(emit func(string, string, map[string]any)) {
		for _, t := range ds.MajorTracks {
			emit(t.ID, t.DepartmentID, nil)
		}
	})
	b.add(ontology.ProfessorMemberOf, false, func(emit func(string, string, map[string]any)) {
		for _, p := range ds.Professors {
			emit(p.ID, p.DepartmentID, nil)
		}
	})
	b.add(ontology.CourseOfferedBy, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			emit(c.ID, c.DepartmentID, nil)
		}
	})
	b.add(ontology.EventScheduledIn, false, func(emit func(string, string, map[string]any)) {
		for _, e := range ds.Events {
			emit(e.ID, e.TermID, nil)
		}
	})

	b.add(ontology.ProgramForMajor, false, func(emit func(string, string, map[string]any)) {
		for _, p := range ds.Programs {
			for _, id := range p.TrackIDs {
				emit(p.ID, id, nil)
			}
		}
	})
	b.add(ontology.ProgramForYear, false, func(emit func(string, string, map[string]any)) {
		for _, p := range ds.Programs {
			for _, id := range p.EventIDs {
				emit(p.ID, id, map[string]any{"targetYear": int64(p.MinYear)})
			}
		}
	})

	b.add(ontology.CourseTaughtBy, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			emit(c.ID, c.ProfessorID, nil)
		}
	})
	b.add(ontology.CourseHeldInTerm, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			emit(c.ID, c.TermID, nil)
		}
	})
	b.add(ontology.CourseRecommendsBook, true, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			for _, id := range c.BookIDs {
				emit(c.ID, id, nil)
			}
		}
	})
	b.add(ontology.CourseRelatedProgram, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			for _, id := range c.ProgramIDs {
				emit(c.ID, id, nil)
			}
		}
	})
	b.add(ontology.CoursePrerequisite, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			if c.PrerequisiteID != "" {
				emit(c.ID, c.PrerequisiteID, nil)
			}
		}
	})

	b.add(ontology.ScholarshipRequiresProgram, false, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Scholarships {
			for _, id := range s.ProgramIDs {
				emit(s.ID, id, nil)
			}
		}
	})
	b.add(ontology.ScholarshipRequiresCourse, false, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Scholarships {
			for _, id := range s.CourseIDs {
				emit(s.ID, id, nil)
			}
		}
	})
	b.add(ontology.ScholarshipForMajor, false, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Scholarships {
			for _, id := range s.TrackIDs {
				emit(s.ID, id, nil)
			}
		}
	})
	b.add(ontology.ScholarshipInTerm, false, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Scholarships {
			for _, id := range s.TermIDs {
				emit(s.ID, id, nil)
			}
		}
	})

	b.add(ontology.StudentMajorIn, true, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Students {
			emit(s.ID, s.TrackID, nil)
		}
	})
	b.add(ontology.StudentEnrolledIn, true, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Students {
			for _, id := range s.CourseIDs {
				emit(s.ID, id, nil)
			}
		}
	})
	b.add(ontology.StudentParticipatedIn, true, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Students {
			for _, p := range s.Programs {
				emit(s.ID, p.ProgramID, map[string]any{"hours": int64(p.Hours)})
			}
		}
	})
	b.add(ontology.StudentReceivedScholarship, false, func(emit func(string, string, map[string]any)) {
		for _, s := range ds.Students {
			if s.Scholarship != nil {
				emit(s.ID, s.Scholarship.ScholarshipID, map[string]any{"term": s.Scholarship.Term})
			}
		}
	})

	b.add(ontology.EventRelatedCourse, false, func(emit func(string, string, map[string]any)) {
		for _, c := range ds.Courses {
			for _, id := range c.EventIDs {
				emit(id, c.ID, nil)
			}
		}
	})

	return b.groups
}

// Verify checks that node keys are unique per label and that every edge
// endpoint exists among the nodes of the same run.
func Verify(nodes []NodeGroup, edges []Group) error {
	index := make(map[string]map[string]struct{}, len(nodes))
	for _, g := range nodes {
		keys := make(map[string]struct{}, len(g.Rows))
		for _, row := range g.Rows {
			k, _ := row[g.Label.Key()].(string)
			if k == "" {
				return apperrors.NewGenerationError(g.Label.Name(), "row without %s", g.Label.Key())
			}
			if _, dup := keys[k]; dup {
				return apperrors.NewGenerationError(g.Label.Name(), "duplicate key %s", k)
			}
			keys[k] = struct{}{}
		}
		index[g.Label.Name()] = keys
	}

	for _, g := range edges {
		from, to := index[g.Type.From().Name()], index[g.Type.To().Name()]
		for _, e := range g.Edges {
			if _, ok := from[e.FromID]; !ok {
				return apperrors.NewGenerationError(g.Type.String(), "dangling source %s", e.FromID)
			}
			if _, ok := to[e.ToID]; !ok {
				return apperrors.NewGenerationError(g.Type.String(), "dangling target %s (from %s)", e.ToID, e.FromID)
			}
		}
	}
	return nil
}

// Count returns the number of node rows and edges across groups.
func Count(nodes []NodeGroup, edges []Group) (nodeCount, edgeCount int) {
	for _, g := range nodes {
		nodeCount += len(g.Rows)
	}
	for _, g := range edges {
		edgeCount += len(g.Edges)
	}
	return nodeCount, edgeCount
}
