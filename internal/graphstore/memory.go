package graphstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

var ErrSessionClosed = errors.New("session closed")

type nodeKey struct {
	label string
	key   string
}

// adjacency is keyed by the label on the indexed side and the relationship
// name.
type adjacency struct {
	label string
	rel   string
}

type memEdge struct {
	from  nodeKey
	to    nodeKey
	props map[string]any
}

// MemoryStore is an in-process Store backed by indexed adjacency: nodes by
// (label, key), outgoing edges by (from label, type) and incoming edges by
// (to label, type). It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	nodes       map[nodeKey]map[string]any
	out         map[adjacency]map[string][]*memEdge
	in          map[adjacency]map[string][]*memEdge
	edges       int
	constraints map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{constraints: make(map[string]string)}
	m.reset()
	return m
}

func (m *MemoryStore) reset() {
	m.nodes = make(map[nodeKey]map[string]any)
	m.out = make(map[adjacency]map[string][]*memEdge)
	m.in = make(map[adjacency]map[string][]*memEdge)
	m.edges = 0
}

func (m *MemoryStore) NewSession(context.Context) Session {
	return &memSession{store: m}
}

func (m *MemoryStore) VerifyConnectivity(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }

// Constraints returns the declared constraint names mapped to their label.
func (m *MemoryStore) Constraints() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.constraints)
}

// Node returns a copy of a node's properties.
func (m *MemoryStore) Node(label *ontology.Label, key string) (model.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	props, ok := m.nodes[nodeKey{label.Name(), key}]
	if !ok {
		return nil, false
	}
	return model.Record(maps.Clone(props)), true
}

// ─── Writes ──────────────────────────────────────────────────────────────────

func (m *MemoryStore) declare(label *ontology.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.constraints[label.ConstraintName()]; ok && existing != label.Name() {
		return fmt.Errorf("constraint %s already bound to %s", label.ConstraintName(), existing)
	}
	m.constraints[label.ConstraintName()] = label.Name()
	return nil
}

func (m *MemoryStore) mergeNodes(label *ontology.Label, rows []map[string]any) error {
	for i, row := range rows {
		if k, _ := row[label.Key()].(string); k == "" {
			return fmt.Errorf("row %d has no %s", i, label.Key())
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.nodes[nodeKey{label.Name(), row[label.Key()].(string)}] = maps.Clone(row)
	}
	return nil
}

func (m *MemoryStore) createEdges(et *ontology.EdgeType, edges []model.Edge) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	outIdx := adjacency{et.From().Name(), et.Name()}
	inIdx := adjacency{et.To().Name(), et.Name()}
	created := 0
	for _, e := range edges {
		from := nodeKey{et.From().Name(), e.FromID}
		to := nodeKey{et.To().Name(), e.ToID}
		if _, ok := m.nodes[from]; !ok {
			continue
		}
		if _, ok := m.nodes[to]; !ok {
			continue
		}
		edge := &memEdge{from: from, to: to, props: maps.Clone(e.Props)}
		if m.out[outIdx] == nil {
			m.out[outIdx] = make(map[string][]*memEdge)
		}
		if m.in[inIdx] == nil {
			m.in[inIdx] = make(map[string][]*memEdge)
		}
		m.out[outIdx][e.FromID] = append(m.out[outIdx][e.FromID], edge)
		m.in[inIdx][e.ToID] = append(m.in[inIdx][e.ToID], edge)
		created++
	}
	m.edges += created
	return created
}

func (m *MemoryStore) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

type memSession struct {
	store  *MemoryStore
	closed bool
}

func (s *memSession) check(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	return ctx.Err()
}

func (s *memSession) DeclareUniqueConstraint(ctx context.Context, label *ontology.Label) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.store.declare(label)
}

func (s *memSession) BulkCreateNodes(ctx context.Context, label *ontology.Label, rows []map[string]any) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.store.mergeNodes(label, rows)
}

func (s *memSession) BulkCreateEdges(ctx context.Context, et *ontology.EdgeType, edges []model.Edge) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	return s.store.createEdges(et, edges), nil
}

func (s *memSession) ClearAll(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.store.clear()
	return nil
}

func (s *memSession) Close(context.Context) error {
	s.closed = true
	return nil
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// targets follows outgoing edges of et from key, deduplicated.
func (m *MemoryStore) targets(et *ontology.EdgeType, key string, seen map[nodeKey]bool, out []model.Record) []model.Record {
	for _, e := range m.out[adjacency{et.From().Name(), et.Name()}][key] {
		if e.to.label != et.To().Name() || seen[e.to] {
			continue
		}
		seen[e.to] = true
		out = append(out, maps.Clone(model.Record(m.nodes[e.to])))
	}
	return out
}

// sources follows incoming edges of et into key, deduplicated.
func (m *MemoryStore) sources(et *ontology.EdgeType, key string, seen map[nodeKey]bool, out []model.Record) []model.Record {
	for _, e := range m.in[adjacency{et.To().Name(), et.Name()}][key] {
		if e.from.label != et.From().Name() || seen[e.from] {
			continue
		}
		seen[e.from] = true
		out = append(out, maps.Clone(model.Record(m.nodes[e.from])))
	}
	return out
}

func (m *MemoryStore) StudentContext(ctx context.Context, studentID string) (*model.StudentContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.nodes[nodeKey{ontology.Student.Name(), studentID}]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", studentID, apperrors.ErrNotFound)
	}

	courses := m.targets(ontology.StudentEnrolledIn, studentID, map[nodeKey]bool{}, []model.Record{})
	books, programs, scholarships := []model.Record{}, []model.Record{}, []model.Record{}
	seenBooks, seenPrograms, seenScholarships := map[nodeKey]bool{}, map[nodeKey]bool{}, map[nodeKey]bool{}
	for _, c := range courses {
		books = m.targets(ontology.CourseRecommendsBook, c.ID(), seenBooks, books)
		programs = m.targets(ontology.CourseRelatedProgram, c.ID(), seenPrograms, programs)
		scholarships = m.sources(ontology.ScholarshipRequiresCourse, c.ID(), seenScholarships, scholarships)
	}
	for _, rs := range [][]model.Record{courses, books, programs, scholarships} {
		sortRecords(rs)
	}

	return &model.StudentContext{
		Student:      maps.Clone(model.Record(student)),
		Courses:      courses,
		Books:        books,
		Programs:     programs,
		Scholarships: scholarships,
	}, nil
}

func (m *MemoryStore) CourseResources(ctx context.Context, courseID string) (*model.CourseResources, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	course, ok := m.nodes[nodeKey{ontology.Course.Name(), courseID}]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", courseID, apperrors.ErrNotFound)
	}

	res := &model.CourseResources{
		Course:       maps.Clone(model.Record(course)),
		Books:        m.targets(ontology.CourseRecommendsBook, courseID, map[nodeKey]bool{}, []model.Record{}),
		Programs:     m.targets(ontology.CourseRelatedProgram, courseID, map[nodeKey]bool{}, []model.Record{}),
		Scholarships: m.sources(ontology.ScholarshipRequiresCourse, courseID, map[nodeKey]bool{}, []model.Record{}),
	}
	sortRecords(res.Books)
	sortRecords(res.Programs)
	sortRecords(res.Scholarships)
	return res, nil
}

func (m *MemoryStore) CoursesByDepartment(ctx context.Context, departmentID string) ([]model.TaughtCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	courses := m.sources(ontology.CourseOfferedBy, departmentID, map[nodeKey]bool{}, nil)
	sortRecords(courses)

	out := []model.TaughtCourse{}
	for _, c := range courses {
		profs := m.targets(ontology.CourseTaughtBy, c.ID(), map[nodeKey]bool{}, nil)
		sortRecords(profs)
		for _, p := range profs {
			out = append(out, model.TaughtCourse{Course: c, Professor: p})
		}
	}
	return out, nil
}

func (m *MemoryStore) StudentsByStatus(ctx context.Context, status model.StudentStatus, limit int) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Record{}
	for k, props := range m.nodes {
		if k.label == ontology.Student.Name() && props["status"] == string(status) {
			out = append(out, maps.Clone(model.Record(props)))
		}
	}
	sortRecords(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountNodes(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes), nil
}

func (m *MemoryStore) CountEdges(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edges, nil
}

var _ Store = (*MemoryStore)(nil)
