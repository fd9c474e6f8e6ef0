package graphstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

// Neo4jStore implements Store on top of the official driver.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	log      zerolog.Logger
}

// NewNeo4jStore wraps an open driver. An empty database selects the server
// default.
func NewNeo4jStore(driver neo4j.DriverWithContext, database string, log zerolog.Logger) *Neo4jStore {
	return &Neo4jStore{
		driver:   driver,
		database: database,
		log:      log.With().Str("component", "neo4j").Logger(),
	}
}

func (s *Neo4jStore) NewSession(ctx context.Context) Session {
	return &neo4jSession{
		session: s.driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: s.database,
		}),
	}
}

func (s *Neo4jStore) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewConnectivityError("neo4j", err)
	}
	return nil
}

func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

type neo4jSession struct {
	session neo4j.SessionWithContext
}

func (s *neo4jSession) DeclareUniqueConstraint(ctx context.Context, label *ontology.Label) error {
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, constraintCypher(label), nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil && !alreadyExists(err) {
		return err
	}
	return nil
}

func (s *neo4jSession) BulkCreateNodes(ctx context.Context, label *ontology.Label, rows []map[string]any) error {
	params := map[string]any{"rows": toParams(rows)}
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, nodeCypher(label), params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

func (s *neo4jSession) BulkCreateEdges(ctx context.Context, et *ontology.EdgeType, edges []model.Edge) (int, error) {
	rows := make([]any, len(edges))
	for i, e := range edges {
		props := e.Props
		if props == nil {
			props = map[string]any{}
		}
		rows[i] = map[string]any{"from": e.FromID, "to": e.ToID, "props": props}
	}

	created, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, edgeCypher(et), map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _, err := neo4j.GetRecordValue[int64](record, "created")
		return n, err
	})
	if err != nil {
		return 0, err
	}
	return int(created.(int64)), nil
}

func (s *neo4jSession) ClearAll(ctx context.Context) error {
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, clearCypher, nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

func (s *neo4jSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

// alreadyExists matches schema errors for a constraint that is already in
// place under another name.
func alreadyExists(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return strings.Contains(neoErr.Code, "AlreadyExists")
	}
	return false
}

func toParams(rows []map[string]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (s *Neo4jStore) read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]*neo4j.Record), nil
}

func (s *Neo4jStore) StudentContext(ctx context.Context, studentID string) (*model.StudentContext, error) {
	records, err := s.read(ctx, studentContextCypher, map[string]any{"id": studentID})
	if err != nil {
		return nil, fmt.Errorf("query student context: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("student %s: %w", studentID, apperrors.ErrNotFound)
	}
	r := records[0]
	return &model.StudentContext{
		Student:      nodeRecord(r, "s"),
		Courses:      nodeList(r, "courses"),
		Books:        nodeList(r, "books"),
		Programs:     nodeList(r, "programs"),
		Scholarships: nodeList(r, "scholarships"),
	}, nil
}

func (s *Neo4jStore) CourseResources(ctx context.Context, courseID string) (*model.CourseResources, error) {
	records, err := s.read(ctx, courseResourcesCypher, map[string]any{"id": courseID})
	if err != nil {
		return nil, fmt.Errorf("query course resources: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, apperrors.ErrNotFound)
	}
	r := records[0]
	return &model.CourseResources{
		Course:       nodeRecord(r, "c"),
		Books:        nodeList(r, "books"),
		Programs:     nodeList(r, "programs"),
		Scholarships: nodeList(r, "scholarships"),
	}, nil
}

func (s *Neo4jStore) CoursesByDepartment(ctx context.Context, departmentID string) ([]model.TaughtCourse, error) {
	records, err := s.read(ctx, departmentCoursesCypher, map[string]any{"id": departmentID})
	if err != nil {
		return nil, fmt.Errorf("query department courses: %w", err)
	}
	out := make([]model.TaughtCourse, 0, len(records))
	for _, r := range records {
		out = append(out, model.TaughtCourse{
			Course:    nodeRecord(r, "c"),
			Professor: nodeRecord(r, "p"),
		})
	}
	return out, nil
}

func (s *Neo4jStore) StudentsByStatus(ctx context.Context, status model.StudentStatus, limit int) ([]model.Record, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	records, err := s.read(ctx, studentsByStatusCypher, map[string]any{
		"status": string(status),
		"limit":  int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("query students by status: %w", err)
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		out = append(out, nodeRecord(r, "s"))
	}
	return out, nil
}

func (s *Neo4jStore) CountNodes(ctx context.Context) (int, error) {
	return s.count(ctx, countNodesCypher)
}

func (s *Neo4jStore) CountEdges(ctx context.Context) (int, error) {
	return s.count(ctx, countEdgesCypher)
}

func (s *Neo4jStore) count(ctx context.Context, cypher string) (int, error) {
	records, err := s.read(ctx, cypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	n, _, err := neo4j.GetRecordValue[int64](records[0], "total")
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return int(n), nil
}

func nodeRecord(r *neo4j.Record, key string) model.Record {
	v, ok := r.Get(key)
	if !ok {
		return nil
	}
	if n, ok := v.(neo4j.Node); ok {
		return model.Record(n.Props)
	}
	return nil
}

// nodeList converts a collected node list into records sorted by id.
func nodeList(r *neo4j.Record, key string) []model.Record {
	v, ok := r.Get(key)
	if !ok {
		return []model.Record{}
	}
	items, _ := v.([]any)
	out := make([]model.Record, 0, len(items))
	for _, item := range items {
		if n, ok := item.(neo4j.Node); ok {
			out = append(out, model.Record(n.Props))
		}
	}
	sortRecords(out)
	return out
}

func sortRecords(records []model.Record) {
	slices.SortFunc(records, func(a, b model.Record) int {
		return strings.Compare(a.ID(), b.ID())
	})
}

var _ Store = (*Neo4jStore)(nil)
