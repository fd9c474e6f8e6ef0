// Package graphstore is the boundary to the property graph. Neo4jStore talks
// to a live server; MemoryStore keeps the same semantics in process.
package graphstore

import (
	"context"

	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

// Client hands out sessions. A session must not be shared between
// goroutines; concurrent writers each open their own.
type Client interface {
	NewSession(ctx context.Context) Session
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Session is one logical connection used for writes. No transaction spans
// more than one call.
type Session interface {
	// DeclareUniqueConstraint declares the label's key as unique. Declaring
	// an existing constraint is a no-op.
	DeclareUniqueConstraint(ctx context.Context, label *ontology.Label) error

	// BulkCreateNodes merges every row by the label's key and replaces the
	// node's properties with the row.
	BulkCreateNodes(ctx context.Context, label *ontology.Label, rows []map[string]any) error

	// BulkCreateEdges matches both endpoints by key and creates one edge per
	// row. A row whose endpoint is missing creates nothing and is not an
	// error. It returns the number of edges created.
	BulkCreateEdges(ctx context.Context, et *ontology.EdgeType, edges []model.Edge) (int, error)

	// ClearAll detach-deletes every node and edge.
	ClearAll(ctx context.Context) error

	Close(ctx context.Context) error
}

// Reader serves the fixed read patterns consumed downstream. Missing keys
// return an error wrapping apperrors.ErrNotFound.
type Reader interface {
	StudentContext(ctx context.Context, studentID string) (*model.StudentContext, error)
	CourseResources(ctx context.Context, courseID string) (*model.CourseResources, error)
	CoursesByDepartment(ctx context.Context, departmentID string) ([]model.TaughtCourse, error)
	StudentsByStatus(ctx context.Context, status model.StudentStatus, limit int) ([]model.Record, error)
	CountNodes(ctx context.Context) (int, error)
	CountEdges(ctx context.Context) (int, error)
}

// Store is a backend that can both be loaded and read.
type Store interface {
	Client
	Reader
}
