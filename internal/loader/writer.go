// Package loader streams node and edge groups into a graph store in bounded
// chunks. Every node chunk is written before the first edge chunk.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/model"
	"github.com/cbnu/campus-ontology/internal/ontology"
	"github.com/cbnu/campus-ontology/internal/relation"
)

type Phase string

const (
	PhaseNodes Phase = "nodes"
	PhaseEdges Phase = "edges"
)

// Progress is reported after every written chunk.
type Progress struct {
	Phase  Phase  `json:"phase"`
	Target string `json:"target"`
	Chunk  int    `json:"chunk"`
	Chunks int    `json:"chunks"`
	Rows   int    `json:"rows"`
}

// ProgressFunc receives progress events. Calls are serialized.
type ProgressFunc func(Progress)

// Plan is everything one run writes.
type Plan struct {
	Nodes []relation.NodeGroup
	Edges []relation.Group
}

// Summary counts what a run wrote. Dropped edges are edges the store skipped
// because an endpoint was missing.
type Summary struct {
	Nodes        int           `json:"nodes"`
	EdgesTried   int           `json:"edges_tried"`
	EdgesCreated int           `json:"edges_created"`
	Dropped      int           `json:"dropped"`
	Chunks       int           `json:"chunks"`
	Duration     time.Duration `json:"duration"`
}

type Options struct {
	// NodeWriters bounds how many labels are written concurrently in the
	// node phase. Values below 1 mean one.
	NodeWriters int
	Progress    ProgressFunc
}

// Writer is the batched graph writer.
type Writer struct {
	client graphstore.Client
	opts   Options
	log    zerolog.Logger

	mu sync.Mutex
}

func NewWriter(client graphstore.Client, opts Options, log zerolog.Logger) *Writer {
	if opts.NodeWriters < 1 {
		opts.NodeWriters = 1
	}
	return &Writer{
		client: client,
		opts:   opts,
		log:    log.With().Str("component", "loader").Logger(),
	}
}

func (w *Writer) report(p Progress) {
	if w.opts.Progress == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opts.Progress(p)
}

// WriteNodes writes rows of one label in chunks of batchSize. The first
// failed chunk stops the write; earlier chunks stay written.
func (w *Writer) WriteNodes(ctx context.Context, s graphstore.Session, label *ontology.Label, rows []map[string]any, batchSize int) (int, error) {
	chunks := Chunk(rows, batchSize)
	for i, chunk := range chunks {
		if err := s.BulkCreateNodes(ctx, label, chunk); err != nil {
			return i, apperrors.NewBatchWriteError(label.Name(), i, len(chunk), err)
		}
		w.log.Debug().
			Str("label", label.Name()).
			Int("chunk", i).
			Int("rows", len(chunk)).
			Msg("Node chunk written")
		w.report(Progress{Phase: PhaseNodes, Target: label.Name(), Chunk: i + 1, Chunks: len(chunks), Rows: len(chunk)})
	}
	return len(chunks), nil
}

// WriteEdges writes edges of one type in chunks of batchSize and returns how
// many edges the store created.
func (w *Writer) WriteEdges(ctx context.Context, s graphstore.Session, et *ontology.EdgeType, edges []model.Edge, batchSize int) (created, written int, err error) {
	chunks := Chunk(edges, batchSize)
	for i, chunk := range chunks {
		n, err := s.BulkCreateEdges(ctx, et, chunk)
		if err != nil {
			return created, i, apperrors.NewBatchWriteError(et.String(), i, len(chunk), err)
		}
		created += n
		w.log.Debug().
			Str("edge_type", et.String()).
			Int("chunk", i).
			Int("rows", len(chunk)).
			Int("created", n).
			Msg("Edge chunk written")
		w.report(Progress{Phase: PhaseEdges, Target: et.String(), Chunk: i + 1, Chunks: len(chunks), Rows: len(chunk)})
	}
	return created, len(chunks), nil
}

// Load writes the plan in two phases. Node groups are written concurrently,
// each on its own session. Edge groups start only after every node group
// finished without error and run one after another on a single session.
// The first failure aborts the run; nothing is rolled back.
func (w *Writer) Load(ctx context.Context, plan Plan) (*Summary, error) {
	start := time.Now()
	sum := &Summary{}

	if err := w.writeNodePhase(ctx, plan.Nodes, sum); err != nil {
		sum.Duration = time.Since(start)
		return sum, err
	}
	w.log.Info().Int("nodes", sum.Nodes).Msg("Node phase complete")

	if err := w.writeEdgePhase(ctx, plan.Edges, sum); err != nil {
		sum.Duration = time.Since(start)
		return sum, err
	}

	sum.Dropped = sum.EdgesTried - sum.EdgesCreated
	sum.Duration = time.Since(start)
	if sum.Dropped > 0 {
		w.log.Warn().Int("dropped", sum.Dropped).Msg("Edges skipped on missing endpoints")
	}
	w.log.Info().
		Int("nodes", sum.Nodes).
		Int("edges", sum.EdgesCreated).
		Int("chunks", sum.Chunks).
		Dur("took", sum.Duration).
		Msg("Load complete")
	return sum, nil
}

func (w *Writer) writeNodePhase(ctx context.Context, groups []relation.NodeGroup, sum *Summary) error {
	var mu sync.Mutex
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.opts.NodeWriters)

	for _, g := range groups {
		if len(g.Rows) == 0 {
			continue
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := w.client.NewSession(gctx)
			defer s.Close(context.WithoutCancel(gctx))

			chunks, err := w.WriteNodes(gctx, s, g.Label, g.Rows, g.BatchSize)
			mu.Lock()
			sum.Chunks += chunks
			if err == nil {
				sum.Nodes += len(g.Rows)
			}
			mu.Unlock()
			return err
		})
	}
	return eg.Wait()
}

func (w *Writer) writeEdgePhase(ctx context.Context, groups []relation.Group, sum *Summary) error {
	s := w.client.NewSession(ctx)
	defer s.Close(context.WithoutCancel(ctx))

	for _, g := range groups {
		if len(g.Edges) == 0 {
			continue
		}
		created, chunks, err := w.WriteEdges(ctx, s, g.Type, g.Edges, g.BatchSize)
		sum.Chunks += chunks
		sum.EdgesCreated += created
		if err != nil {
			return err
		}
		sum.EdgesTried += len(g.Edges)
		if dropped := len(g.Edges) - created; dropped > 0 {
			w.log.Warn().
				Str("edge_type", g.Type.String()).
				Int("dropped", dropped).
				Msg("Edges skipped on missing endpoint")
		}
	}
	return nil
}
