package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
)

// RunRepository is the ledger of load runs.
type RunRepository interface {
	Create(ctx context.Context, run *model.LoadRun) error
	MarkRunning(ctx context.Context, id uuid.UUID) error
	Finish(ctx context.Context, run *model.LoadRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.LoadRun, error)
	List(ctx context.Context, limit int) ([]*model.LoadRun, error)
}

type runRepository struct {
	db *pgxpool.Pool
}

func NewRunRepository(db *pgxpool.Pool) RunRepository {
	return &runRepository{db: db}
}

const runColumns = `id, seed, student_count, status, node_count, edge_count, dropped_edges, error, started_at, finished_at`

func scanRun(row pgx.Row) (*model.LoadRun, error) {
	run := &model.LoadRun{}
	err := row.Scan(
		&run.ID, &run.Seed, &run.StudentCount, &run.Status,
		&run.NodeCount, &run.EdgeCount, &run.DroppedEdges, &run.Error,
		&run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *runRepository) Create(ctx context.Context, run *model.LoadRun) error {
	query := `
		INSERT INTO load_runs (id, seed, student_count, status)
		VALUES ($1, $2, $3, $4)
		RETURNING started_at
	`
	return r.db.QueryRow(ctx, query, run.ID, run.Seed, run.StudentCount, run.Status).Scan(&run.StartedAt)
}

func (r *runRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE load_runs SET status = $1, started_at = CURRENT_TIMESTAMP WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, model.RunRunning, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *runRepository) Finish(ctx context.Context, run *model.LoadRun) error {
	query := `
		UPDATE load_runs
		SET status = $1, node_count = $2, edge_count = $3, dropped_edges = $4,
		    error = $5, finished_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING finished_at
	`
	err := r.db.QueryRow(ctx, query,
		run.Status, run.NodeCount, run.EdgeCount, run.DroppedEdges, run.Error, run.ID,
	).Scan(&run.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("run %s: %w", run.ID, apperrors.ErrNotFound)
	}
	return err
}

func (r *runRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.LoadRun, error) {
	query := `SELECT ` + runColumns + ` FROM load_runs WHERE id = $1`
	run, err := scanRun(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, apperrors.ErrNotFound)
	}
	return run, err
}

func (r *runRepository) List(ctx context.Context, limit int) ([]*model.LoadRun, error) {
	query := `SELECT ` + runColumns + ` FROM load_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*model.LoadRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
