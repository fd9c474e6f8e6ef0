package model

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of a load run.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// LoadRun is one clear-and-reload of the graph as recorded in the ledger.
type LoadRun struct {
	ID           uuid.UUID  `json:"id"`
	Seed         int64      `json:"seed"`
	StudentCount int        `json:"student_count"`
	Status       RunStatus  `json:"status"`
	NodeCount    int        `json:"node_count"`
	EdgeCount    int        `json:"edge_count"`
	DroppedEdges int        `json:"dropped_edges"`
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// ReloadRequest is the payload for queueing a reload.
type ReloadRequest struct {
	Seed     *int64 `json:"seed" binding:"omitempty"`
	Students int    `json:"students" binding:"omitempty,min=1,max=50000"`
}

// ReloadJob is the queued unit of work consumed by the reload worker.
type ReloadJob struct {
	RunID    uuid.UUID `json:"run_id"`
	Seed     int64     `json:"seed"`
	Students int       `json:"students"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}
