package websocket

import "time"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventQueued    Event = "queued"
	EventPhase     Event = "phase"
	EventChunk     Event = "chunk"
	EventSucceeded Event = "succeeded"
	EventFailed    Event = "failed"
	EventError     Event = "error"
	EventPong      Event = "pong"
)

// Run phases reported with EventPhase.
const (
	PhaseGenerate = "generate"
	PhaseVerify   = "verify"
	PhaseClear    = "clear"
	PhaseSchema   = "schema"
	PhaseNodes    = "nodes"
	PhaseEdges    = "edges"
)

// ProgressEvent is published for every step of a load run and forwarded
// unchanged to subscribed clients.
type ProgressEvent struct {
	Event  Event     `json:"event"`
	RunID  string    `json:"run_id"`
	Phase  string    `json:"phase,omitempty"`
	Target string    `json:"target,omitempty"`
	Chunk  int       `json:"chunk,omitempty"`
	Chunks int       `json:"chunks,omitempty"`
	Rows   int       `json:"rows,omitempty"`
	Nodes  int       `json:"nodes,omitempty"`
	Edges  int       `json:"edges,omitempty"`
	Drops  int       `json:"dropped,omitempty"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// Terminal reports whether no further events follow for the run.
func (e ProgressEvent) Terminal() bool {
	return e.Event == EventSucceeded || e.Event == EventFailed
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
