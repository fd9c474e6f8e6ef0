package model

// Node is any generated entity that becomes a graph node.
type Node interface {
	Key() string
	Properties() map[string]any
}

// Dataset is the full in-memory output of one generation run, in dependency
// order. Nothing in it is mutated after generation.
type Dataset struct {
	Seed         int64            `json:"seed"`
	Colleges     []*College       `json:"colleges"`
	Departments  []*Department    `json:"departments"`
	MajorTracks  []*MajorTrack    `json:"major_tracks"`
	Terms        []*Term          `json:"terms"`
	Events       []*AcademicEvent `json:"events"`
	Books        []*Book          `json:"books"`
	Programs     []*Program       `json:"programs"`
	Professors   []*Professor     `json:"professors"`
	Courses      []*Course        `json:"courses"`
	Scholarships []*Scholarship   `json:"scholarships"`
	Students     []*Student       `json:"students"`
}

// Edge is one relationship tuple. Props is nil for edge types without
// properties.
type Edge struct {
	FromID string         `json:"from"`
	ToID   string         `json:"to"`
	Props  map[string]any `json:"props,omitempty"`
}

// Nodes converts a typed collection into the generic Node slice.
func Nodes[T Node](items []T) []Node {
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
