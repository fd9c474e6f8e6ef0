package model

import "fmt"

// Record is the property map of a node read back from the graph store.
type Record map[string]any

// ID returns the record's key property.
func (r Record) ID() string { return r.String("id") }

// String returns a property as a string, or "" when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns a numeric property as int, or 0 when absent.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns a numeric property as float64, or 0 when absent.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// StudentContext is a student plus the distinct nodes reachable through the
// courses they are enrolled in.
type StudentContext struct {
	Student      Record   `json:"student"`
	Courses      []Record `json:"courses"`
	Books        []Record `json:"books"`
	Programs     []Record `json:"programs"`
	Scholarships []Record `json:"scholarships"`
}

// CourseResources is a course plus its one-hop books, programs and the
// scholarships requiring it.
type CourseResources struct {
	Course       Record   `json:"course"`
	Books        []Record `json:"books"`
	Programs     []Record `json:"programs"`
	Scholarships []Record `json:"scholarships"`
}

// TaughtCourse pairs a course with the professor teaching it.
type TaughtCourse struct {
	Course    Record `json:"course"`
	Professor Record `json:"professor"`
}
