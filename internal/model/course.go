package model

// Course is one offering of a department in a given term. PrerequisiteID is
// empty when the course has none.
type Course struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	Credits        int      `json:"credits"`
	Category       string   `json:"category"`
	YearLevel      int      `json:"year_level"`
	Semester       Season   `json:"semester"`
	DeliveryMode   string   `json:"delivery_mode"`
	DepartmentID   string   `json:"department_id"`
	TermID         string   `json:"term_id"`
	ProfessorID    string   `json:"professor_id"`
	PrerequisiteID string   `json:"prerequisite_id,omitempty"`
	ProgramIDs     []string `json:"program_ids"`
	BookIDs        []string `json:"book_ids"`
	EventIDs       []string `json:"event_ids"`
}

func (c *Course) Key() string { return c.ID }

func (c *Course) Properties() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"courseCode":   c.Code,
		"credits":      int64(c.Credits),
		"category":     c.Category,
		"yearLevel":    int64(c.YearLevel),
		"semester":     string(c.Semester),
		"deliveryMode": c.DeliveryMode,
		"departmentId": c.DepartmentID,
		"termId":       c.TermID,
	}
}

// Scholarship lists the tracks, programs, courses and terms it is tied to.
type Scholarship struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	MinGPA        float64  `json:"min_gpa"`
	MinCredits    int      `json:"min_credits"`
	Amount        int      `json:"amount"`
	TargetYearMin int      `json:"target_year_min"`
	TargetYearMax int      `json:"target_year_max"`
	Status        string   `json:"status"`
	TrackIDs      []string `json:"track_ids"`
	ProgramIDs    []string `json:"program_ids"`
	CourseIDs     []string `json:"course_ids"`
	TermIDs       []string `json:"term_ids"`
}

func (s *Scholarship) Key() string { return s.ID }

func (s *Scholarship) Properties() map[string]any {
	return map[string]any{
		"id":            s.ID,
		"name":          s.Name,
		"category":      s.Category,
		"minGpa":        s.MinGPA,
		"minCredits":    int64(s.MinCredits),
		"amount":        int64(s.Amount),
		"targetYearMin": int64(s.TargetYearMin),
		"targetYearMax": int64(s.TargetYearMax),
		"status":        s.Status,
	}
}

// EligibleFor reports whether a student on trackID at yearLevel with gpa may
// receive the scholarship. GPA gets a 0.1 tolerance.
func (s *Scholarship) EligibleFor(trackID string, yearLevel int, gpa float64) bool {
	if yearLevel < s.TargetYearMin || yearLevel > s.TargetYearMax {
		return false
	}
	if gpa < s.MinGPA-0.1 {
		return false
	}
	for _, id := range s.TrackIDs {
		if id == trackID {
			return true
		}
	}
	return false
}
