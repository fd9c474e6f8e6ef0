package model

// StudentStatus is the enrollment state of a student.
type StudentStatus string

const (
	StudentActive     StudentStatus = "active"
	StudentGraduating StudentStatus = "graduating"
)

// ProgramParticipation records hours a student spent in a program.
type ProgramParticipation struct {
	ProgramID string `json:"program_id"`
	Hours     int    `json:"hours"`
}

// ScholarshipAward records the scholarship a student received and the term name
// it was awarded in.
type ScholarshipAward struct {
	ScholarshipID string `json:"scholarship_id"`
	Term          string `json:"term"`
}

// Student is an enrolled student.
type Student struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	StudentNumber   int                    `json:"student_number"`
	YearLevel       int                    `json:"year_level"`
	GPA             float64                `json:"gpa"`
	EntryYear       int                    `json:"entry_year"`
	CreditsEarned   int                    `json:"credits_earned"`
	RequiredCredits int                    `json:"required_credits"`
	Status          StudentStatus          `json:"status"`
	CurrentTermID   string                 `json:"current_term_id"`
	TrackID         string                 `json:"track_id"`
	CourseIDs       []string               `json:"course_ids"`
	Programs        []ProgramParticipation `json:"programs"`
	Scholarship     *ScholarshipAward      `json:"scholarship,omitempty"`
}

func (s *Student) Key() string { return s.ID }

func (s *Student) Properties() map[string]any {
	return map[string]any{
		"id":              s.ID,
		"name":            s.Name,
		"studentNumber":   int64(s.StudentNumber),
		"yearLevel":       int64(s.YearLevel),
		"gpa":             s.GPA,
		"entryYear":       int64(s.EntryYear),
		"creditsEarned":   int64(s.CreditsEarned),
		"requiredCredits": int64(s.RequiredCredits),
		"status":          string(s.Status),
		"currentTermId":   s.CurrentTermID,
	}
}
