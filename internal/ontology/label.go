// Package ontology declares the closed set of node labels and edge types the
// loader writes. Each variant carries its key, property list and endpoints as
// data so the writer and stores handle every type the same way.
package ontology

// Label is a node label. Values are only created in this package.
type Label struct {
	name       string
	key        string
	props      []string
	extra      []string
	constraint string
}

func (l *Label) Name() string { return l.name }

// Key is the property holding the label's unique key.
func (l *Label) Key() string { return l.key }

// Properties lists every property written for the label, key included.
func (l *Label) Properties() []string { return l.props }

// ExtraLabels are secondary labels added to every node of this label.
func (l *Label) ExtraLabels() []string { return l.extra }

// ConstraintName is the name of the label's uniqueness constraint.
func (l *Label) ConstraintName() string { return l.constraint }

func (l *Label) String() string { return l.name }

// Project keeps only the label's declared properties. Missing properties are
// left out rather than set to nil.
func (l *Label) Project(props map[string]any) map[string]any {
	row := make(map[string]any, len(l.props))
	for _, p := range l.props {
		if v, ok := props[p]; ok {
			row[p] = v
		}
	}
	return row
}

var (
	College = &Label{
		name:       "College",
		key:        "id",
		props:      []string{"id", "name", "type", "dean"},
		constraint: "college_id_cons",
	}
	Department = &Label{
		name:       "Department",
		key:        "id",
		props:      []string{"id", "name", "code", "building", "collegeId"},
		constraint: "department_id_cons",
	}
	MajorTrack = &Label{
		name:       "MajorTrack",
		key:        "id",
		props:      []string{"id", "name", "focusArea", "minYear", "maxYear", "departmentId"},
		extra:      []string{"AcademicInfo"},
		constraint: "majortrack_id_cons",
	}
	Term = &Label{
		name:       "Term",
		key:        "id",
		props:      []string{"id", "name", "year", "season", "sequence", "yearBand", "startDate", "endDate"},
		extra:      []string{"AcademicInfo"},
		constraint: "term_id_cons",
	}
	AcademicEvent = &Label{
		name:       "AcademicEvent",
		key:        "id",
		props:      []string{"id", "name", "eventType", "termId", "startWeek", "endWeek", "yearFocus"},
		extra:      []string{"AcademicInfo"},
		constraint: "event_id_cons",
	}
	Book = &Label{
		name:       "Book",
		key:        "id",
		props:      []string{"id", "name", "title", "author", "topic", "available", "callNumber", "publisher"},
		extra:      []string{"ScholarlyResource"},
		constraint: "book_id_cons",
	}
	Program = &Label{
		name:       "NonCurricularProgram",
		key:        "id",
		props:      []string{"id", "name", "category", "competency", "minYear", "maxYear", "hours", "delivery", "departmentId"},
		extra:      []string{"AcademicInfo"},
		constraint: "program_id_cons",
	}
	Professor = &Label{
		name:       "Professor",
		key:        "id",
		props:      []string{"id", "name", "title", "email", "office", "departmentId"},
		extra:      []string{"AcademicActor"},
		constraint: "professor_id_cons",
	}
	Course = &Label{
		name:       "Course",
		key:        "id",
		props:      []string{"id", "name", "courseCode", "credits", "category", "yearLevel", "semester", "deliveryMode", "departmentId", "termId"},
		extra:      []string{"AcademicInfo"},
		constraint: "course_id_cons",
	}
	Scholarship = &Label{
		name:       "Scholarship",
		key:        "id",
		props:      []string{"id", "name", "category", "minGpa", "minCredits", "amount", "targetYearMin", "targetYearMax", "status"},
		extra:      []string{"AcademicInfo"},
		constraint: "scholarship_id_cons",
	}
	Student = &Label{
		name:       "Student",
		key:        "id",
		props:      []string{"id", "name", "studentNumber", "yearLevel", "gpa", "entryYear", "creditsEarned", "requiredCredits", "status", "currentTermId"},
		extra:      []string{"AcademicActor"},
		constraint: "student_id_cons",
	}
)

var labels = []*Label{
	College, Department, MajorTrack, Term, AcademicEvent, Book,
	Program, Professor, Course, Scholarship, Student,
}

// Labels returns every label in dependency order.
func Labels() []*Label {
	out := make([]*Label, len(labels))
	copy(out, labels)
	return out
}

// LabelByName looks up a label by its primary name.
func LabelByName(name string) (*Label, bool) {
	for _, l := range labels {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}
