package ontology

// EdgeType is a relationship type between two fixed labels. The same
// relationship name may appear on several variants (BELONGS_TO).
type EdgeType struct {
	name  string
	from  *Label
	to    *Label
	props []string
}

// Name is the relationship type written to the store.
func (e *EdgeType) Name() string { return e.name }

func (e *EdgeType) From() *Label { return e.from }

func (e *EdgeType) To() *Label { return e.to }

// Properties lists the optional edge properties.
func (e *EdgeType) Properties() []string { return e.props }

func (e *EdgeType) String() string {
	return e.from.name + "-" + e.name + "->" + e.to.name
}

var (
	DepartmentInCollege = &EdgeType{name: "BELONGS_TO", from: Department, to: College}
	TrackInDepartment   = &EdgeType{name: "BELONGS_TO", from: MajorTrack, to: Department}
	ProfessorMemberOf   = &EdgeType{name: "MEMBER_OF", from: Professor, to: Department}
	CourseOfferedBy     = &EdgeType{name: "OFFERED_BY", from: Course, to: Department}
	EventScheduledIn    = &EdgeType{name: "SCHEDULED_IN", from: AcademicEvent, to: Term}

	ProgramForMajor = &EdgeType{name: "SUITABLE_FOR_MAJOR", from: Program, to: MajorTrack}
	ProgramForYear  = &EdgeType{name: "SUITABLE_FOR_YEAR", from: Program, to: AcademicEvent, props: []string{"targetYear"}}

	CourseTaughtBy       = &EdgeType{name: "TAUGHT_BY", from: Course, to: Professor}
	CourseHeldInTerm     = &EdgeType{name: "HELD_IN_TERM", from: Course, to: Term}
	CourseRecommendsBook = &EdgeType{name: "HAS_RECOMMENDED_BOOK", from: Course, to: Book}
	CourseRelatedProgram = &EdgeType{name: "RELATED_TO_PROGRAM", from: Course, to: Program}
	CoursePrerequisite   = &EdgeType{name: "HAS_PREREQUISITE", from: Course, to: Course}
	EventRelatedCourse   = &EdgeType{name: "RELATED_TO_COURSE", from: AcademicEvent, to: Course}

	ScholarshipRequiresProgram = &EdgeType{name: "REQUIRES_PROGRAM", from: Scholarship, to: Program}
	ScholarshipRequiresCourse  = &EdgeType{name: "REQUIRES_COURSE", from: Scholarship, to: Course}
	ScholarshipForMajor        = &EdgeType{name: "AVAILABLE_FOR_MAJOR", from: Scholarship, to: MajorTrack}
	ScholarshipInTerm          = &EdgeType{name: "AVAILABLE_IN_TERM", from: Scholarship, to: Term}

	StudentMajorIn             = &EdgeType{name: "MAJOR_IN", from: Student, to: MajorTrack}
	StudentEnrolledIn          = &EdgeType{name: "ENROLLED_IN", from: Student, to: Course}
	StudentParticipatedIn      = &EdgeType{name: "PARTICIPATED_IN", from: Student, to: Program, props: []string{"hours"}}
	StudentReceivedScholarship = &EdgeType{name: "RECEIVED_SCHOLARSHIP", from: Student, to: Scholarship, props: []string{"term"}}
)

var edgeTypes = []*EdgeType{
	DepartmentInCollege, TrackInDepartment, ProfessorMemberOf, CourseOfferedBy, EventScheduledIn,
	ProgramForMajor, ProgramForYear,
	CourseTaughtBy, CourseHeldInTerm, CourseRecommendsBook, CourseRelatedProgram, CoursePrerequisite,
	ScholarshipRequiresProgram, ScholarshipRequiresCourse, ScholarshipForMajor, ScholarshipInTerm,
	StudentMajorIn, StudentEnrolledIn, StudentParticipatedIn, StudentReceivedScholarship,
	EventRelatedCourse,
}

// EdgeTypes returns every edge type in write order.
func EdgeTypes() []*EdgeType {
	out := make([]*EdgeType, len(edgeTypes))
	copy(out, edgeTypes)
	return out
}
