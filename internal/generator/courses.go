package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
)

// Courses creates a fixed number of courses per department, then pads with
// advanced courses in random departments until the floor is met.
//
// A course is always taught by a professor of its own department. A
// prerequisite, when present, is an earlier course of the same department.
func Courses(
	rng *rand.Rand,
	depts []*model.Department,
	terms []*model.Term,
	profs []*model.Professor,
	programs []*model.Program,
	books []*model.Book,
	events []*model.AcademicEvent,
) ([]*model.Course, error) {
	if len(depts) == 0 {
		return nil, apperrors.NewGenerationError("courses", "no departments")
	}
	if len(terms) == 0 {
		return nil, apperrors.NewGenerationError("courses", "no terms")
	}
	if len(programs) == 0 {
		return nil, apperrors.NewGenerationError("courses", "no programs")
	}

	profsByDept := make(map[string][]*model.Professor)
	for _, p := range profs {
		profsByDept[p.DepartmentID] = append(profsByDept[p.DepartmentID], p)
	}
	for _, d := range depts {
		if len(profsByDept[d.ID]) == 0 {
			return nil, apperrors.NewGenerationError("courses", "department %s has no professors", d.ID)
		}
	}

	programsByDept := make(map[string][]string)
	for _, p := range programs {
		programsByDept[p.DepartmentID] = append(programsByDept[p.DepartmentID], p.ID)
	}
	programChoices := func(deptID string) []string {
		if ids := programsByDept[deptID]; len(ids) > 0 {
			return ids
		}
		return []string{pick(rng, programs).ID}
	}

	eventsByTerm := make(map[string][]string)
	for _, e := range events {
		eventsByTerm[e.TermID] = append(eventsByTerm[e.TermID], e.ID)
	}

	bookIDs := keys(books)
	deptCourses := make(map[string][]string)
	courses := make([]*model.Course, 0, max(minCourses, len(depts)*coursesPerDept))

	add := func(c *model.Course, alwaysPrereq bool) {
		prior := deptCourses[c.DepartmentID]
		if len(prior) >= 2 && (alwaysPrereq || rng.Float64() < 0.5) {
			c.PrerequisiteID = pick(rng, prior)
		}
		c.BookIDs = sample(rng, bookIDs, between(rng, 1, 3))
		courses = append(courses, c)
		deptCourses[c.DepartmentID] = append(prior, c.ID)
	}

	for _, dept := range depts {
		for range coursesPerDept {
			n := len(courses)
			term := terms[n%len(terms)]
			topic := pick(rng, courseTopics)
			c := &model.Course{
				ID:           fmt.Sprintf("COURSE-%04d", n),
				Name:         fmt.Sprintf("%s for %s %d", topic, dept.Code, between(rng, 1, 4)),
				Code:         fmt.Sprintf("%s%d", dept.Code, 100+(n+1)%400),
				Credits:      pick(rng, courseCredits),
				Category:     pick(rng, courseCategories),
				YearLevel:    between(rng, 1, 4),
				Semester:     term.Season,
				DeliveryMode: pick(rng, courseDelivery),
				DepartmentID: dept.ID,
				TermID:       term.ID,
				ProfessorID:  pick(rng, profsByDept[dept.ID]).ID,
			}
			choices := programChoices(dept.ID)
			c.ProgramIDs = sample(rng, choices, between(rng, 1, 2))
			add(c, false)
		}
	}

	for len(courses) < minCourses {
		n := len(courses)
		dept := pick(rng, depts)
		term := pick(rng, terms)
		c := &model.Course{
			ID:           fmt.Sprintf("COURSE-%04d", n),
			Name:         fmt.Sprintf("Advanced %s %d", pick(rng, courseTopics), n+1),
			Code:         fmt.Sprintf("%s%d", dept.Code, 100+(n+1)%400),
			Credits:      pick(rng, advancedCredits),
			Category:     pick(rng, courseCategories),
			YearLevel:    between(rng, 2, 4),
			Semester:     term.Season,
			DeliveryMode: pick(rng, advancedDelivery),
			DepartmentID: dept.ID,
			TermID:       term.ID,
			ProfessorID:  pick(rng, profsByDept[dept.ID]).ID,
		}
		c.ProgramIDs = sample(rng, programChoices(dept.ID), 1)
		add(c, true)
	}

	for _, c := range courses {
		c.EventIDs = sample(rng, eventsByTerm[c.TermID], 2)
	}
	return courses, nil
}

// Scholarships links every scholarship to a handful of tracks, programs,
// courses and terms.
func Scholarships(
	rng *rand.Rand,
	tracks []*model.MajorTrack,
	programs []*model.Program,
	courses []*model.Course,
	terms []*model.Term,
) ([]*model.Scholarship, error) {
	switch {
	case len(tracks) == 0:
		return nil, apperrors.NewGenerationError("scholarships", "no major tracks")
	case len(programs) == 0:
		return nil, apperrors.NewGenerationError("scholarships", "no programs")
	case len(courses) == 0:
		return nil, apperrors.NewGenerationError("scholarships", "no courses")
	case len(terms) == 0:
		return nil, apperrors.NewGenerationError("scholarships", "no terms")
	}

	out := make([]*model.Scholarship, 0, scholarshipCount)
	for i := range scholarshipCount {
		trackIDs := keys(sample(rng, tracks, between(rng, 1, 3)))
		programIDs := keys(sample(rng, programs, between(rng, 1, 2)))
		courseIDs := keys(sample(rng, courses, between(rng, 1, 3)))
		termIDs := keys(sample(rng, terms, between(rng, 1, 2)))
		minYear := between(rng, 1, 3)
		out = append(out, &model.Scholarship{
			ID:            fmt.Sprintf("SCH-%03d", i),
			Name:          fmt.Sprintf("%s Scholarship %02d", pick(rng, scholarshipPrefix), i),
			Category:      pick(rng, scholarshipKinds),
			MinGPA:        round2(uniform(rng, 2.7, 3.9)),
			MinCredits:    pick(rng, scholarshipCredits),
			Amount:        pick(rng, scholarshipAmounts),
			TargetYearMin: minYear,
			TargetYearMax: between(rng, minYear, 4),
			Status:        pick(rng, scholarshipStatus),
			TrackIDs:      trackIDs,
			ProgramIDs:    programIDs,
			CourseIDs:     courseIDs,
			TermIDs:       termIDs,
		})
	}
	return out, nil
}
