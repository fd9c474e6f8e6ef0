package generator

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
)

// Students creates exactly n students. Each student majors in one track, is
// enrolled in courses of that track's department, takes part in programs
// suited to the track and may receive one scholarship they are eligible for.
func Students(
	rng *rand.Rand,
	n int,
	tracks []*model.MajorTrack,
	terms []*model.Term,
	courses []*model.Course,
	programs []*model.Program,
	scholarships []*model.Scholarship,
) ([]*model.Student, error) {
	if n < 0 {
		return nil, apperrors.NewGenerationError("students", "negative student count %d", n)
	}
	if n == 0 {
		return []*model.Student{}, nil
	}
	if len(tracks) == 0 {
		return nil, apperrors.NewGenerationError("students", "no major tracks")
	}
	if len(terms) == 0 {
		return nil, apperrors.NewGenerationError("students", "no terms")
	}
	if len(courses) == 0 {
		return nil, apperrors.NewGenerationError("students", "no courses to enroll in")
	}

	courseByID := make(map[string]*model.Course, len(courses))
	deptCourses := make(map[string][]string)
	for _, c := range courses {
		courseByID[c.ID] = c
		deptCourses[c.DepartmentID] = append(deptCourses[c.DepartmentID], c.ID)
	}
	allCourses := keys(courses)

	programByID := make(map[string]*model.Program, len(programs))
	programsByTrack := make(map[string][]string)
	for _, p := range programs {
		programByID[p.ID] = p
		for _, t := range p.TrackIDs {
			programsByTrack[t] = append(programsByTrack[t], p.ID)
		}
	}

	scholarshipsByTrack := make(map[string][]*model.Scholarship)
	for _, s := range scholarships {
		for _, t := range s.TrackIDs {
			scholarshipsByTrack[t] = append(scholarshipsByTrack[t], s)
		}
	}

	termsByBand := make(map[int][]*model.Term)
	for _, t := range terms {
		termsByBand[t.YearBand] = append(termsByBand[t.YearBand], t)
	}

	students := make([]*model.Student, 0, n)
	for i := range n {
		track := pick(rng, tracks)
		year := weighted(rng, yearLevelWeights) + 1

		termPool := termsByBand[year]
		if len(termPool) == 0 {
			termPool = terms
		}
		term := pick(rng, termPool)

		status := model.StudentActive
		if year == 4 && rng.Float64() < 0.35 {
			status = model.StudentGraduating
		}
		credits := between(rng, year*25, year*35)
		if status == model.StudentGraduating {
			credits = max(credits, graduatingCredits+rng.IntN(26))
		}
		gpa := round2(uniform(rng, 2.0, 4.3))

		s := &model.Student{
			ID:              fmt.Sprintf("STD-%05d", i),
			Name:            personName(rng),
			StudentNumber:   firstStudentNumber + i,
			YearLevel:       year,
			GPA:             gpa,
			EntryYear:       between(rng, 2018, 2023),
			CreditsEarned:   credits,
			RequiredCredits: requiredCredits,
			Status:          status,
			CurrentTermID:   term.ID,
			TrackID:         track.ID,
		}

		pool := deptCourses[track.DepartmentID]
		if len(pool) == 0 {
			pool = allCourses
		}
		s.CourseIDs = enroll(rng, pool, courseByID, term.ID, between(rng, 4, 6))

		for _, pid := range sample(rng, programsByTrack[track.ID], between(rng, 1, 3)) {
			s.Programs = append(s.Programs, model.ProgramParticipation{
				ProgramID: pid,
				Hours:     min(programByID[pid].Hours, between(rng, 8, 20)),
			})
		}

		var eligible []*model.Scholarship
		for _, sch := range scholarshipsByTrack[track.ID] {
			if sch.EligibleFor(track.ID, year, gpa) {
				eligible = append(eligible, sch)
			}
		}
		if len(eligible) > 0 && rng.Float64() < 0.22 {
			s.Scholarship = &model.ScholarshipAward{
				ScholarshipID: pick(rng, eligible).ID,
				Term:          term.Name,
			}
		}

		students = append(students, s)
	}
	return students, nil
}

// enroll picks up to two courses held in the student's current term, then
// fills from the whole pool. The target is clamped to the number of distinct
// courses available.
func enroll(rng *rand.Rand, pool []string, byID map[string]*model.Course, termID string, want int) []string {
	want = min(want, len(pool))

	var inTerm []string
	for _, id := range pool {
		if byID[id].TermID == termID {
			inTerm = append(inTerm, id)
		}
	}
	chosen := sample(rng, inTerm, 2)

	for _, id := range sample(rng, pool, len(pool)) {
		if len(chosen) >= want {
			break
		}
		if !slices.Contains(chosen, id) {
			chosen = append(chosen, id)
		}
	}
	return chosen
}
