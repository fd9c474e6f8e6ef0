package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
)

// Colleges returns the fixed college list.
func Colleges() []*model.College {
	out := make([]*model.College, len(colleges))
	for i := range colleges {
		c := colleges[i]
		out[i] = &c
	}
	return out
}

// Departments returns the fixed department list.
func Departments() []*model.Department {
	out := make([]*model.Department, len(departments))
	for i := range departments {
		d := departments[i]
		out[i] = &d
	}
	return out
}

// MajorTracks creates one track per department, then cycles through the
// departments again until the floor is met.
func MajorTracks(rng *rand.Rand, depts []*model.Department) ([]*model.MajorTrack, error) {
	if len(depts) == 0 {
		return nil, apperrors.NewGenerationError("major tracks", "no departments")
	}

	tracks := make([]*model.MajorTrack, 0, max(minMajorTracks, len(depts)))
	next := func(dept *model.Department, topic string, minYear, maxYear int) {
		tracks = append(tracks, &model.MajorTrack{
			ID:           fmt.Sprintf("TRK-%03d", len(tracks)+1),
			Name:         dept.Code + " " + topic,
			DepartmentID: dept.ID,
			FocusArea:    topic,
			MinYear:      minYear,
			MaxYear:      maxYear,
		})
	}

	for _, dept := range depts {
		topic := trackTopics[len(tracks)%len(trackTopics)]
		minYear := between(rng, 1, 2)
		next(dept, topic, minYear, between(rng, minYear+1, 4))
	}
	for i := 0; len(tracks) < minMajorTracks; i++ {
		dept := depts[i%len(depts)]
		topic := pick(rng, trackTopics)
		minYear := between(rng, 1, 3)
		next(dept, topic, minYear, between(rng, minYear, 4))
	}
	return tracks, nil
}

// Professors creates a fixed number of professors for every department.
func Professors(rng *rand.Rand, depts []*model.Department) []*model.Professor {
	profs := make([]*model.Professor, 0, len(depts)*professorsPerDept)
	for _, dept := range depts {
		for range professorsPerDept {
			n := len(profs) + 1
			name := personName(rng)
			profs = append(profs, &model.Professor{
				ID:           fmt.Sprintf("PROF-%03d", n),
				Name:         name,
				Title:        pick(rng, professorTitles),
				Email:        fmt.Sprintf("%s.%d@cbnu.ac.kr", strings.ReplaceAll(strings.ToLower(name), " ", "."), n),
				Office:       fmt.Sprintf("%s-%d", dept.Code, between(rng, 200, 450)),
				DepartmentID: dept.ID,
			})
		}
	}
	return profs
}
