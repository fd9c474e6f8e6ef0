package generator

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/model"
)

// Books creates the library catalogue.
func Books(rng *rand.Rand) []*model.Book {
	books := make([]*model.Book, 0, bookCount)
	for i := range bookCount {
		topic := pick(rng, bookTopics)
		books = append(books, &model.Book{
			ID:         fmt.Sprintf("BOOK-%04d", i),
			Title:      fmt.Sprintf("%s Insights Vol %d", topic, i%25+1),
			Author:     personName(rng),
			Topic:      topic,
			Available:  rng.Float64() > 0.25,
			CallNumber: fmt.Sprintf("%s-%04d", strings.ToUpper(topic[:min(3, len(topic))]), i),
			Publisher:  pick(rng, publishers),
		})
	}
	return books
}

// Programs creates one program per track and pads with programs for random
// tracks. Each program is linked to up to two events whose year focus lies in
// the program's year range.
func Programs(rng *rand.Rand, tracks []*model.MajorTrack, events []*model.AcademicEvent) ([]*model.Program, error) {
	if len(tracks) == 0 {
		return nil, apperrors.NewGenerationError("programs", "no major tracks")
	}

	eventsByYear := make(map[int][]*model.AcademicEvent)
	for _, e := range events {
		eventsByYear[e.YearFocus] = append(eventsByYear[e.YearFocus], e)
	}

	programs := make([]*model.Program, 0, max(minPrograms, len(tracks)))
	build := func(track *model.MajorTrack) {
		n := len(programs)
		minYear := between(rng, 1, 3)
		maxYear := between(rng, minYear, 4)

		var candidates []*model.AcademicEvent
		for y := minYear; y <= maxYear; y++ {
			candidates = append(candidates, eventsByYear[y]...)
		}
		if len(candidates) == 0 {
			candidates = events
		}
		selected := sample(rng, candidates, 2)

		trackIDs := []string{track.ID}
		if rng.Float64() < 0.4 {
			if extra := pick(rng, tracks).ID; !slices.Contains(trackIDs, extra) {
				trackIDs = append(trackIDs, extra)
			}
		}

		programs = append(programs, &model.Program{
			ID:           fmt.Sprintf("PRG-%03d", n),
			Name:         fmt.Sprintf("%s Program %02d", pick(rng, programCategories), n),
			Category:     pick(rng, programCategories),
			Competency:   pick(rng, competencies),
			MinYear:      minYear,
			MaxYear:      maxYear,
			Hours:        between(rng, 12, 40),
			Delivery:     pick(rng, programDelivery),
			DepartmentID: track.DepartmentID,
			TrackIDs:     trackIDs,
			EventIDs:     keys(selected),
		})
	}

	for _, track := range tracks {
		build(track)
	}
	for len(programs) < minPrograms {
		build(pick(rng, tracks))
	}
	return programs, nil
}
