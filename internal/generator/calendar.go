package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/cbnu/campus-ontology/internal/model"
)

// Terms returns consecutive Spring/Fall semesters starting in the first
// academic year. Two terms share one year band.
func Terms() []*model.Term {
	terms := make([]*model.Term, 0, termCount)
	year := firstTermYear
	for i := range termCount {
		half, season, start, end := 1, model.SeasonSpring, "03-01", "06-30"
		if i%2 == 1 {
			half, season, start, end = 2, model.SeasonFall, "09-01", "12-30"
		}
		name := fmt.Sprintf("%d-%d", year, half)
		terms = append(terms, &model.Term{
			ID:        "TERM-" + name,
			Name:      name,
			Year:      year,
			Season:    season,
			Sequence:  i + 1,
			YearBand:  i/2 + 1,
			StartDate: fmt.Sprintf("%d-%s", year, start),
			EndDate:   fmt.Sprintf("%d-%s", year, end),
		})
		if half == 2 {
			year++
		}
	}
	return terms
}

// AcademicEvents creates one event per template in every term.
func AcademicEvents(rng *rand.Rand, terms []*model.Term) []*model.AcademicEvent {
	events := make([]*model.AcademicEvent, 0, len(terms)*len(eventTemplates))
	for _, term := range terms {
		for _, tpl := range eventTemplates {
			focus := tpl.yearFocus
			if focus == 0 {
				focus = between(rng, 1, 4)
			}
			events = append(events, &model.AcademicEvent{
				ID:        fmt.Sprintf("EVT-%s-%s", term.ID, tpl.abbr),
				Name:      term.Name + " " + tpl.name,
				TermID:    term.ID,
				EventType: tpl.name,
				StartWeek: tpl.startWeek,
				EndWeek:   tpl.endWeek,
				YearFocus: focus,
			})
		}
	}
	return events
}
