package model

// Season is the half of the academic year a Term covers.
type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonFall   Season = "Fall"
)

// Term is one semester. YearBand maps the term to the student year level it
// is typically taken in.
type Term struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Season    Season `json:"season"`
	Sequence  int    `json:"sequence"`
	YearBand  int    `json:"year_band"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (t *Term) Key() string { return t.ID }

func (t *Term) Properties() map[string]any {
	return map[string]any{
		"id":        t.ID,
		"name":      t.Name,
		"year":      int64(t.Year),
		"season":    string(t.Season),
		"sequence":  int64(t.Sequence),
		"yearBand":  int64(t.YearBand),
		"startDate": t.StartDate,
		"endDate":   t.EndDate,
	}
}

// AcademicEvent is a dated milestone inside a Term.
type AcademicEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TermID    string `json:"term_id"`
	EventType string `json:"event_type"`
	StartWeek int    `json:"start_week"`
	EndWeek   int    `json:"end_week"`
	YearFocus int    `json:"year_focus"`
}

func (e *AcademicEvent) Key() string { return e.ID }

func (e *AcademicEvent) Properties() map[string]any {
	return map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"eventType": e.EventType,
		"termId":    e.TermID,
		"startWeek": int64(e.StartWeek),
		"endWeek":   int64(e.EndWeek),
		"yearFocus": int64(e.YearFocus),
	}
}
