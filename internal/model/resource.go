package model

// Book is a library resource recommended by courses.
type Book struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Topic      string `json:"topic"`
	Available  bool   `json:"available"`
	CallNumber string `json:"call_number"`
	Publisher  string `json:"publisher"`
}

func (b *Book) Key() string { return b.ID }

func (b *Book) Properties() map[string]any {
	return map[string]any{
		"id":         b.ID,
		"name":       b.Title,
		"title":      b.Title,
		"author":     b.Author,
		"topic":      b.Topic,
		"available":  b.Available,
		"callNumber": b.CallNumber,
		"publisher":  b.Publisher,
	}
}

// Program is a non-curricular program. TrackIDs and EventIDs are deduplicated
// at generation time.
type Program struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Competency   string   `json:"competency"`
	MinYear      int      `json:"min_year"`
	MaxYear      int      `json:"max_year"`
	Hours        int      `json:"hours"`
	Delivery     string   `json:"delivery"`
	DepartmentID string   `json:"department_id"`
	TrackIDs     []string `json:"track_ids"`
	EventIDs     []string `json:"event_ids"`
}

func (p *Program) Key() string { return p.ID }

func (p *Program) Properties() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"category":     p.Category,
		"competency":   p.Competency,
		"minYear":      int64(p.MinYear),
		"maxYear":      int64(p.MaxYear),
		"hours":        int64(p.Hours),
		"delivery":     p.Delivery,
		"departmentId": p.DepartmentID,
	}
}
