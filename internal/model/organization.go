package model

// College is the top-level academic unit.
type College struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Dean string `json:"dean"`
}

func (c *College) Key() string { return c.ID }

func (c *College) Properties() map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
		"type": c.Type,
		"dean": c.Dean,
	}
}

// Department belongs to exactly one College.
type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Building  string `json:"building"`
	CollegeID string `json:"college_id"`
}

func (d *Department) Key() string { return d.ID }

func (d *Department) Properties() map[string]any {
	return map[string]any{
		"id":        d.ID,
		"name":      d.Name,
		"code":      d.Code,
		"building":  d.Building,
		"collegeId": d.CollegeID,
	}
}

// MajorTrack is a specialization offered by one Department.
type MajorTrack struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	FocusArea    string `json:"focus_area"`
	MinYear      int    `json:"min_year"`
	MaxYear      int    `json:"max_year"`
}

func (t *MajorTrack) Key() string { return t.ID }

func (t *MajorTrack) Properties() map[string]any {
	return map[string]any{
		"id":           t.ID,
		"name":         t.Name,
		"focusArea":    t.FocusArea,
		"minYear":      int64(t.MinYear),
		"maxYear":      int64(t.MaxYear),
		"departmentId": t.DepartmentID,
	}
}

// Professor teaches courses of their own Department.
type Professor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Email        string `json:"email"`
	Office       string `json:"office"`
	DepartmentID string `json:"department_id"`
}

func (p *Professor) Key() string { return p.ID }

func (p *Professor) Properties() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"title":        p.Title,
		"email":        p.Email,
		"office":       p.Office,
		"departmentId": p.DepartmentID,
	}
}
