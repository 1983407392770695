package models

// SchoolYear is an academic year of a School entity.
type SchoolYear struct {
	ID              int    `json:"id"`
	School          int    `json:"school"`
	Year            string `json:"year"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ShowOnCalendars bool   `json:"show_on_calendars"`
}

func (y SchoolYear) RecordID() int { return y.ID }

// SchoolTerm is a term within a school year.
type SchoolTerm struct {
	ID              int    `json:"id"`
	School          int    `json:"school"`
	SchoolYear      int    `json:"school_year"`
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ShowOnCalendars bool   `json:"show_on_calendars"`
}

func (t SchoolTerm) RecordID() int { return t.ID }

// SchoolBreak is a holiday or half-term within a school year.
type SchoolBreak struct {
	ID              int    `json:"id"`
	School          int    `json:"school"`
	SchoolYear      int    `json:"school_year"`
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ShowOnCalendars bool   `json:"show_on_calendars"`
}

func (b SchoolBreak) RecordID() int { return b.ID }
