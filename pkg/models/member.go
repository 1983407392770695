package models

import "strings"

// Member is a user in the current family.
type Member struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MemberColour string `json:"member_colour"`
}

func (m Member) RecordID() int { return m.ID }

// FullName joins first and last name, skipping empty parts.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Routine is a recurring block of time (school run, bedtime, ...).
type Routine struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Members   []int  `json:"members"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
}

func (r Routine) RecordID() int { return r.ID }
