package models

import "time"

// Reference is a stored piece of information (passport number, policy id, ...).
type Reference struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	Group     int       `json:"group"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Reference) RecordID() int      { return r.ID }
func (r Reference) Created() time.Time { return r.CreatedAt }

// ReferenceGroup bundles references and links them to entities.
type ReferenceGroup struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Entities  []int     `json:"entities"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (g ReferenceGroup) RecordID() int      { return g.ID }
func (g ReferenceGroup) Created() time.Time { return g.CreatedAt }
