package models

// Alert flags a problem with a task for one user (e.g. a scheduling clash).
type Alert struct {
	ID   int    `json:"id"`
	Task int    `json:"task"`
	User int    `json:"user"`
	Type string `json:"type"`
	Read bool   `json:"read"`
}

func (a Alert) RecordID() int { return a.ID }

// ActionAlert is the equivalent of Alert for a task action.
type ActionAlert struct {
	ID     int    `json:"id"`
	Action int    `json:"action"`
	User   int    `json:"user"`
	Type   string `json:"type"`
	Read   bool   `json:"read"`
}

func (a ActionAlert) RecordID() int { return a.ID }
