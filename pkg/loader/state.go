package loader

import "time"

// Status is the fetch status of one record kind.
type Status string

const (
	StatusIdle    Status = "idle"    // never fetched
	StatusLoading Status = "loading" // fetch in flight; cached data, if any, is still served
	StatusSuccess Status = "success"
	StatusError   Status = "error" // last fetch failed; cached data from the last success is kept
)

// State describes what the cache holds for one record kind.
type State struct {
	Status    Status
	Err       error     // last fetch error, nil unless Status is StatusError
	UpdatedAt time.Time // time of the last successful fetch, zero if none
	Records   int       // records cached after the last successful fetch
}

// HasData reports whether a successful fetch has populated the kind.
func (s State) HasData() bool { return !s.UpdatedAt.IsZero() }
