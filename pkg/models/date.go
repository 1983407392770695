package models

import "time"

// DateLayout is the wire format of date-only fields (date, due_date, dob, ...).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value. Empty input returns the zero time and false.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
