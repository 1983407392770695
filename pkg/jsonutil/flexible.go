// Package jsonutil holds helpers for loosely typed JSON attributes.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// IsNull reports whether raw is empty or the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// FlexibleStringValue renders a JSON scalar as a string. Entity attributes come
// back from the API as strings, numbers or booleans depending on the entity
// type, and callers only need a display/parse value. Returns "" for null.
func FlexibleStringValue(raw json.RawMessage) string {
	if IsNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'g', -1, 64)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}

	// Objects and arrays are returned as their compact JSON text.
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return string(raw)
}

// FlexibleIntValue reads an integer that may be encoded as a number or a
// numeric string. The second result is false when no integer is present.
func FlexibleIntValue(raw json.RawMessage) (int, bool) {
	if IsNull(raw) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v, true
		}
	}
	return 0, false
}
