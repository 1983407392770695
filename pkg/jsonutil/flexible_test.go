package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name  string
		input json.RawMessage
		want  string
	}{
		{name: "string", input: json.RawMessage(`"2021-05-01"`), want: "2021-05-01"},
		{name: "integer", input: json.RawMessage(`42`), want: "42"},
		{name: "float", input: json.RawMessage(`3.5`), want: "3.5"},
		{name: "bool", input: json.RawMessage(`true`), want: "true"},
		{name: "null", input: json.RawMessage(`null`), want: ""},
		{name: "empty", input: nil, want: ""},
		{name: "array", input: json.RawMessage(`[1, 2]`), want: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlexibleStringValue(tt.input))
		})
	}
}

func TestFlexibleIntValue(t *testing.T) {
	n, ok := FlexibleIntValue(json.RawMessage(`7`))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = FlexibleIntValue(json.RawMessage(`"12"`))
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = FlexibleIntValue(json.RawMessage(`"twelve"`))
	assert.False(t, ok)

	_, ok = FlexibleIntValue(json.RawMessage(` null `))
	assert.False(t, ok)
}
