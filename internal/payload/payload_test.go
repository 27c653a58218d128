package payload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Flag   Flag   `json:"flag"`
	Number Number `json:"number"`
	When   Time   `json:"when"`
}

func decode(t *testing.T, body string) sample {
	t.Helper()
	var s sample
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return s
}

func TestFlag(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"flag": true}`, true},
		{`{"flag": false}`, false},
		{`{"flag": "true"}`, true},
		{`{"flag": "false"}`, false},
		{`{"flag": "0"}`, false},
		{`{"flag": ""}`, false},
		{`{"flag": 1}`, true},
		{`{"flag": 0}`, false},
		{`{"flag": null}`, false},
	}
	for _, tt := range tests {
		s := decode(t, tt.body)
		assert.True(t, s.Flag.Set, tt.body)
		assert.Equal(t, tt.want, s.Flag.Value, tt.body)
	}

	assert.False(t, decode(t, `{}`).Flag.Set)
}

func TestNumber_NonNegative(t *testing.T) {
	tests := []struct {
		body string
		want float64
		ok   bool
	}{
		{`{"number": 100}`, 100, true},
		{`{"number": 0}`, 0, true},
		{`{"number": "12.5"}`, 12.5, true},
		{`{"number": " 7 "}`, 7, true},
		{`{"number": ""}`, 0, false},
		{`{"number": "abc"}`, 0, false},
		{`{"number": -1}`, 0, false},
		{`{"number": "-3"}`, 0, false},
		{`{"number": null}`, 0, false},
		{`{"number": true}`, 0, false},
		{`{"number": "NaN"}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		v, ok := decode(t, tt.body).Number.NonNegative()
		assert.Equal(t, tt.ok, ok, tt.body)
		assert.Equal(t, tt.want, v, tt.body)
	}
}

func TestTime(t *testing.T) {
	s := decode(t, `{"when": "2024-01-02"}`)
	assert.True(t, s.When.Set)
	assert.True(t, s.When.Valid)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s.When.Time)

	s = decode(t, `{"when": "2024-01-02T10:30:00-05:00"}`)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC), s.When.Time)

	s = decode(t, `{"when": null}`)
	assert.True(t, s.When.Set)
	assert.False(t, s.When.Valid)
	assert.Nil(t, s.When.Ptr())

	s = decode(t, `{"when": ""}`)
	assert.True(t, s.When.Set)
	assert.False(t, s.When.Valid)

	var bad sample
	assert.Error(t, json.Unmarshal([]byte(`{"when": "tomorrow"}`), &bad))
}

func TestRules(t *testing.T) {
	assert.True(t, IsHexColor("#3b82f6"))
	assert.True(t, IsHexColor("#ABCDEF"))
	assert.False(t, IsHexColor("3b82f6"))
	assert.False(t, IsHexColor("#3b82f"))
	assert.False(t, IsHexColor("#zzzzzz"))

	assert.True(t, IsEmail("ana@example.com"))
	assert.False(t, IsEmail("ana@example"))
	assert.False(t, IsEmail("ana @example.com"))

	assert.True(t, IsHTTPURL("https://example.com"))
	assert.True(t, IsHTTPURL("http://x"))
	assert.False(t, IsHTTPURL("ftp://example.com"))
	assert.False(t, IsHTTPURL("example.com"))

	assert.False(t, TooLong("ñandú", 5))
	assert.True(t, TooLong("ñandús", 5))

	blank := "   "
	assert.Nil(t, Optional(&blank))
	assert.Nil(t, Optional(nil))
	padded := "  x "
	assert.Equal(t, "x", *Optional(&padded))
}
