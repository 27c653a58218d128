// Package payload holds the loosely typed JSON field decoders used by request
// bodies. Browser forms send numbers as strings, booleans as checkboxes and
// dates with or without a time part; these types record what arrived and let
// the normalizers decide what to keep.
package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Flag is a boolean that accepts any JSON value and records presence.
type Flag struct {
	Set   bool
	Value bool
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Set = true
	f.Value = truthy(v)
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// FlagOf builds a present Flag.
func FlagOf(v bool) Flag { return Flag{Set: true, Value: v} }

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s != "" && s != "false" && s != "0"
	default:
		return true
	}
}

// Number is a numeric field that may arrive as a number, a numeric string,
// an empty string or garbage. It never fails to decode.
type Number struct {
	Set bool
	raw any
}

func (n *Number) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Set = true
	n.raw = v
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.raw)
}

// NumberOf builds a present Number from any raw JSON-like value.
func NumberOf(v any) Number { return Number{Set: true, raw: v} }

// NonNegative returns the value when it parses as a finite number >= 0.
// Anything else, including absence, reports false.
func (n Number) NonNegative() (float64, bool) {
	if !n.Set {
		return 0, false
	}
	var v float64
	switch t := n.raw.(type) {
	case float64:
		v = t
	case int:
		v = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Time is a timestamp field. Set reports the key was present, Valid that it
// carried a non-empty value; Set && !Valid means an explicit clear.
type Time struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	t.Set = true
	if string(b) == "null" {
		t.Valid = false
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Valid = false
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Valid = true
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// TimeOf builds a present, valid Time.
func TimeOf(v time.Time) Time { return Time{Set: true, Valid: true, Time: v} }

// Ptr returns the timestamp or nil when absent or cleared.
func (t Time) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and the shorter forms HTML date inputs produce.
// Values without an offset are read as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
