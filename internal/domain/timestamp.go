package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is a backend datetime; naive values are read as UTC
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO datetimes
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// DateString returns date in YYYYMMDD format
func (t Timestamp) DateString() string {
	return t.Format("20060102")
}

// DisplayString returns user-friendly date string
func (t Timestamp) DisplayString() string {
	return t.displayAt(time.Now())
}

func (t Timestamp) displayAt(now time.Time) string {
	if t.IsZero() {
		return "—"
	}

	date := t.In(now.Location())

	if sameDay(date, now) {
		return "Today"
	}

	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return date.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
