package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "rfc3339 with zone",
			input:    `"2024-12-12T10:00:00+00:00"`,
			expected: time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "naive with microseconds",
			input:    `"2024-12-12T10:00:00.123456"`,
			expected: time.Date(2024, 12, 12, 10, 0, 0, 123456000, time.UTC),
		},
		{
			name:     "space separated",
			input:    `"2024-01-01 08:30:00"`,
			expected: time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "null",
			input:    `null`,
			expected: time.Time{},
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_DateString(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, "20241212", ts.DateString())
}

func TestTimestamp_DisplayString(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     now.Add(-2 * time.Hour),
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     now.AddDate(0, 0, -1),
			expected: "Yesterday",
		},
		{
			name:     "specific date",
			date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: "15 Jun 2024",
		},
		{
			name:     "zero",
			date:     time.Time{},
			expected: "—",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := Timestamp{Time: tt.date}
			assert.Equal(t, tt.expected, ts.displayAt(now))
		})
	}
}
