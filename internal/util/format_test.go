package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"waypoint/internal/model"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 09, 2024", FormatDate("2024-03-09"))
	assert.Equal(t, "Unknown", FormatDate(" "))
	assert.Equal(t, "yesterday-ish", FormatDate("yesterday-ish"))
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		want string
	}{
		{"2024-03-09", "Today"},
		{"2024-03-08", "Yesterday"},
		{"2024-03-05", "4d ago"},
		{"2024-01-15", "Jan 15"},
		{"2023-12-31", "Dec 31 '23"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDateHumanAt(tt.date, now), "date %q", tt.date)
	}
}

func TestFormatRating(t *testing.T) {
	r := 4.0
	assert.Equal(t, "—", FormatRating(nil))
	assert.Equal(t, "4 ★", FormatRating(&r))
}

func TestFormatCoordinateAndCategory(t *testing.T) {
	assert.Equal(t, "5.48300, 7.03500", FormatCoordinate(model.Coordinate{Latitude: 5.483, Longitude: 7.035}))
	assert.Equal(t, "Place of_worship", FormatCategory("place of_worship"))
	assert.Equal(t, "", FormatCategory(""))
}

func TestParseCoordinateInput(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Coordinate
		wantErr bool
	}{
		{"5.48, 7.03", model.Coordinate{Latitude: 5.48, Longitude: 7.03}, false},
		{"-33.9 151.2", model.Coordinate{Latitude: -33.9, Longitude: 151.2}, false},
		{"", model.Coordinate{}, true},
		{"5.48", model.Coordinate{}, true},
		{"north, east", model.Coordinate{}, true},
		{"95, 10", model.Coordinate{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCoordinateInput(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
