package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"waypoint/internal/model"
)

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a date with humanized relative display.
// "Today", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(date string) string {
	return formatDateHumanAt(date, time.Now())
}

func formatDateHumanAt(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(t).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatRating formats a rating as "4.5 ★" or "—" if nil.
func FormatRating(rating *float64) string {
	if rating == nil {
		return "—"
	}
	s := strconv.FormatFloat(*rating, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + " ★"
}

// FormatCoordinate formats a coordinate as "5.48300, 7.03500".
func FormatCoordinate(c model.Coordinate) string {
	return fmt.Sprintf("%.5f, %.5f", c.Latitude, c.Longitude)
}

// FormatCategory capitalizes the first letter of a category label.
func FormatCategory(category string) string {
	if category == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}

// ParseCoordinateInput parses "lat, lon" or "lat lon" into a coordinate.
func ParseCoordinateInput(input string) (model.Coordinate, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return model.Coordinate{}, fmt.Errorf("empty coordinate")
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 2 {
		return model.Coordinate{}, fmt.Errorf("want \"lat, lon\", got %q", s)
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid latitude %q", fields[0])
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid longitude %q", fields[1])
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return model.Coordinate{}, fmt.Errorf("coordinate out of range")
	}
	return model.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
