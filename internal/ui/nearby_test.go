package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"waypoint/internal/model"
)

func manyPlaces(n int) []model.PlaceRecord {
	out := make([]model.PlaceRecord, n)
	for i := range out {
		out[i] = model.PlaceRecord{
			ID:       fmt.Sprintf("%d-%d", i, i),
			Name:     fmt.Sprintf("Place%02d", i),
			Category: "cafe",
		}
	}
	return out
}

func TestNearbyCursorStaysVisibleOnShortTerminal(t *testing.T) {
	m := NewNearbyModel(manyPlaces(15), false)
	m.View(80, 8, nil, 1000)

	for i := 0; i < 7; i++ {
		m.MoveDown()
	}
	assert.Contains(t, m.View(80, 8, nil, 1000), "Place07")
	assert.Equal(t, 3, m.offset)

	m.JumpToBottom()
	view := m.View(80, 8, nil, 1000)
	assert.Contains(t, view, "Place14")
	assert.NotContains(t, view, "Place09")

	m.JumpToTop()
	assert.Contains(t, m.View(80, 8, nil, 1000), "Place00")
}

func TestNearbyResizeKeepsCursorVisible(t *testing.T) {
	m := NewNearbyModel(manyPlaces(15), false)
	m.View(80, 40, nil, 1000)
	for i := 0; i < 9; i++ {
		m.MoveDown()
	}
	assert.Equal(t, 0, m.offset)

	// Shrinking the terminal scrolls the window to the cursor.
	assert.Contains(t, m.View(80, 6, nil, 1000), "Place09")
	assert.Equal(t, 7, m.offset)
}

func TestNearbySelectedIsNilSafe(t *testing.T) {
	var m *NearbyModel
	_, ok := m.Selected()
	assert.False(t, ok)

	_, ok = NewNearbyModel(nil, true).Selected()
	assert.False(t, ok)
}
