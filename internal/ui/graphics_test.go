package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/internal/model"
	"waypoint/internal/places"
)

func TestProjectToGrid(t *testing.T) {
	center := model.Coordinate{Latitude: 10, Longitude: 20}
	bound := places.BoundingBox(center.Latitude, center.Longitude, 111000)

	x, y, ok := projectToGrid(bound, center, 11, 11)
	require.True(t, ok)
	assert.Equal(t, 5, x)
	assert.Equal(t, 5, y)

	// North-west corner is the origin.
	x, y, ok = projectToGrid(bound, model.Coordinate{Latitude: 11, Longitude: 19}, 11, 11)
	require.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y, ok = projectToGrid(bound, model.Coordinate{Latitude: 9, Longitude: 21}, 11, 11)
	require.True(t, ok)
	assert.Equal(t, 10, x)
	assert.Equal(t, 10, y)

	_, _, ok = projectToGrid(bound, model.Coordinate{Latitude: 12, Longitude: 20}, 11, 11)
	assert.False(t, ok)

	_, _, ok = projectToGrid(bound, center, 0, 11)
	assert.False(t, ok)
}

func TestBuildMapImageMarkers(t *testing.T) {
	center := model.Coordinate{Latitude: 10, Longitude: 20}
	list := []model.PlaceRecord{
		{Name: "A", Coordinate: model.Coordinate{Latitude: 11, Longitude: 19}},
		{Name: "B", Coordinate: model.Coordinate{Latitude: 9, Longitude: 21}},
		{Name: "far", Coordinate: model.Coordinate{Latitude: 40, Longitude: 20}},
	}

	img := buildMapImage(center, 111000, list, 1, 11, 11)
	assert.Equal(t, 11, img.Bounds().Dx())
	assert.Equal(t, 11, img.Bounds().Dy())

	assert.Equal(t, mapPlace, img.RGBAAt(0, 0))
	assert.Equal(t, mapSelected, img.RGBAAt(10, 10))
	assert.Equal(t, mapUser, img.RGBAAt(5, 5))
	assert.Equal(t, mapBackground, img.RGBAAt(3, 7))
}

func TestRenderMapTooSmall(t *testing.T) {
	assert.Empty(t, RenderMap(model.Coordinate{}, 1000, nil, 0, 1, 10))
	assert.NotEmpty(t, RenderMap(model.Coordinate{}, 1000, nil, 0, 20, 8))
}
