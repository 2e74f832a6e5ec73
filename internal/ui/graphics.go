package ui

import (
	"image"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/qeesung/image2ascii/convert"

	"waypoint/internal/model"
	"waypoint/internal/places"
)

var (
	mapBackground = color.RGBA{A: 0xff}
	mapUser       = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	mapPlace      = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	mapSelected   = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
)

// projectToGrid maps a coordinate into a cols x rows cell grid covering bound.
// North is row 0. ok is false when the point falls outside the bound.
func projectToGrid(bound orb.Bound, c model.Coordinate, cols, rows int) (x, y int, ok bool) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	p := orb.Point{c.Longitude, c.Latitude}
	if !bound.Contains(p) {
		return 0, 0, false
	}

	lonSpan := bound.Max.Lon() - bound.Min.Lon()
	latSpan := bound.Max.Lat() - bound.Min.Lat()
	if lonSpan <= 0 || latSpan <= 0 {
		return 0, 0, false
	}

	x = int((p.Lon() - bound.Min.Lon()) / lonSpan * float64(cols-1))
	y = int((bound.Max.Lat() - p.Lat()) / latSpan * float64(rows-1))
	return x, y, true
}

// buildMapImage plots the user and every place as single pixels, one pixel per
// terminal cell, on the search box around center.
func buildMapImage(center model.Coordinate, radius float64, list []model.PlaceRecord, selected, cols, rows int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA(x, y, mapBackground)
		}
	}

	bound := places.BoundingBox(center.Latitude, center.Longitude, radius)
	for i, p := range list {
		if i == selected {
			continue
		}
		if x, y, ok := projectToGrid(bound, p.Coordinate, cols, rows); ok {
			img.SetRGBA(x, y, mapPlace)
		}
	}
	if x, y, ok := projectToGrid(bound, center, cols, rows); ok {
		img.SetRGBA(x, y, mapUser)
	}
	// Drawn last so it is never hidden by another marker.
	if selected >= 0 && selected < len(list) {
		if x, y, ok := projectToGrid(bound, list[selected].Coordinate, cols, rows); ok {
			img.SetRGBA(x, y, mapSelected)
		}
	}
	return img
}

// RenderMap renders the nearby places around center as colored ASCII art.
func RenderMap(center model.Coordinate, radius float64, list []model.PlaceRecord, selected, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	img := buildMapImage(center, radius, list, selected, width, height)
	return convertToASCII(img, width, height)
}

// convertToASCII converts an image to colored ASCII art.
func convertToASCII(img image.Image, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.FitScreen = false
	opts.Colored = true

	return converter.Image2ASCIIString(img, &opts)
}
