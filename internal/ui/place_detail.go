package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/util"
)

// PlaceDetailModel represents the place detail screen.
type PlaceDetailModel struct {
	place model.PlaceRecord
}

// NewPlaceDetailModel creates a new place detail model.
func NewPlaceDetailModel(place model.PlaceRecord) *PlaceDetailModel {
	return &PlaceDetailModel{place: place}
}

// View renders the place detail.
func (m *PlaceDetailModel) View(width, height int) string {
	var sections []string

	shortcuts := HelpDescStyle.Render("n navigate  h back")

	var fields []string
	fields = append(fields, renderField("Name", m.place.Name))
	fields = append(fields, renderField("Type", util.FormatCategory(m.place.Category)))

	ratingValue := util.FormatRating(m.place.Rating)
	if m.place.Rating != nil {
		ratingValue = lipgloss.NewStyle().Foreground(ColorYellow).Render(ratingValue)
	}
	fields = append(fields, LabelStyle.Render("Rating:")+" "+ratingValue)
	fields = append(fields, renderField("Location", util.FormatCoordinate(m.place.Coordinate)))
	fields = append(fields, renderField("OSM ID", m.place.PlaceID))

	sections = append(sections, strings.Join(fields, "\n"))

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(width-8, 0)))
	sections = append(sections, divider)

	if m.place.Description != "" {
		sections = append(sections, LabelStyle.Render("About:"))
		sections = append(sections, NormalRowStyle.Render(m.place.Description))
	} else {
		sections = append(sections, HelpDescStyle.Render("No description for this place"))
	}

	content := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
