package ui

import (
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/util"
)

var homeFeatures = []string{
	"Nearby restaurants, shops and landmarks from OpenStreetMap",
	"Map view of everything within reach",
	"One-key directions in your maps app",
	"Your last five trips, kept on this device",
	"A profile and a support chat, one tab away",
}

func renderHome(width, height int, last *model.Coordinate, recent []model.HistoryEntry) string {
	hero := HeroStyle.Render("Where to next?")

	lines := []string{
		hero,
		"",
		HelpDescStyle.Render("Find shops, restaurants and landmarks around you,"),
		HelpDescStyle.Render("then hand the route to your maps app."),
		"",
	}
	for _, f := range homeFeatures {
		lines = append(lines, LabelStyle.Render("• ")+NormalRowStyle.Render(f))
	}
	lines = append(lines, "")

	if last != nil {
		lines = append(lines, renderField("Last known location", util.FormatCoordinate(*last)))
	}
	if len(recent) > 0 {
		e := recent[0]
		lines = append(lines, renderField("Last trip", e.Destination+" ("+util.FormatDateHuman(e.Date)+" "+e.Time+")"))
	}

	lines = append(lines,
		"",
		HelpKeyStyle.Render("enter")+" "+HelpDescStyle.Render("explore nearby")+"   "+
			HelpKeyStyle.Render("h")+" "+HelpDescStyle.Render("view history"),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
