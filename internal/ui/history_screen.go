package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/util"
)

// HistoryModel represents the navigation history screen.
type HistoryModel struct {
	entries []model.HistoryEntry
	cursor  int
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(entries []model.HistoryEntry) *HistoryModel {
	return &HistoryModel{entries: entries}
}

// Len returns the number of entries shown.
func (m *HistoryModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// MoveDown moves the cursor down.
func (m *HistoryModel) MoveDown() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up.
func (m *HistoryModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// View renders the history list, newest first.
func (m *HistoryModel) View(width, height int, confirming bool) string {
	if len(m.entries) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render("    No navigation history yet.\n    Pick a place on the Nearby tab and press  n.")
	}

	widths := []int{14, 10, max(width-14-10-4, 20)}
	header := renderTableRow([]string{"DATE", "TIME", "ROUTE"}, widths, TableHeaderStyle)

	var rows []string
	for i, e := range m.entries {
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(lipgloss.Color("#232B24"))
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}
		route := fmt.Sprintf("%s → %s", e.Origin, e.Destination)
		rows = append(rows, renderTableRow(
			[]string{util.FormatDateHuman(e.Date), e.Time, util.TruncateString(route, widths[2]-2)},
			widths,
			style,
		))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("Recent trips: %d", len(m.entries)))
	if m.cursor < len(m.entries) {
		e := m.entries[m.cursor]
		status = StatusBarStyle.Render(fmt.Sprintf("Recent trips: %d  ·  %s on %s at %s",
			len(m.entries), e.Destination, util.FormatDate(e.Date), e.Time))
	}
	if confirming {
		status = WarnStyle.Render("Clear all navigation history? (y/n)")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
		"",
		status,
	)
}
