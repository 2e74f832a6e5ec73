package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/util"
)

const nearbyPageRows = 10

// NearbyModel represents the nearby places list and map.
type NearbyModel struct {
	places         []model.PlaceRecord
	cursor         int
	offset         int
	showMap        bool
	viewportHeight int
}

// NewNearbyModel creates a new nearby model.
func NewNearbyModel(places []model.PlaceRecord, showMap bool) *NearbyModel {
	return &NearbyModel{
		places:  places,
		showMap: showMap,
	}
}

// Selected returns the place under the cursor.
func (m *NearbyModel) Selected() (model.PlaceRecord, bool) {
	if m == nil || m.cursor < 0 || m.cursor >= len(m.places) {
		return model.PlaceRecord{}, false
	}
	return m.places[m.cursor], true
}

// ToggleMap shows or hides the map panel.
func (m *NearbyModel) ToggleMap() {
	m.showMap = !m.showMap
}

// MoveDown moves the cursor down.
func (m *NearbyModel) MoveDown() {
	if m.cursor < len(m.places)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageRows() {
			m.offset = m.cursor - m.pageRows() + 1
		}
	}
}

// MoveUp moves the cursor up.
func (m *NearbyModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *NearbyModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *NearbyModel) JumpToBottom() {
	if len(m.places) > 0 {
		m.cursor = len(m.places) - 1
		if m.cursor >= m.pageRows() {
			m.offset = m.cursor - m.pageRows() + 1
		}
	}
}

// pageRows is the number of rows the last render showed.
func (m *NearbyModel) pageRows() int {
	if m.viewportHeight <= 0 {
		return nearbyPageRows
	}
	return m.viewportHeight
}

// clampOffset keeps the cursor inside the visible window after a resize.
func (m *NearbyModel) clampOffset() {
	rows := m.pageRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the list with an optional map beside it.
func (m *NearbyModel) View(width, height int, center *model.Coordinate, radius float64) string {
	if len(m.places) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render("    No places found nearby.\n    Press  r  to search again.")
	}

	listWidth := width
	mapWidth := 0
	if m.showMap && center != nil && width >= 60 {
		mapWidth = width / 2
		listWidth = width - mapWidth - 2
	}

	list := m.renderList(listWidth, height)
	if mapWidth == 0 {
		return list
	}

	mapHeight := height - 4
	if mapHeight < 4 {
		return list
	}
	art := RenderMap(*center, radius, m.places, m.cursor, mapWidth-4, mapHeight)
	legend := HelpDescStyle.Render("you ") +
		lipgloss.NewStyle().Foreground(ColorAccent).Render("●") +
		HelpDescStyle.Render("  place ") +
		lipgloss.NewStyle().Foreground(ColorGreen).Render("●") +
		HelpDescStyle.Render("  selected ") +
		lipgloss.NewStyle().Foreground(ColorYellow).Render("●")
	panel := PanelStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, art, legend))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", panel)
}

func (m *NearbyModel) renderList(width, height int) string {
	nameWidth := max(width/2, 12)
	typeWidth := max(width-nameWidth-2, 8)

	header := renderTableRow(
		[]string{"NAME", "TYPE"},
		[]int{nameWidth, typeWidth},
		TableHeaderStyle,
	)

	visibleHeight := max(min(height-3, nearbyPageRows), 1)
	m.viewportHeight = visibleHeight
	m.clampOffset()

	var rows []string
	for i := m.offset; i < len(m.places) && i < m.offset+visibleHeight; i++ {
		p := m.places[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(lipgloss.Color("#232B24"))
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}
		rows = append(rows, renderTableRow(
			[]string{
				util.TruncateString(p.Name, nameWidth-2),
				util.TruncateString(util.FormatCategory(p.Category), typeWidth-2),
			},
			[]int{nameWidth, typeWidth},
			style,
		))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d places  ·  %d/%d", len(m.places), m.cursor+1, len(m.places)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
		"",
		status,
	)
}

// Helper function to render a table row
func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
