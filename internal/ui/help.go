package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeConfirm:
		return renderConfirmHelp(width)
	case model.ModeInsert:
		return renderInsertHelp(screen, width)
	}

	switch screen {
	case model.ScreenHome:
		return renderHomeHelp(width)
	case model.ScreenNearby:
		return renderNearbyHelp(width)
	case model.ScreenPlaceDetail:
		return renderPlaceDetailHelp(width)
	case model.ScreenHistory:
		return renderHistoryHelp(width)
	case model.ScreenProfile:
		return renderProfileHelp(width)
	case model.ScreenSupport:
		return renderSupportHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderHomeHelp(width int) string {
	keys := []string{
		helpKey("enter", "nearby"),
		helpKey("h", "history"),
		helpKey("1-5", "tabs"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderNearbyHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "details"),
		helpKey("r", "refresh"),
		helpKey("c", "recenter"),
		helpKey("m", "map"),
		helpKey("esc", "home"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderPlaceDetailHelp(width int) string {
	keys := []string{
		helpKey("n", "navigate"),
		helpKey("h/esc", "back"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderHistoryHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("r", "reload"),
		helpKey("x", "clear all"),
		helpKey("enter", "nearby"),
		helpKey("esc", "home"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderProfileHelp(width int) string {
	keys := []string{
		helpKey("i/enter", "edit"),
		helpKey("esc", "home"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderSupportHelp(width int) string {
	keys := []string{
		helpKey("i/enter", "write"),
		helpKey("j/k", "scroll"),
		helpKey("esc", "home"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderInsertHelp(screen model.Screen, width int) string {
	if screen == model.ScreenSupport {
		return renderHelpLine([]string{
			helpKey("enter", "send"),
			helpKey("esc", "stop typing"),
		}, width)
	}
	return renderHelpLine([]string{
		helpKey("tab/↓", "next field"),
		helpKey("shift+tab/↑", "prev field"),
		helpKey("enter", "next/save"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "stop editing"),
	}, width)
}

func renderConfirmHelp(width int) string {
	keys := []string{
		helpKey("y", "confirm"),
		helpKey("n/esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"← / →", "Previous / next tab"},
			{"1 - 5", "Home / Nearby / History / Profile / Support"},
			{"g / G", "Jump to top / bottom"},
			{"esc / h / b", "Go back"},
			{"q", "Quit (from top-level)"},
			{"?", "Toggle help"},
		}),
		titleSection("Nearby Screen"),
		helpSection([]helpItem{
			{"enter / l", "Open place detail"},
			{"r", "Search again around you"},
			{"c", "Recenter on your location"},
			{"m", "Show / hide map"},
		}),
		titleSection("Place Detail"),
		helpSection([]helpItem{
			{"n / enter", "Navigate from current location"},
		}),
		titleSection("History Screen"),
		helpSection([]helpItem{
			{"r", "Reload history"},
			{"x", "Clear all history (asks first)"},
			{"enter", "Go to nearby"},
		}),
		titleSection("Profile and Support"),
		helpSection([]helpItem{
			{"i / enter", "Start typing"},
			{"esc", "Stop typing"},
			{"ctrl+s", "Save profile"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
