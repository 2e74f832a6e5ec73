package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/ui"
	"waypoint/internal/util"
)

// OnboardingSettings are the answers saved by the first-run setup.
type OnboardingSettings struct {
	Completed       bool              `json:"completed"`
	LocationGranted bool              `json:"location_granted"`
	Home            *model.Coordinate `json:"home,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepPermission onboardingStep = iota
	stepHome
	stepDone
)

type onboardingModel struct {
	step      onboardingStep
	allow     bool
	existing  *model.Coordinate
	homeInput textinput.Model
	settings  OnboardingSettings
	status    string
	inputErr  string
	width     int
	height    int
}

var obInputStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(ui.ColorAccent).
	Padding(0, 1)

func newOnboardingModel(existing *model.Coordinate) onboardingModel {
	in := textinput.New()
	in.Placeholder = "5.4836, 7.0333"
	in.CharLimit = 64
	in.Prompt = "lat, lon> "
	in.TextStyle = ui.NormalRowStyle
	in.PlaceholderStyle = ui.HelpDescStyle
	in.Cursor.Style = lipgloss.NewStyle().Foreground(ui.ColorText).Background(ui.ColorAccent)
	in.Focus()

	return onboardingModel{
		step:      stepPermission,
		allow:     true,
		existing:  existing,
		homeInput: in,
		settings: OnboardingSettings{
			Completed:       true,
			LocationGranted: true,
		},
	}
}

func (m onboardingModel) Init() tea.Cmd { return nil }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.step {
		case stepPermission:
			switch msg.String() {
			case "y", "Y":
				m.allow = true
				return m.nextStep()
			case "n", "N":
				m.allow = false
				return m.nextStep()
			case "up", "k", "left", "h":
				m.allow = true
				return m, nil
			case "down", "j", "right", "l":
				m.allow = false
				return m, nil
			case "enter":
				// Enter commits the currently selected option
				return m.nextStep()
			case "ctrl+c", "q":
				m.settings.LocationGranted = false
				m.status = "Setup canceled. Location access denied."
				m.step = stepDone
				return m, tea.Quit
			default:
				return m, nil
			}
		case stepHome:
			switch msg.String() {
			case "enter":
				raw := strings.TrimSpace(m.homeInput.Value())
				if raw == "" {
					m.status = "No location saved. Pass -lat and -lon to search nearby."
					m.step = stepDone
					return m, tea.Quit
				}
				home, err := util.ParseCoordinateInput(raw)
				if err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				m.settings.Home = &home
				m.status = "Location saved: " + util.FormatCoordinate(home)
				m.step = stepDone
				return m, tea.Quit
			case "esc":
				m.status = "Skipped location setup. Pass -lat and -lon to search nearby."
				m.step = stepDone
				return m, tea.Quit
			case "ctrl+c":
				m.status = "Setup canceled."
				m.step = stepDone
				return m, tea.Quit
			}
			m.inputErr = ""
			var cmd tea.Cmd
			m.homeInput, cmd = m.homeInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m onboardingModel) nextStep() (tea.Model, tea.Cmd) {
	if !m.allow {
		m.settings.LocationGranted = false
		m.status = "Location access denied. Nearby places are disabled."
		m.step = stepDone
		return m, tea.Quit
	}
	m.settings.LocationGranted = true
	if m.existing != nil {
		m.status = "Using -lat/-lon: " + util.FormatCoordinate(*m.existing)
		m.step = stepDone
		return m, tea.Quit
	}
	m.step = stepHome
	return m, nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	left := "  " + ui.HeaderStyle.Render("waypoint") + ui.BreadcrumbStyle.Render(" › Setup")
	right := ui.BreadcrumbStyle.Render(m.stepLabel()) + "  "
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	header := ui.TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)

	footer := ui.FooterStyle.Width(width).Render(m.footerText())
	content := m.renderContent(width, max(height-4, 8))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m onboardingModel) stepLabel() string {
	switch m.step {
	case stepPermission:
		return "Step 1 of 2"
	case stepHome:
		return "Step 2 of 2"
	default:
		return "Done"
	}
}

func (m onboardingModel) footerText() string {
	switch m.step {
	case stepPermission:
		return "↑↓/jk to choose  y/n enter to confirm  q cancel"
	case stepHome:
		return "enter save  esc skip  ctrl+c cancel"
	default:
		return "Setup complete"
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(72, width-4)

	var body string
	switch m.step {
	case stepPermission:
		options := []string{"Allow location access", "Don't allow"}
		selected := 1
		if m.allow {
			selected = 0
		}
		lines := []string{ui.LabelStyle.Render("Allow waypoint to use your location?"), ""}
		for i, opt := range options {
			if i == selected {
				lines = append(lines, "  "+ui.LabelStyle.Render("→ "+opt))
			} else {
				lines = append(lines, "    "+ui.NormalRowStyle.Render(opt))
			}
		}
		lines = append(lines, "", ui.HelpDescStyle.Render("Your location is only used to find places nearby."))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	case stepHome:
		lines := []string{
			ui.LabelStyle.Render("Where are you?"),
			"",
			ui.HelpDescStyle.Render("This terminal has no GPS, so enter the coordinate to search around."),
			"",
			obInputStyle.Width(max(30, cardWidth-8)).Render(m.homeInput.View()),
		}
		if m.inputErr != "" {
			lines = append(lines, ui.ErrorStyle.Render(m.inputErr))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	default:
		msg := ui.HelpDescStyle.Render(m.status)
		if strings.Contains(strings.ToLower(m.status), "denied") || strings.Contains(m.status, "-lat") {
			msg = ui.WarnStyle.Render(m.status)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, ui.LabelStyle.Render("Setup complete"), "", msg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, ui.PanelStyle.Width(cardWidth).Render(body))
}

func runOnboarding(configDir string, existing *model.Coordinate) (OnboardingSettings, error) {
	prog := tea.NewProgram(newOnboardingModel(existing), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}
