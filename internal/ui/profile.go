package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
	"waypoint/internal/store"
)

const profileKey = "userProfile"

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ProfileErrors holds one message per invalid field.
type ProfileErrors struct {
	FirstName string
	LastName  string
	Email     string
}

// OK reports whether no field failed validation.
func (e ProfileErrors) OK() bool {
	return e == ProfileErrors{}
}

func validateProfile(p model.Profile) ProfileErrors {
	var errs ProfileErrors
	if strings.TrimSpace(p.FirstName) == "" {
		errs.FirstName = "First name is required"
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs.LastName = "Last name is required"
	}
	switch email := strings.TrimSpace(p.Email); {
	case email == "":
		errs.Email = "Email is required"
	case !emailPattern.MatchString(email):
		errs.Email = "Email is invalid"
	}
	return errs
}

// ProfileModel is the profile form.
type ProfileModel struct {
	inputs       []textinput.Model
	focusedField int
	errors       ProfileErrors
}

// NewProfileModel creates the form, prefilled from a saved profile.
func NewProfileModel(saved model.Profile) *ProfileModel {
	inputs := make([]textinput.Model, 3)

	inputs[0] = textinput.New()
	inputs[0].Placeholder = "Enter your first name"
	inputs[0].CharLimit = 64
	inputs[0].SetValue(saved.FirstName)

	inputs[1] = textinput.New()
	inputs[1].Placeholder = "Enter your last name"
	inputs[1].CharLimit = 64
	inputs[1].SetValue(saved.LastName)

	inputs[2] = textinput.New()
	inputs[2].Placeholder = "Enter your email"
	inputs[2].CharLimit = 128
	inputs[2].SetValue(saved.Email)

	return &ProfileModel{inputs: inputs}
}

// Focus starts editing at the current field.
func (m *ProfileModel) Focus() tea.Cmd {
	return m.inputs[m.focusedField].Focus()
}

// Blur stops editing.
func (m *ProfileModel) Blur() {
	m.inputs[m.focusedField].Blur()
}

func (m *ProfileModel) value() model.Profile {
	return model.Profile{
		FirstName: strings.TrimSpace(m.inputs[0].Value()),
		LastName:  strings.TrimSpace(m.inputs[1].Value()),
		Email:     strings.TrimSpace(m.inputs[2].Value()),
	}
}

// Update handles keys while the form is being edited.
func (m ProfileModel) Update(msg tea.KeyMsg) (ProfileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Blur()
		return m, func() tea.Msg { return model.FormCancelledMsg{} }
	case "tab", "down":
		m.nextField()
		return m, nil
	case "shift+tab", "up":
		m.prevField()
		return m, nil
	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.focusedField < len(m.inputs)-1 {
			m.nextField()
			return m, nil
		}
		return m, m.save()
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	return m, cmd
}

func (m *ProfileModel) save() tea.Cmd {
	p := m.value()
	m.errors = validateProfile(p)
	if !m.errors.OK() {
		return nil
	}
	m.Blur()
	return func() tea.Msg {
		return model.ProfileSavedMsg{Profile: p}
	}
}

func (m *ProfileModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *ProfileModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}

// View renders the form.
func (m *ProfileModel) View(width, height int) string {
	fields := []string{
		LabelStyle.Render("Your Profile"),
		HelpDescStyle.Render("Update your personal information"),
		"",
		renderFormField("First Name *", m.inputs[0], m.errors.FirstName),
		renderFormField("Last Name *", m.inputs[1], m.errors.LastName),
		renderFormField("Email *", m.inputs[2], m.errors.Email),
	}

	return PanelStyle.
		Width(max(width-4, 20)).
		Height(max(height-4, 1)).
		Render(strings.Join(fields, "\n\n"))
}

func renderFormField(label string, input textinput.Model, fieldErr string) string {
	labelStyle := HelpDescStyle
	if input.Focused() {
		labelStyle = LabelStyle
	}
	lines := []string{labelStyle.Render(label), input.View()}
	if fieldErr != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorRed).Render(fieldErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func loadProfile(ctx context.Context, kv store.KV) model.Profile {
	if kv == nil {
		return model.Profile{}
	}
	raw, ok, err := kv.GetItem(ctx, profileKey)
	if err != nil || !ok {
		return model.Profile{}
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Profile{}
	}
	return p
}

func saveProfile(ctx context.Context, kv store.KV, p model.Profile) error {
	if kv == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := kv.SetItem(ctx, profileKey, string(data)); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
