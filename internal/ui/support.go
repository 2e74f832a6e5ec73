package ui

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waypoint/internal/model"
)

const supportReplyDelay = time.Second

const supportGreeting = "Hello! How can I help you today?"

var cannedReplies = []string{
	"I understand your concern. Let me check that for you.",
	"Thanks for reaching out! I'll help you resolve this issue.",
	"I'm looking into this right now. Give me a moment please.",
	"That's a good question. Here's what you need to know...",
	"I'd be happy to assist you with that request.",
}

var keywordReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"history", "trip"}, "Your last five trips are on the History tab. Press x there to clear them."},
	{[]string{"location", "permission", "gps"}, "Location access is chosen during setup. Start with -lat and -lon to search around another spot."},
	{[]string{"map", "direction", "navigate", "route"}, "Pick a place on the Nearby tab and press n to open directions in your maps app."},
	{[]string{"empty", "no places", "nothing"}, "Nearby places come from OpenStreetMap. Press r on the Nearby tab to search again."},
}

// supportReply answers text with a topical reply, or a canned one chosen by pick.
func supportReply(text string, pick func(n int) int) string {
	lower := strings.ToLower(text)
	for _, kr := range keywordReplies {
		for _, kw := range kr.keywords {
			if strings.Contains(lower, kw) {
				return kr.reply
			}
		}
	}
	return cannedReplies[pick(len(cannedReplies))]
}

type supportMessage struct {
	text     string
	fromUser bool
	at       time.Time
}

// SupportModel is the support chat.
type SupportModel struct {
	messages []supportMessage
	input    textinput.Model
	viewport viewport.Model
	follow   bool

	delay time.Duration
	pick  func(n int) int
	now   func() time.Time
}

// NewSupportModel creates a chat that opens with the greeting.
func NewSupportModel() *SupportModel {
	in := textinput.New()
	in.Placeholder = "Type your message..."
	in.CharLimit = 500
	in.Prompt = "> "

	now := time.Now
	return &SupportModel{
		messages: []supportMessage{{text: supportGreeting, at: now().Add(-time.Hour)}},
		input:    in,
		viewport: viewport.New(0, 0),
		follow:   true,
		delay:    supportReplyDelay,
		pick:     rand.Intn,
		now:      now,
	}
}

// Focus starts typing.
func (m *SupportModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Scroll passes navigation keys to the transcript.
func (m *SupportModel) Scroll(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
	return cmd
}

// Update handles keys while typing.
func (m SupportModel) Update(msg tea.KeyMsg) (SupportModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		return m, func() tea.Msg { return model.FormCancelledMsg{} }
	case "enter":
		return m, m.send()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send posts the typed text and schedules the reply.
func (m *SupportModel) send() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.messages = append(m.messages, supportMessage{text: text, fromUser: true, at: m.now()})
	m.input.Reset()
	m.follow = true

	reply := supportReply(text, m.pick)
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return model.SupportReplyMsg{Text: reply}
	})
}

// Receive appends a support answer.
func (m *SupportModel) Receive(text string) {
	m.messages = append(m.messages, supportMessage{text: text, at: m.now()})
	m.follow = true
}

// View renders the transcript above the input line.
func (m *SupportModel) View(width, height int) string {
	innerWidth := max(width-4, 20)
	m.viewport.Width = innerWidth
	m.viewport.Height = max(height-4, 1)
	m.viewport.SetContent(m.renderMessages(innerWidth))
	if m.follow {
		m.viewport.GotoBottom()
	}

	inputLine := PanelStyle.Padding(0, 1).Width(innerWidth).Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), inputLine)
}

func (m *SupportModel) renderMessages(width int) string {
	bubbleMax := max(width*3/4, 16)
	var blocks []string
	for _, msg := range m.messages {
		bubbleWidth := min(lipgloss.Width(msg.text)+2, bubbleMax)
		stamp := HelpDescStyle.Render(msg.at.Format("03:04 PM"))

		if msg.fromUser {
			bubble := lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Padding(0, 1).
				Width(bubbleWidth).
				Render(msg.text)
			block := lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
			continue
		}

		bubble := lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, 1).
			Width(bubbleWidth).
			Render(msg.text)
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, LabelStyle.Render("Support"), bubble, stamp))
	}
	return strings.Join(blocks, "\n\n")
}
