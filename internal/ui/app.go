package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"waypoint/internal/geo"
	"waypoint/internal/launcher"
	"waypoint/internal/model"
	"waypoint/internal/store"
)

// OriginLabel is the origin recorded for every navigation request.
const OriginLabel = "Current Location"

const (
	permissionDeniedText = "Location Permission Denied: this app needs access to your location to show nearby places. Please enable location services in your settings."
	setupFailedText      = "There was a problem getting your location or nearby places. Please try again later."
	recenterFailedText   = "Could not update your current location"
	placesFailedText     = "Could not load nearby places (press r to retry)"
	mapsFailedText       = "Could not open maps application"
	profileSavedText     = "Profile updated successfully"
	profileFailedText    = "Could not save your profile"
)

// PlaceFinder looks up points of interest around a coordinate.
type PlaceFinder interface {
	FindNearbyPlaces(ctx context.Context, lat, lon, radiusMeters float64) ([]model.PlaceRecord, error)
}

// HistoryLog records navigation requests. Its methods never fail.
type HistoryLog interface {
	Load(ctx context.Context) []model.HistoryEntry
	Append(ctx context.Context, origin, destination string)
	Clear(ctx context.Context)
}

// Deps are the collaborators the UI drives.
type Deps struct {
	Finder   PlaceFinder
	History  HistoryLog
	Locator  geo.Locator
	Launcher launcher.Launcher
	Prefs    store.KV
	Logger   *zap.Logger
	Radius   float64
}

// Model is the root Bubble Tea model.
type Model struct {
	finder   PlaceFinder
	history  HistoryLog
	locator  geo.Locator
	launcher launcher.Launcher
	kv       store.KV
	logger   *zap.Logger
	radius   float64

	screen   model.Screen
	mode     model.Mode
	location model.LocationState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// Screen models
	nearby      *NearbyModel
	placeDetail *PlaceDetailModel
	historyView *HistoryModel
	recent      []model.HistoryEntry
	profile     *ProfileModel
	support     *SupportModel

	spinner spinner.Model
	keys    KeyMap
	prefs   UIPreferences
}

// New creates a new root model.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	m := Model{
		finder:   deps.Finder,
		history:  deps.History,
		locator:  deps.Locator,
		launcher: deps.Launcher,
		kv:       deps.Prefs,
		logger:   logger,
		radius:   deps.Radius,
		mode:     model.ModeNav,
		spinner:  s,
		keys:     DefaultKeyMap(),
		prefs:    loadUIPreferences(context.Background(), deps.Prefs),
		profile:  NewProfileModel(loadProfile(context.Background(), deps.Prefs)),
		support:  NewSupportModel(),
	}
	m.screen = m.prefs.LastScreen
	if m.screen == model.ScreenNearby {
		m.location.Phase = model.PhaseRequestingPermission
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, loadHistoryCmd(m.history)}
	if m.location.Phase == model.PhaseRequestingPermission {
		cmds = append(cmds, requestPermissionCmd(m.locator))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		switch m.mode {
		case model.ModeInsert:
			return m.handleInsertMode(msg)
		case model.ModeConfirm:
			return m.handleConfirmMode(msg)
		}
		return m.handleNavMode(msg)

	case model.PermissionResultMsg:
		if msg.Err != nil {
			m.logger.Error("location permission request failed", zap.Error(msg.Err))
			m.location.Phase = model.PhaseFailed
			m.error = setupFailedText
			return m, nil
		}
		granted := msg.Granted
		m.location.PermissionGranted = &granted
		if !granted {
			m.location.Phase = model.PhaseFailed
			m.error = permissionDeniedText
			return m, nil
		}
		m.location.Phase = model.PhaseLocating
		return m, locateCmd(m.locator, geo.AccuracyHigh, false)

	case model.LocationResolvedMsg:
		coord := msg.Coordinate
		m.location.LastKnown = &coord
		if msg.Recenter {
			m.location.Phase = model.PhaseReady
			m.info = "Location updated"
			return m, nil
		}
		m.location.Phase = model.PhaseFindingPlaces
		return m, findPlacesCmd(m.finder, coord, m.radius)

	case model.LocationFailedMsg:
		m.logger.Warn("location unavailable", zap.Error(msg.Err), zap.Bool("recenter", msg.Recenter))
		if msg.Recenter {
			m.location.Phase = model.PhaseReady
			m.error = recenterFailedText
			return m, nil
		}
		m.location.Phase = model.PhaseFailed
		m.error = setupFailedText
		return m, nil

	case model.PlacesLoadedMsg:
		m.nearby = NewNearbyModel(msg.Places, !m.prefs.HideMap)
		m.location.Phase = model.PhaseReady
		m.error = ""
		m.info = fmt.Sprintf("Found %d places nearby", len(msg.Places))
		return m, nil

	case model.PlacesFailedMsg:
		m.logger.Warn("nearby search failed", zap.Error(msg.Err))
		m.location.Phase = model.PhaseFailed
		m.error = placesFailedText
		return m, nil

	case model.HistoryLoadedMsg:
		m.historyView = NewHistoryModel(msg.Entries)
		m.recent = msg.Entries
		return m, nil

	case model.HistoryClearedMsg:
		m.mode = model.ModeNav
		m.historyView = NewHistoryModel(nil)
		m.recent = nil
		m.info = "Navigation history cleared"
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		return m, nil

	case model.ProfileSavedMsg:
		m.mode = model.ModeNav
		if err := saveProfile(context.Background(), m.kv, msg.Profile); err != nil {
			m.logger.Error("could not save profile", zap.Error(err))
			m.error = profileFailedText
			return m, nil
		}
		m.error = ""
		m.info = profileSavedText
		return m, nil

	case model.SupportReplyMsg:
		m.support.Receive(msg.Text)
		return m, nil

	case model.NavigationStartedMsg:
		if msg.Err != nil {
			m.logger.Warn("launcher failed", zap.Error(msg.Err), zap.String("uri", msg.URI))
			m.error = mapsFailedText
		} else {
			m.error = ""
			m.info = "Directions to " + msg.Place.Name + " opened"
		}
		return m, loadHistoryCmd(m.history)
	}

	return m, nil
}

// View renders the current view.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	showTabs := m.screen != model.ScreenPlaceDetail

	// Header: 1 line, Footer: 1 line, Tabs: 2 lines (if shown)
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}

	switch m.screen {
	case model.ScreenHome:
		breadcrumbParts = []string{"Home"}
		content = renderHome(m.width, contentHeight, m.location.LastKnown, m.recent)
	case model.ScreenNearby:
		breadcrumbParts = []string{"Nearby"}
		content = m.renderNearby(contentHeight)
	case model.ScreenPlaceDetail:
		breadcrumbParts = []string{"Nearby", "Detail"}
		if m.placeDetail != nil {
			breadcrumbParts = []string{"Nearby", m.placeDetail.place.Name}
			content = m.placeDetail.View(m.width, contentHeight)
		}
	case model.ScreenHistory:
		breadcrumbParts = []string{"History"}
		if m.historyView != nil {
			content = m.historyView.View(m.width, contentHeight, m.mode == model.ModeConfirm)
		}
	case model.ScreenProfile:
		breadcrumbParts = []string{"Profile"}
		content = m.profile.View(m.width, contentHeight)
	case model.ScreenSupport:
		breadcrumbParts = []string{"Support"}
		content = m.support.View(m.width, contentHeight)
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderNearby(height int) string {
	status := ""
	if m.location.Phase.Busy() {
		status = m.spinner.View() + " " + HelpDescStyle.Render(m.location.Phase.String())
	}

	if m.nearby == nil {
		if status != "" {
			return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, status)
		}
		if m.location.Phase == model.PhaseFailed {
			return EmptyStateStyle.Width(m.width).Height(height).
				Render("    Nearby places are unavailable.\n    Press  r  to try again.")
		}
		return ""
	}

	if status == "" {
		return m.nearby.View(m.width, height, m.location.LastKnown, m.radius)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.nearby.View(m.width, height-1, m.location.LastKnown, m.radius))
}

var tabOrder = []struct {
	name   string
	screen model.Screen
}{
	{"Home", model.ScreenHome},
	{"Nearby", model.ScreenNearby},
	{"History", model.ScreenHistory},
	{"Profile", model.ScreenProfile},
	{"Support", model.ScreenSupport},
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for _, tab := range tabOrder {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("waypoint")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenPlaceDetail {
		return m.handlePlaceDetailNav(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		return m.switchTo(model.ScreenHome)
	case key.Matches(msg, m.keys.Nearby):
		return m.switchTo(model.ScreenNearby)
	case key.Matches(msg, m.keys.History):
		return m.switchTo(model.ScreenHistory)
	case key.Matches(msg, m.keys.Profile):
		return m.switchTo(model.ScreenProfile)
	case key.Matches(msg, m.keys.Support):
		return m.switchTo(model.ScreenSupport)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTo(adjacentTab(m.screen, 1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTo(adjacentTab(m.screen, -1))
	}

	switch m.screen {
	case model.ScreenHome:
		return m.handleHomeNav(msg)
	case model.ScreenNearby:
		return m.handleNearbyNav(msg)
	case model.ScreenHistory:
		return m.handleHistoryNav(msg)
	case model.ScreenProfile:
		return m.handleProfileNav(msg)
	case model.ScreenSupport:
		return m.handleSupportNav(msg)
	}
	return m, nil
}

func (m Model) handleHomeNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "l":
		return m.switchTo(model.ScreenNearby)
	case "h":
		return m.switchTo(model.ScreenHistory)
	}
	return m, nil
}

func (m Model) handleNearbyNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.nearby != nil {
			m.nearby.MoveDown()
		}
	case key.Matches(msg, m.keys.Up):
		if m.nearby != nil {
			m.nearby.MoveUp()
		}
	case key.Matches(msg, m.keys.Top):
		if m.nearby != nil {
			m.nearby.JumpToTop()
		}
	case key.Matches(msg, m.keys.Bottom):
		if m.nearby != nil {
			m.nearby.JumpToBottom()
		}
	case key.Matches(msg, m.keys.Select):
		if place, ok := m.nearby.Selected(); ok {
			m.placeDetail = NewPlaceDetailModel(place)
			m.screen = model.ScreenPlaceDetail
			m.info = ""
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshPlaces()
	case key.Matches(msg, m.keys.Recenter):
		return m.recenter()
	case key.Matches(msg, m.keys.ToggleMap):
		if m.nearby != nil {
			m.nearby.ToggleMap()
			m.prefs.HideMap = !m.nearby.showMap
			m.persistPrefs()
		}
	case key.Matches(msg, m.keys.Back):
		return m.switchTo(model.ScreenHome)
	}
	return m, nil
}

func (m Model) handlePlaceDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Navigate):
		if m.placeDetail == nil {
			return m, nil
		}
		place := m.placeDetail.place
		m.screen = model.ScreenNearby
		m.placeDetail = nil
		return m, navigateCmd(m.history, m.launcher, place)
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenNearby
		m.placeDetail = nil
	}
	return m, nil
}

func (m Model) handleHistoryNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.historyView != nil {
			m.historyView.MoveDown()
		}
	case key.Matches(msg, m.keys.Up):
		if m.historyView != nil {
			m.historyView.MoveUp()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, loadHistoryCmd(m.history)
	case key.Matches(msg, m.keys.Clear):
		if m.historyView.Len() > 0 {
			m.mode = model.ModeConfirm
			m.info = ""
		}
	case key.Matches(msg, m.keys.Select):
		return m.switchTo(model.ScreenNearby)
	case key.Matches(msg, m.keys.Back):
		return m.switchTo(model.ScreenHome)
	}
	return m, nil
}

func (m Model) handleProfileNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		m.mode = model.ModeInsert
		m.info = ""
		return m, m.profile.Focus()
	case key.Matches(msg, m.keys.Back):
		return m.switchTo(model.ScreenHome)
	}
	return m, nil
}

func (m Model) handleSupportNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		m.mode = model.ModeInsert
		return m, m.support.Focus()
	case key.Matches(msg, m.keys.Back):
		return m.switchTo(model.ScreenHome)
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		return m, m.support.Scroll(msg)
	}
	return m, nil
}

// handleInsertMode sends keys to the focused input.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenProfile:
		form, cmd := m.profile.Update(msg)
		m.profile = &form
		return m, cmd
	case model.ScreenSupport:
		chat, cmd := m.support.Update(msg)
		m.support = &chat
		return m, cmd
	}
	m.mode = model.ModeNav
	return m, nil
}

// handleConfirmMode handles the clear-history prompt.
func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = model.ModeNav
		return m, clearHistoryCmd(m.history)
	case key.Matches(msg, m.keys.Cancel):
		m.mode = model.ModeNav
	}
	return m, nil
}

func (m Model) switchTo(screen model.Screen) (tea.Model, tea.Cmd) {
	m.screen = screen
	m.info = ""
	if m.prefs.LastScreen != screen {
		m.prefs.LastScreen = screen
		m.persistPrefs()
	}

	switch screen {
	case model.ScreenNearby:
		if m.location.Phase == model.PhaseIdle {
			return m.startLocationFlow()
		}
	case model.ScreenHistory:
		return m, loadHistoryCmd(m.history)
	}
	return m, nil
}

// startLocationFlow asks for permission unless it was already granted.
func (m Model) startLocationFlow() (tea.Model, tea.Cmd) {
	m.error = ""
	if m.location.PermissionGranted != nil && *m.location.PermissionGranted {
		m.location.Phase = model.PhaseLocating
		return m, locateCmd(m.locator, geo.AccuracyHigh, false)
	}
	m.location.Phase = model.PhaseRequestingPermission
	return m, requestPermissionCmd(m.locator)
}

func (m Model) refreshPlaces() (tea.Model, tea.Cmd) {
	if m.location.Phase.Busy() {
		return m, nil
	}
	if m.location.LastKnown == nil {
		return m.startLocationFlow()
	}
	m.error = ""
	m.info = ""
	m.location.Phase = model.PhaseFindingPlaces
	return m, findPlacesCmd(m.finder, *m.location.LastKnown, m.radius)
}

// recenter refreshes the coordinate without searching again.
func (m Model) recenter() (tea.Model, tea.Cmd) {
	granted := m.location.PermissionGranted != nil && *m.location.PermissionGranted
	if !granted || m.location.LastKnown == nil || m.location.Phase.Busy() {
		return m, nil
	}
	m.error = ""
	m.info = ""
	m.location.Phase = model.PhaseLocating
	return m, locateCmd(m.locator, geo.AccuracyBalanced, true)
}

func (m Model) persistPrefs() {
	if err := saveUIPreferences(context.Background(), m.kv, m.prefs); err != nil {
		m.logger.Warn("could not save preferences", zap.Error(err))
	}
}

func adjacentTab(screen model.Screen, step int) model.Screen {
	for i, tab := range tabOrder {
		if tab.screen == screen {
			next := (i + step + len(tabOrder)) % len(tabOrder)
			return tabOrder[next].screen
		}
	}
	return model.ScreenHome
}

// Commands

func requestPermissionCmd(locator geo.Locator) tea.Cmd {
	return func() tea.Msg {
		granted, err := locator.RequestPermission(context.Background())
		if err != nil {
			return model.PermissionResultMsg{Err: err}
		}
		return model.PermissionResultMsg{Granted: granted}
	}
}

func locateCmd(locator geo.Locator, accuracy geo.Accuracy, recenter bool) tea.Cmd {
	return func() tea.Msg {
		coord, err := locator.CurrentCoordinate(context.Background(), accuracy)
		if err != nil {
			return model.LocationFailedMsg{Err: err, Recenter: recenter}
		}
		return model.LocationResolvedMsg{Coordinate: coord, Recenter: recenter}
	}
}

func findPlacesCmd(finder PlaceFinder, at model.Coordinate, radius float64) tea.Cmd {
	return func() tea.Msg {
		found, err := finder.FindNearbyPlaces(context.Background(), at.Latitude, at.Longitude, radius)
		if err != nil {
			return model.PlacesFailedMsg{Err: err}
		}
		return model.PlacesLoadedMsg{Places: found}
	}
}

func loadHistoryCmd(history HistoryLog) tea.Cmd {
	return func() tea.Msg {
		return model.HistoryLoadedMsg{Entries: history.Load(context.Background())}
	}
}

func clearHistoryCmd(history HistoryLog) tea.Cmd {
	return func() tea.Msg {
		history.Clear(context.Background())
		return model.HistoryClearedMsg{}
	}
}

// navigateCmd records the trip and then hands the destination to the maps app.
func navigateCmd(history HistoryLog, l launcher.Launcher, place model.PlaceRecord) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		history.Append(ctx, OriginLabel, place.Name)

		uri, err := l.Open(ctx, launcher.Destination{
			Latitude:  place.Coordinate.Latitude,
			Longitude: place.Coordinate.Longitude,
			Label:     place.Name,
		})
		return model.NavigationStartedMsg{Place: place, URI: uri, Err: err}
	}
}
