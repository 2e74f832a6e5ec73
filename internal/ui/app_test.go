package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"waypoint/internal/geo"
	"waypoint/internal/launcher"
	"waypoint/internal/model"
	"waypoint/internal/store"
)

type fakeFinder struct {
	places []model.PlaceRecord
	err    error
	calls  []float64
}

func (f *fakeFinder) FindNearbyPlaces(_ context.Context, lat, lon, radius float64) ([]model.PlaceRecord, error) {
	f.calls = append(f.calls, radius)
	return f.places, f.err
}

type fakeHistory struct {
	entries []model.HistoryEntry
	cleared int
}

func (h *fakeHistory) Load(context.Context) []model.HistoryEntry {
	return h.entries
}

func (h *fakeHistory) Append(_ context.Context, origin, destination string) {
	h.entries = append([]model.HistoryEntry{{Origin: origin, Destination: destination}}, h.entries...)
}

func (h *fakeHistory) Clear(context.Context) {
	h.entries = nil
	h.cleared++
}

type brokenLocator struct{}

func (brokenLocator) RequestPermission(context.Context) (bool, error) {
	return false, errors.New("location service unavailable")
}

func (brokenLocator) CurrentCoordinate(context.Context, geo.Accuracy) (model.Coordinate, error) {
	return model.Coordinate{}, errors.New("location service unavailable")
}

type failingLauncher struct{}

func (failingLauncher) Open(context.Context, launcher.Destination) (string, error) {
	return "geo:0,0?q=1,2(X)", errors.New("no handler")
}

var here = model.Coordinate{Latitude: 5.4836, Longitude: 7.0333}

func samplePlaces() []model.PlaceRecord {
	return []model.PlaceRecord{
		{ID: "1-0", Name: "Library", Category: "library", Coordinate: model.Coordinate{Latitude: 5.49, Longitude: 7.04}},
		{ID: "2-1", Name: "Gym", Category: "fitness centre", Coordinate: model.Coordinate{Latitude: 5.47, Longitude: 7.02}},
	}
}

type harness struct {
	finder   *fakeFinder
	history  *fakeHistory
	launcher launcher.Launcher
	kv       *store.Memory
	locator  geo.Locator
	logger   *zap.Logger
}

func newHarness() *harness {
	return &harness{
		finder:   &fakeFinder{places: samplePlaces()},
		history:  &fakeHistory{},
		launcher: launcher.NewDryRun(launcher.PlatformAndroid),
		kv:       store.NewMemory(),
		locator:  geo.NewStaticLocator(true, &here),
	}
}

func (h *harness) model() Model {
	return New(Deps{
		Finder:   h.finder,
		History:  h.history,
		Locator:  h.locator,
		Launcher: h.launcher,
		Prefs:    h.kv,
		Logger:   h.logger,
		Radius:   15000,
	})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	if k == "enter" {
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// drain runs cmd and feeds its message back until no command is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		m, cmd = update(t, m, cmd())
	}
	return m
}

func loadedNearby(t *testing.T, h *harness) Model {
	t.Helper()
	m := h.model()
	m, cmd := press(t, m, "2")
	m = drain(t, m, cmd)
	require.Equal(t, model.PhaseReady, m.location.Phase)
	return m
}

func TestNearbyFlowSteps(t *testing.T) {
	h := newHarness()
	m := h.model()
	assert.Equal(t, model.ScreenHome, m.screen)

	m, cmd := press(t, m, "2")
	assert.Equal(t, model.ScreenNearby, m.screen)
	assert.Equal(t, model.PhaseRequestingPermission, m.location.Phase)

	msg := cmd()
	assert.Equal(t, model.PermissionResultMsg{Granted: true}, msg)
	m, cmd = update(t, m, msg)
	assert.Equal(t, model.PhaseLocating, m.location.Phase)
	require.NotNil(t, m.location.PermissionGranted)
	assert.True(t, *m.location.PermissionGranted)

	msg = cmd()
	assert.Equal(t, model.LocationResolvedMsg{Coordinate: here}, msg)
	m, cmd = update(t, m, msg)
	assert.Equal(t, model.PhaseFindingPlaces, m.location.Phase)
	require.NotNil(t, m.location.LastKnown)

	m, cmd = update(t, m, cmd())
	assert.Nil(t, cmd)
	assert.Equal(t, model.PhaseReady, m.location.Phase)
	assert.Equal(t, []float64{15000}, h.finder.calls)
	require.NotNil(t, m.nearby)
	assert.Len(t, m.nearby.places, 2)
	assert.Empty(t, m.error)
}

func TestPermissionDeniedStopsFlow(t *testing.T) {
	h := newHarness()
	h.locator = geo.NewStaticLocator(false, &here)
	m := h.model()

	m, cmd := press(t, m, "2")
	m = drain(t, m, cmd)

	assert.Equal(t, model.PhaseFailed, m.location.Phase)
	assert.Contains(t, m.error, "Location Permission Denied")
	assert.Empty(t, h.finder.calls)
	assert.Nil(t, m.location.LastKnown)
}

func TestPermissionErrorIsLoggedAndFails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHarness()
	h.locator = brokenLocator{}
	h.logger = zap.New(core)
	m := h.model()

	m, cmd := press(t, m, "2")
	msg := cmd()
	result, ok := msg.(model.PermissionResultMsg)
	require.True(t, ok)
	assert.Error(t, result.Err)

	m, cmd = update(t, m, msg)
	assert.Nil(t, cmd)
	assert.Equal(t, model.PhaseFailed, m.location.Phase)
	assert.Equal(t, setupFailedText, m.error)
	assert.Nil(t, m.location.PermissionGranted)
	assert.Empty(t, h.finder.calls)
	assert.Equal(t, 1, logs.FilterMessage("location permission request failed").Len())
}

func TestLocationFailureShowsSetupError(t *testing.T) {
	h := newHarness()
	h.locator = geo.NewStaticLocator(true, nil)
	m := h.model()

	m, cmd := press(t, m, "2")
	m = drain(t, m, cmd)

	assert.Equal(t, model.PhaseFailed, m.location.Phase)
	assert.Equal(t, setupFailedText, m.error)
	assert.Empty(t, h.finder.calls)
}

func TestPlacesFailureThenRetry(t *testing.T) {
	h := newHarness()
	h.finder.err = errors.New("upstream 429")
	m := h.model()

	m, cmd := press(t, m, "2")
	m = drain(t, m, cmd)
	assert.Equal(t, model.PhaseFailed, m.location.Phase)
	assert.Equal(t, placesFailedText, m.error)
	assert.Nil(t, m.nearby)

	h.finder.err = nil
	m, cmd = press(t, m, "r")
	assert.Equal(t, model.PhaseFindingPlaces, m.location.Phase)
	assert.Empty(t, m.error)
	m = drain(t, m, cmd)

	assert.Equal(t, model.PhaseReady, m.location.Phase)
	assert.Len(t, h.finder.calls, 2)
	require.NotNil(t, m.nearby)
}

func TestRecenterDoesNotSearchAgain(t *testing.T) {
	h := newHarness()
	m := loadedNearby(t, h)

	m, cmd := press(t, m, "c")
	assert.Equal(t, model.PhaseLocating, m.location.Phase)
	msg := cmd()
	assert.Equal(t, model.LocationResolvedMsg{Coordinate: here, Recenter: true}, msg)

	m, cmd = update(t, m, msg)
	assert.Nil(t, cmd)
	assert.Equal(t, model.PhaseReady, m.location.Phase)
	assert.Equal(t, "Location updated", m.info)
	assert.Len(t, h.finder.calls, 1)
}

func TestNavigateRecordsHistoryThenOpensMaps(t *testing.T) {
	h := newHarness()
	m := loadedNearby(t, h)

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "enter")
	require.Equal(t, model.ScreenPlaceDetail, m.screen)
	assert.Equal(t, "Gym", m.placeDetail.place.Name)

	m, cmd := press(t, m, "n")
	assert.Equal(t, model.ScreenNearby, m.screen)
	require.NotNil(t, cmd)

	msg := cmd()
	started, ok := msg.(model.NavigationStartedMsg)
	require.True(t, ok)
	assert.NoError(t, started.Err)
	assert.Equal(t, "geo:0,0?q=5.47,7.02(Gym)", started.URI)

	require.Len(t, h.history.entries, 1)
	assert.Equal(t, "Current Location", h.history.entries[0].Origin)
	assert.Equal(t, "Gym", h.history.entries[0].Destination)
	assert.Equal(t, []string{started.URI}, h.launcher.(*launcher.DryRun).Opened())

	m = drain(t, m, func() tea.Msg { return msg })
	assert.Empty(t, m.error)
	assert.Equal(t, 1, m.historyView.Len())
}

func TestNavigateLauncherFailureKeepsHistory(t *testing.T) {
	h := newHarness()
	h.launcher = failingLauncher{}
	m := loadedNearby(t, h)

	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "n")
	m = drain(t, m, cmd)

	assert.Equal(t, mapsFailedText, m.error)
	require.Len(t, h.history.entries, 1)
	assert.Equal(t, "Library", h.history.entries[0].Destination)
}

func TestDetailBackReturnsToList(t *testing.T) {
	h := newHarness()
	m := loadedNearby(t, h)

	m, _ = press(t, m, "enter")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, model.ScreenNearby, m.screen)
	assert.Empty(t, h.history.entries)
}

func TestHistoryClearNeedsConfirmation(t *testing.T) {
	h := newHarness()
	h.history.entries = []model.HistoryEntry{
		{ID: "2", Origin: "Current Location", Destination: "Gym"},
		{ID: "1", Origin: "Current Location", Destination: "Library"},
	}
	m := h.model()

	m, cmd := press(t, m, "3")
	m = drain(t, m, cmd)
	require.Equal(t, model.ScreenHistory, m.screen)
	assert.Equal(t, 2, m.historyView.Len())

	m, _ = press(t, m, "x")
	assert.Equal(t, model.ModeConfirm, m.mode)
	m, cmd = press(t, m, "n")
	assert.Nil(t, cmd)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, 0, h.history.cleared)

	m, _ = press(t, m, "x")
	m, cmd = press(t, m, "y")
	m = drain(t, m, cmd)

	assert.Equal(t, 1, h.history.cleared)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, 0, m.historyView.Len())
	assert.Equal(t, "Navigation history cleared", m.info)
}

func TestClearIgnoredWhenHistoryEmpty(t *testing.T) {
	h := newHarness()
	m := h.model()

	m, cmd := press(t, m, "3")
	m = drain(t, m, cmd)
	m, _ = press(t, m, "x")
	assert.Equal(t, model.ModeNav, m.mode)
}

func TestPrefsRestoreLastScreenAndMap(t *testing.T) {
	h := newHarness()
	m := loadedNearby(t, h)

	assert.True(t, m.nearby.showMap)
	m, _ = press(t, m, "m")
	assert.False(t, m.nearby.showMap)

	restored := h.model()
	assert.Equal(t, model.ScreenNearby, restored.screen)
	assert.Equal(t, model.PhaseRequestingPermission, restored.location.Phase)
	assert.True(t, restored.prefs.HideMap)
}

func TestTabsWrapAround(t *testing.T) {
	assert.Equal(t, model.ScreenSupport, adjacentTab(model.ScreenHome, -1))
	assert.Equal(t, model.ScreenHome, adjacentTab(model.ScreenSupport, 1))
	assert.Equal(t, model.ScreenProfile, adjacentTab(model.ScreenHistory, 1))
	assert.Equal(t, model.ScreenNearby, adjacentTab(model.ScreenHome, 1))
}

func TestViewRendersEveryScreen(t *testing.T) {
	h := newHarness()
	m := loadedNearby(t, h)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Contains(t, m.View(), "Library")

	m, _ = press(t, m, "enter")
	assert.Contains(t, m.View(), "Library")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := press(t, m, "3")
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "No navigation history yet")

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "Help")
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile model.Profile
		want    ProfileErrors
	}{
		{"valid", model.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}, ProfileErrors{}},
		{"all blank", model.Profile{FirstName: " ", Email: "\t"}, ProfileErrors{
			FirstName: "First name is required",
			LastName:  "Last name is required",
			Email:     "Email is required",
		}},
		{"bad email", model.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@example"}, ProfileErrors{
			Email: "Email is invalid",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateProfile(tt.profile)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == ProfileErrors{}, got.OK())
		})
	}
}

func TestProfileEditAndSave(t *testing.T) {
	h := newHarness()
	m := h.model()

	m, _ = press(t, m, "4")
	require.Equal(t, model.ScreenProfile, m.screen)
	m, _ = press(t, m, "i")
	require.Equal(t, model.ModeInsert, m.mode)

	// Tab keys stay inside the form while typing.
	m = typeText(t, m, "Ada")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Obi")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "ada@example")
	assert.Equal(t, model.ScreenProfile, m.screen)

	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, "Email is invalid", m.profile.errors.Email)
	assert.Equal(t, model.ModeInsert, m.mode)
	assert.Contains(t, m.profile.View(80, 30), "Email is invalid")

	m = typeText(t, m, ".com")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	m = drain(t, m, cmd)

	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, profileSavedText, m.info)
	assert.True(t, m.profile.errors.OK())

	want := model.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}
	assert.Equal(t, want, loadProfile(context.Background(), h.kv))
	assert.Equal(t, want, h.model().profile.value())
}

func TestProfileEscLeavesInsertMode(t *testing.T) {
	h := newHarness()
	m := h.model()

	m, _ = press(t, m, "4")
	m, _ = press(t, m, "e")
	m = typeText(t, m, "q")
	assert.Equal(t, model.ModeInsert, m.mode)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = drain(t, m, cmd)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "q", m.profile.value().FirstName)
	assert.Equal(t, model.Profile{}, loadProfile(context.Background(), h.kv))
}

func TestSupportReply(t *testing.T) {
	pickSecond := func(int) int { return 1 }

	assert.Equal(t, cannedReplies[1], supportReply("hello there", pickSecond))
	assert.Contains(t, supportReply("How do I clear my trip HISTORY?", pickSecond), "History tab")
	assert.Contains(t, supportReply("the map will not open", pickSecond), "press n")
	assert.Contains(t, supportReply("location permission", pickSecond), "-lat")
}

func TestSupportChatRepliesAfterDelay(t *testing.T) {
	h := newHarness()
	m := h.model()

	m, _ = press(t, m, "5")
	require.Equal(t, model.ScreenSupport, m.screen)
	require.Len(t, m.support.messages, 1)
	assert.Equal(t, supportGreeting, m.support.messages[0].text)

	m, _ = press(t, m, "i")
	require.Equal(t, model.ModeInsert, m.mode)
	m.support.delay = 0
	m.support.pick = func(int) int { return 0 }

	// Blank input is not sent.
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Len(t, m.support.messages, 1)

	m = typeText(t, m, "where did my trips go")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	require.Len(t, m.support.messages, 2)
	assert.True(t, m.support.messages[1].fromUser)
	assert.Empty(t, m.support.input.Value())

	msg := cmd()
	assert.Equal(t, model.SupportReplyMsg{Text: keywordReplies[0].reply}, msg)
	m, _ = update(t, m, msg)
	require.Len(t, m.support.messages, 3)
	assert.False(t, m.support.messages[2].fromUser)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Support")
	assert.Contains(t, view, "where did my trips go")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = drain(t, m, cmd)
	assert.Equal(t, model.ModeNav, m.mode)
}

func TestHistoryStatusShowsSelectedTrip(t *testing.T) {
	hv := NewHistoryModel([]model.HistoryEntry{
		{ID: "2", Origin: OriginLabel, Destination: "Gym", Date: "2024-03-05", Time: "09:15 AM"},
		{ID: "1", Origin: OriginLabel, Destination: "Library", Date: "2024-03-04", Time: "06:40 PM"},
	})

	assert.Contains(t, hv.View(100, 20, false), "Gym on Mar 05, 2024 at 09:15 AM")

	hv.MoveDown()
	view := hv.View(100, 20, false)
	assert.Contains(t, view, "Library on Mar 04, 2024 at 06:40 PM")

	assert.Contains(t, hv.View(100, 20, true), "Clear all navigation history? (y/n)")
}
