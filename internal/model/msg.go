package model

// Bubble Tea message types

// PermissionResultMsg is sent after the locator answers a permission request.
// Err is set when the locator could not answer at all.
type PermissionResultMsg struct {
	Granted bool
	Err     error
}

// LocationResolvedMsg is sent when the current coordinate is known.
type LocationResolvedMsg struct {
	Coordinate Coordinate
	Recenter   bool // true when only the map should move, not the places
}

// LocationFailedMsg is sent when the current coordinate could not be read.
type LocationFailedMsg struct {
	Err      error
	Recenter bool
}

// PlacesLoadedMsg is sent when a nearby search completes.
type PlacesLoadedMsg struct {
	Places []PlaceRecord
}

// PlacesFailedMsg is sent when a nearby search fails.
type PlacesFailedMsg struct {
	Err error
}

// HistoryLoadedMsg is sent when the navigation history is read.
type HistoryLoadedMsg struct {
	Entries []HistoryEntry
}

// HistoryClearedMsg is sent after the navigation history is cleared.
type HistoryClearedMsg struct{}

// FormCancelledMsg is sent when the user leaves an input without submitting.
type FormCancelledMsg struct{}

// SupportReplyMsg delivers a canned support answer after its delay.
type SupportReplyMsg struct {
	Text string
}

// ProfileSavedMsg is sent when the profile form passes validation.
type ProfileSavedMsg struct {
	Profile Profile
}

// NavigationStartedMsg is sent after a destination was handed to the launcher.
type NavigationStartedMsg struct {
	Place PlaceRecord
	URI   string
	Err   error
}

// Screen represents different app screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenNearby
	ScreenHistory
	ScreenPlaceDetail
	ScreenProfile
	ScreenSupport
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
	ModeConfirm
)
