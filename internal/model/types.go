package model

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceRecord is a point of interest returned by a nearby search.
type PlaceRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"type"`
	Description string     `json:"description"`
	Rating      *float64   `json:"rating"` // nil for sources without ratings
	Coordinate  Coordinate `json:"coordinate"`
	PlaceID     string     `json:"place_id"`
}

// HistoryEntry is one recorded navigation request.
type HistoryEntry struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // hh:mm AM/PM
}

// LoadingPhase tracks the location-and-places flow on the nearby screen.
type LoadingPhase int

const (
	PhaseIdle LoadingPhase = iota
	PhaseRequestingPermission
	PhaseLocating
	PhaseFindingPlaces
	PhaseReady
	PhaseFailed
)

// String returns the user-facing status line for a phase.
func (p LoadingPhase) String() string {
	switch p {
	case PhaseRequestingPermission:
		return "Requesting location permission..."
	case PhaseLocating:
		return "Getting your current location..."
	case PhaseFindingPlaces:
		return "Finding places nearby..."
	case PhaseReady:
		return "Ready"
	case PhaseFailed:
		return "Something went wrong"
	default:
		return ""
	}
}

// Busy reports whether the phase has work in flight.
func (p LoadingPhase) Busy() bool {
	return p == PhaseRequestingPermission || p == PhaseLocating || p == PhaseFindingPlaces
}

// LocationState is owned by the nearby screen controller.
type LocationState struct {
	PermissionGranted *bool
	LastKnown         *Coordinate
	Phase             LoadingPhase
}

// Profile is the user's contact details as edited on the profile screen.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
