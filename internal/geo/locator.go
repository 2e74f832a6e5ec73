// Package geo supplies the device coordinate to the nearby screen.
package geo

import (
	"context"
	"errors"
	"fmt"

	"waypoint/internal/model"
)

// ErrPermissionDenied is returned when location access was not granted.
var ErrPermissionDenied = errors.New("location permission denied")

// Accuracy is a hint for how precise a coordinate fix should be.
type Accuracy int

const (
	AccuracyBalanced Accuracy = iota
	AccuracyHigh
)

// Locator is a source of the current device position.
type Locator interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentCoordinate(ctx context.Context, accuracy Accuracy) (model.Coordinate, error)
}

// StaticLocator reports a fixed coordinate, for hosts without a GPS.
type StaticLocator struct {
	granted bool
	coord   *model.Coordinate
}

// NewStaticLocator returns a locator that grants permission when granted
// is true and reports coord. A nil coord makes every fix fail.
func NewStaticLocator(granted bool, coord *model.Coordinate) *StaticLocator {
	return &StaticLocator{granted: granted, coord: coord}
}

func (s *StaticLocator) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.granted, nil
}

func (s *StaticLocator) CurrentCoordinate(ctx context.Context, _ Accuracy) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, err
	}
	if !s.granted {
		return model.Coordinate{}, ErrPermissionDenied
	}
	if s.coord == nil {
		return model.Coordinate{}, errors.New("no location configured (set -lat and -lon)")
	}
	if err := Validate(*s.coord); err != nil {
		return model.Coordinate{}, err
	}
	return *s.coord, nil
}

// Validate checks that a coordinate is within WGS84 ranges.
func Validate(c model.Coordinate) error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", c.Longitude)
	}
	return nil
}
