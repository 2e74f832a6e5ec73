// Package launcher hands a destination to the platform maps application.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Platform selects the deep-link format.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// ParsePlatform validates a platform name. Empty means desktop.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case "", PlatformDesktop:
		return PlatformDesktop, nil
	case PlatformIOS, PlatformAndroid:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform %q (want desktop, ios or android)", s)
	}
}

// Destination is where navigation should go.
type Destination struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// URI returns the deep link for d on platform p.
func URI(p Platform, d Destination) string {
	latLng := formatFloat(d.Latitude) + "," + formatFloat(d.Longitude)
	switch p {
	case PlatformIOS:
		return "maps://0,0?q=" + d.Label + "@" + latLng
	case PlatformAndroid:
		return "geo:0,0?q=" + latLng + "(" + d.Label + ")"
	default:
		lat, lng := formatFloat(d.Latitude), formatFloat(d.Longitude)
		return "https://www.openstreetmap.org/?mlat=" + lat + "&mlon=" + lng + "#map=17/" + lat + "/" + lng
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Launcher opens a destination in an external application.
type Launcher interface {
	Open(ctx context.Context, d Destination) (string, error)
}

// System opens deep links with the operating system's URL handler.
type System struct {
	platform Platform
	logger   *zap.Logger
	command  func(ctx context.Context, uri string) *exec.Cmd
}

// NewSystem returns a launcher for platform p.
func NewSystem(p Platform, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{platform: p, logger: logger, command: openCommand}
}

// Open starts the OS handler for d's deep link and returns the link.
// It does not wait for the handler to exit.
func (s *System) Open(ctx context.Context, d Destination) (string, error) {
	uri := URI(s.platform, d)
	cmd := s.command(ctx, uri)
	if err := cmd.Start(); err != nil {
		s.logger.Error("error opening maps", zap.String("uri", uri), zap.Error(err))
		return uri, fmt.Errorf("could not open maps application: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	s.logger.Info("opened maps", zap.String("uri", uri))
	return uri, nil
}

func openCommand(ctx context.Context, uri string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", uri)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		return exec.CommandContext(ctx, "xdg-open", uri)
	}
}

// DryRun records deep links without opening anything.
type DryRun struct {
	platform Platform

	mu     sync.Mutex
	opened []string
}

// NewDryRun returns a recording launcher for platform p.
func NewDryRun(p Platform) *DryRun {
	return &DryRun{platform: p}
}

func (d *DryRun) Open(_ context.Context, dest Destination) (string, error) {
	uri := URI(d.platform, dest)
	d.mu.Lock()
	d.opened = append(d.opened, uri)
	d.mu.Unlock()
	return uri, nil
}

// Opened returns the links passed to Open so far.
func (d *DryRun) Opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opened...)
}
