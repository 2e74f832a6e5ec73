package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"waypoint/internal/geo"
	"waypoint/internal/launcher"
	"waypoint/internal/model"
	"waypoint/internal/places"
)

// Config holds CLI configuration.
type Config struct {
	DataDir     string
	DBPath      string
	LogPath     string
	LogLevel    string
	OverpassURL string
	Radius      float64
	Timeout     time.Duration
	Platform    launcher.Platform
	DryRun      bool
	ShowVersion bool

	// Location is the coordinate reported by the locator, if known.
	Location        *model.Coordinate
	LocationGranted bool
}

type rawFlags struct {
	db          string
	overpassURL string
	radius      float64
	lat         string
	lon         string
	platform    string
	dryRun      bool
	logLevel    string
	logFile     string
	timeout     time.Duration
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags() (*Config, error) {
	// Missing files are fine; existing env vars win over file values.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	config, err := parseArgs(os.Args[1:], os.Getenv)
	if err != nil || config.ShowVersion {
		return config, err
	}

	if err := os.MkdirAll(config.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	settings, err := loadOnboardingSettings(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}

	if shouldRunOnboarding(settings) {
		settings, err = runOnboarding(config.DataDir, config.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	applyOnboarding(config, settings)
	return config, nil
}

// parseArgs builds a Config from args, falling back to getenv for unset flags.
// It does not touch the filesystem.
func parseArgs(args []string, getenv func(string) string) (*Config, error) {
	var raw rawFlags

	fs := flag.NewFlagSet("waypoint", flag.ContinueOnError)
	fs.StringVar(&raw.db, "db", getenv("WAYPOINT_DB"), "Path to SQLite database file (default: ~/.waypoint/waypoint.db)")
	fs.StringVar(&raw.overpassURL, "overpass-url", envOr(getenv, "WAYPOINT_OVERPASS_URL", places.DefaultEndpoint), "Overpass API interpreter endpoint")
	fs.Float64Var(&raw.radius, "radius", places.DefaultRadius, "Search radius in meters")
	fs.StringVar(&raw.lat, "lat", getenv("WAYPOINT_LAT"), "Current latitude (overrides onboarding home)")
	fs.StringVar(&raw.lon, "lon", getenv("WAYPOINT_LON"), "Current longitude (overrides onboarding home)")
	fs.StringVar(&raw.platform, "platform", getenv("WAYPOINT_PLATFORM"), "Maps link format: desktop, ios or android")
	fs.BoolVar(&raw.dryRun, "dry-run", false, "Record navigation links instead of opening them")
	fs.StringVar(&raw.logLevel, "log-level", envOr(getenv, "WAYPOINT_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&raw.logFile, "log-file", getenv("WAYPOINT_LOG_FILE"), "Log file path (default: ~/.waypoint/waypoint.log)")
	fs.DurationVar(&raw.timeout, "timeout", 30*time.Second, "Overpass request timeout")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *showVersion {
		return &Config{ShowVersion: true}, nil
	}

	if v := getenv("WAYPOINT_RADIUS"); v != "" && !flagSet(fs, "radius") {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WAYPOINT_RADIUS %q: %w", v, err)
		}
		raw.radius = r
	}
	if raw.radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", raw.radius)
	}
	if raw.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", raw.timeout)
	}

	platform, err := launcher.ParsePlatform(raw.platform)
	if err != nil {
		return nil, err
	}

	location, err := parseLocation(raw.lat, raw.lon)
	if err != nil {
		return nil, err
	}

	config := &Config{
		DBPath:      raw.db,
		LogPath:     raw.logFile,
		LogLevel:    raw.logLevel,
		OverpassURL: raw.overpassURL,
		Radius:      raw.radius,
		Timeout:     raw.timeout,
		Platform:    platform,
		DryRun:      raw.dryRun,
		Location:    location,
	}

	// Set default paths if not specified
	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DataDir = filepath.Join(home, ".waypoint")
		config.DBPath = filepath.Join(config.DataDir, "waypoint.db")
	} else {
		config.DataDir = filepath.Dir(config.DBPath)
	}
	if config.LogPath == "" {
		config.LogPath = filepath.Join(config.DataDir, "waypoint.log")
	}

	return config, nil
}

func parseLocation(lat, lon string) (*model.Coordinate, error) {
	if lat == "" && lon == "" {
		return nil, nil
	}
	if lat == "" || lon == "" {
		return nil, errors.New("-lat and -lon must be set together")
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	c := model.Coordinate{Latitude: la, Longitude: lo}
	if err := geo.Validate(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyOnboarding merges saved settings into config. Explicit coordinates win.
func applyOnboarding(config *Config, settings OnboardingSettings) {
	config.LocationGranted = settings.LocationGranted
	if !settings.Completed {
		// Non-interactive runs without onboarding still work when a
		// coordinate was passed explicitly.
		config.LocationGranted = config.Location != nil
	}
	if config.Location == nil && settings.Home != nil {
		home := *settings.Home
		config.Location = &home
	}
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
