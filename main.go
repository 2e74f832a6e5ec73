package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"waypoint/cmd"
	"waypoint/internal/geo"
	"waypoint/internal/history"
	"waypoint/internal/launcher"
	"waypoint/internal/logger"
	"waypoint/internal/places"
	"waypoint/internal/store"
	"waypoint/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.ShowVersion {
		fmt.Printf("waypoint %s\n", version)
		return
	}

	log, err := logger.New(config.LogLevel, config.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !config.LocationGranted {
		fmt.Fprintln(os.Stderr, "ℹ  Location access not granted — nearby places disabled")
	} else if config.Location == nil {
		fmt.Fprintln(os.Stderr, "ℹ  No location set — pass -lat and -lon to search nearby")
	}

	kv, err := store.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	var opener launcher.Launcher = launcher.NewSystem(config.Platform, log)
	if config.DryRun {
		opener = launcher.NewDryRun(config.Platform)
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("db", config.DBPath),
		zap.String("overpass", config.OverpassURL),
		zap.Float64("radius", config.Radius),
		zap.String("platform", string(config.Platform)),
		zap.Bool("dry_run", config.DryRun),
	)

	app := ui.New(ui.Deps{
		Finder:   places.NewFinder(config.OverpassURL, config.Timeout, places.WithLogger(log)),
		History:  history.New(kv, log),
		Locator:  geo.NewStaticLocator(config.LocationGranted, config.Location),
		Launcher: opener,
		Prefs:    kv,
		Logger:   log,
		Radius:   config.Radius,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("app exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
