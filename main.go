// Package main provides the entry point for the Plot Viewport application.
package main

import (
	"log"
	"log/slog"
	"os"

	"plot-viewport/internal/app"
	"plot-viewport/internal/config"
	"plot-viewport/internal/engine"
	"plot-viewport/internal/version"
	"plot-viewport/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "dev.plotviewport.app"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Plot Viewport v%s", version.String())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Debug {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if cfg.Bounded() {
		log.Printf("Pan bounds: x [%g, %g], y [%g, %g]", cfg.MinX, cfg.MaxX, cfg.MinY, cfg.MaxY)
	}

	state, err := app.NewState(cfg.Viewport())
	if err != nil {
		log.Fatalf("Failed to create viewport: %v", err)
	}
	if err := state.LoadScene(app.DemoScene()); err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.PlotTheme{})

	win := mainwindow.New(fyneApp, state)
	win.ShowAndRun()
}
