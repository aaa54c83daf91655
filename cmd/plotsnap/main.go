// Command plotsnap renders the demo scene at a given zoom, pan and hover
// position and writes it as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"plot-viewport/internal/app"
	"plot-viewport/internal/config"
	"plot-viewport/internal/render"
	"plot-viewport/internal/viewport"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "plotsnap: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("plotsnap", flag.ContinueOnError)
	out := fs.String("o", "", "Output PNG path")
	width := fs.Float64("w", cfg.Width, "Canvas width")
	height := fs.Float64("h", cfg.Height, "Canvas height")
	zoom := fs.Float64("zoom", cfg.Zoom, "Zoom factor")
	panX := fs.Float64("pan-x", cfg.PanX, "Horizontal pan in pixels")
	panY := fs.Float64("pan-y", cfg.PanY, "Vertical pan in pixels")
	axis := fs.Bool("axis", cfg.Axis, "Draw the axis cross")
	hoverX := fs.Float64("hover-x", -1, "Pointer X in canvas pixels (negative for none)")
	hoverY := fs.Float64("hover-y", -1, "Pointer Y in canvas pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fs.Usage()
		return fmt.Errorf("missing -o")
	}

	cfg.Width, cfg.Height = *width, *height
	cfg.Zoom, cfg.PanX, cfg.PanY = *zoom, *panX, *panY
	cfg.Axis = *axis

	state, err := app.NewState(cfg.Viewport())
	if err != nil {
		return err
	}
	if err := state.LoadScene(app.DemoScene()); err != nil {
		return err
	}
	if *hoverX >= 0 {
		if r, ok := state.Hover(*hoverX, *hoverY); ok {
			fmt.Fprintf(stdout, "readout: x=%.1f value=%s\n", r.CursorX, render.FormatValue(r.Value))
		}
	}

	img := render.NewRenderer().Image(state.Frame())
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	snap := state.Snapshot()
	fmt.Fprintf(stdout, "wrote %s (%dx%d, %s)\n", *out, img.Bounds().Dx(), img.Bounds().Dy(), describe(snap))
	return nil
}

func describe(s viewport.Snapshot) string {
	return fmt.Sprintf("zoom %.2f, pan %.0f,%.0f", s.ZoomFactor, s.PanX, s.PanY)
}
