package app

import (
	"math"

	"plot-viewport/internal/plot"
)

// DemoScene returns the default scene: two rectangles and three curves.
func DemoScene() []plot.Descriptor {
	return []plot.Descriptor{
		{Type: plot.TypeRect, X: 20, Y: 20, Width: 120, Height: 80, Color: "red"},
		{Type: plot.TypeRect, X: -150, Y: -150, Width: 120, Height: 100, Color: "skyblue"},
		{Type: plot.TypeCurve, F: func(x float64) float64 { return -x + 30 }, Color: "green"},
		{Type: plot.TypeCurve, F: func(x float64) float64 { return x * x / 50 }, Color: "blue"},
		{Type: plot.TypeGraph, F: func(x float64) float64 { return math.Sin(x/50) * 50 }, Color: "gray"},
	}
}
