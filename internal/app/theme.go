package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlotTheme is the application theme: a light variant with a blue accent
// that keeps the white plot surface and the chrome visually consistent.
type PlotTheme struct{}

var _ fyne.Theme = (*PlotTheme)(nil)

func (t *PlotTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x1E, G: 0x63, B: 0xC6, A: 0xFF}
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (t *PlotTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PlotTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PlotTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	default:
		return theme.DefaultTheme().Size(name)
	}
}
