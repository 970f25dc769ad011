package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var palette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:          color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}, // #1E1E1E
	theme.ColorNameButton:              color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}, // #2B2B2B
	theme.ColorNameDisabled:            color.NRGBA{R: 0x96, G: 0x96, B: 0x96, A: 0xff}, // #969696
	theme.ColorNameError:               color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}, // #D32F2F
	theme.ColorNameFocus:               color.NRGBA{R: 0x00, G: 0x96, B: 0x88, A: 0xff}, // #009688
	theme.ColorNameForeground:          color.White,
	theme.ColorNameForegroundOnPrimary: color.White,
	theme.ColorNameHeaderBackground:    color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}, // #3A3A3A
	theme.ColorNameHover:               color.NRGBA{R: 0x47, G: 0x47, B: 0x47, A: 0xff}, // #474747
	theme.ColorNameInputBackground:     color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}, // #121212
	theme.ColorNamePlaceHolder:         color.NRGBA{R: 0xb3, G: 0xb3, B: 0xb3, A: 0xff}, // #B3B3B3
	theme.ColorNamePrimary:             color.NRGBA{R: 0x00, G: 0x96, B: 0x88, A: 0xff}, // #009688
	theme.ColorNameSelection:           color.NRGBA{R: 0x00, G: 0x96, B: 0x88, A: 0x99},
	theme.ColorNameSuccess:             color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}, // #43A047
	theme.ColorNameWarning:             color.NRGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff}, // #FF9800
}

var sizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNameSeparatorThickness: 1,
	theme.SizeNameInnerPadding:       8,
	theme.SizeNamePadding:            4,
	theme.SizeNameText:               14,
	theme.SizeNameHeadingText:        22,
	theme.SizeNameSubHeadingText:     17,
	theme.SizeNameInputRadius:        6,
	theme.SizeNameSelectionRadius:    6,
}

type customTheme struct {
	fyne.Theme
}

// NewCustomTheme returns the dark application theme regardless of system settings
func NewCustomTheme() fyne.Theme {
	return &customTheme{Theme: theme.DefaultTheme()}
}

func (t *customTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return t.Theme.Color(name, theme.VariantDark)
}

func (t *customTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := sizes[name]; ok {
		return s
	}
	return t.Theme.Size(name)
}
