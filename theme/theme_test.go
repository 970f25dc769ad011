package theme

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestCustomThemeIsAlwaysDark(t *testing.T) {
	test.NewTempApp(t)
	th := NewCustomTheme()

	light := th.Color(theme.ColorNameBackground, theme.VariantLight)
	dark := th.Color(theme.ColorNameBackground, theme.VariantDark)
	assert.Equal(t, dark, light)
	assert.Equal(t, color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}, dark)

	// unlisted colors come from the default dark variant
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameShadow, theme.VariantDark),
		th.Color(theme.ColorNameShadow, theme.VariantLight))
}

func TestCustomThemeSizes(t *testing.T) {
	th := NewCustomTheme()
	assert.Equal(t, float32(14), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}
