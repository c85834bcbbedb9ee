package windows

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestContrastTheme(t *testing.T) {
	th := &ContrastTheme{}

	assert.Equal(t, white, th.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, black, th.Color(theme.ColorNameForeground, theme.VariantLight))
	assert.Equal(t, black, th.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, yellow, th.Color(theme.ColorNameFocus, theme.VariantDark))

	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantLight),
		th.Color(theme.ColorNameError, theme.VariantLight))

	assert.Equal(t, float32(16), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}
