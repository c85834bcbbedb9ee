package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ContrastTheme is a high contrast theme with larger text and a wide focus
// indicator. Colours not listed fall back to the default theme.
type ContrastTheme struct{}

var _ fyne.Theme = (*ContrastTheme)(nil)

var (
	black  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	white  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	yellow = color.NRGBA{R: 0xff, G: 0xd6, B: 0x00, A: 0xff}
	navy   = color.NRGBA{R: 0x00, G: 0x2b, B: 0x80, A: 0xff}
)

func (m ContrastTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground, theme.ColorNameInputBackground:
			return white
		case theme.ColorNameForeground:
			return black
		case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameButton:
			return navy
		case theme.ColorNameSelection:
			return yellow
		case theme.ColorNameForegroundOnPrimary:
			return white
		}
	} else {
		switch name {
		case theme.ColorNameBackground, theme.ColorNameInputBackground:
			return black
		case theme.ColorNameForeground:
			return white
		case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection:
			return yellow
		case theme.ColorNameButton:
			return navy
		case theme.ColorNameForegroundOnPrimary:
			return black
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m ContrastTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m ContrastTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m ContrastTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 16
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameInlineIcon:
		return 24
	case theme.SizeNameInputBorder:
		return 3
	case theme.SizeNameSeparatorThickness:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
