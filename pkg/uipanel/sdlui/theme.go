package sdlui

import "github.com/veandco/go-sdl2/sdl"

// Theme defines the colors and font used by the SDL collaborators.
type Theme struct {
	BackgroundColor sdl.Color // Cleared every frame
	BlockerColor    sdl.Color // Click blocker fill, alpha comes from the panel opacity
	AccentColor     sdl.Color // Panel cards and the loading spinner
	TextColor       sdl.Color // Placeholder label
	FontPath        string    // TTF font for labels, optional
	FontSize        int
}

var currentTheme = DefaultTheme()

// DefaultTheme returns the Cannoli palette without a font.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x000000),
		BlockerColor:    HexToColor(0x000000),
		AccentColor:     HexToColor(0x008080),
		TextColor:       HexToColor(0xFFFFFF),
		FontSize:        28,
	}
}

// SetTheme sets the active theme. Call it before creating the Window.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the active theme.
func GetTheme() Theme {
	return currentTheme
}

// HexToColor converts 0xRRGGBB to an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}
