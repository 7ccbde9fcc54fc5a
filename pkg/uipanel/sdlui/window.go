package sdlui

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

type WindowOptions struct {
	Borderless        bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable         bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen        bool // Fullscreen mode (SDL_WINDOW_FULLSCREEN)
	FullscreenDesktop bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Hidden            bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}
	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if wo.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}
	if wo.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}

// Window wraps the SDL window and renderer shared by every layer.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Font     *ttf.Font // nil when the theme has no font
	Title    string

	log             *slog.Logger
	hasVSync        bool
	lastPresentTime uint64
}

// NewWindow initializes SDL and opens a window covering the current display.
// In dev mode the window is decorated and sized from WINDOW_WIDTH and
// WINDOW_HEIGHT, defaulting to 1024x768.
func NewWindow(title string, opts WindowOptions) (*Window, error) {
	log := internal.GetInternalLogger()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ttf init: %w", err)
	}

	var width, height int32 = 1024, 768
	if mode, err := sdl.GetCurrentDisplayMode(0); err == nil {
		width, height = mode.W, mode.H
	} else {
		log.Error("Failed to get display mode", "error", err)
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
		width = envSize(log, constants.WindowWidthEnvVar, 1024)
		height = envSize(log, constants.WindowHeightEnvVar, 768)
	}

	log.Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, x, y, width, height, opts.ToSDLFlags())
	if err != nil {
		ttf.Quit()
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		window.Destroy()
		ttf.Quit()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	renderer.SetLogicalSize(width, height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	w := &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		log:      log,
		hasVSync: vsync,
	}

	theme := GetTheme()
	if theme.FontPath != "" {
		font, err := ttf.OpenFont(theme.FontPath, theme.FontSize)
		if err != nil {
			log.Warn("Failed to open font, labels disabled", "path", theme.FontPath, "error", err)
		} else {
			w.Font = font
		}
	}

	return w, nil
}

func envSize(log *slog.Logger, name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		log.Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

// Bounds returns the drawable area.
func (w *Window) Bounds() sdl.Rect {
	width, height := w.Window.GetSize()
	return sdl.Rect{W: width, H: height}
}

// Clear fills the frame with the theme background.
func (w *Window) Clear() {
	bg := GetTheme().BackgroundColor
	w.Renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	w.Renderer.Clear()
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available. Use this instead of renderer.Present().
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Close releases the window and shuts SDL down.
func (w *Window) Close() {
	if w.Font != nil {
		w.Font.Close()
	}
	w.Renderer.Destroy()
	w.Window.Destroy()
	ttf.Quit()
	sdl.Quit()
}
