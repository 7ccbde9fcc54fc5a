package sdlui

import (
	"context"
	"log/slog"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Loop drives a Window: it renders the compositor every frame and maps the
// back inputs (Escape, controller B) to Controller.CloseTopExceptInit.
type Loop struct {
	Window     *Window
	Compositor *Compositor
	Controller *uipanel.Controller
	Logger     *slog.Logger
}

// Run blocks until ctx is done or the window is closed. It must be called
// on the goroutine that created the Window.
func (l *Loop) Run(ctx context.Context) error {
	log := l.Logger
	if log == nil {
		log = internal.GetInternalLogger()
	}

	controllers := openGameControllers(log)
	defer func() {
		for _, gc := range controllers {
			gc.Close()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				log.Debug("Window closed")
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Repeat == 0 && e.Keysym.Sym == sdl.K_ESCAPE {
					l.back(ctx, log, "keyboard")
				}
			case *sdl.ControllerButtonEvent:
				if e.Type == sdl.CONTROLLERBUTTONDOWN && e.Button == sdl.CONTROLLER_BUTTON_B {
					l.back(ctx, log, "controller")
				}
			}
		}

		l.Window.Clear()
		l.Compositor.Render(l.Window.Renderer, l.Window.Bounds())
		l.Window.Present()
	}
}

func (l *Loop) back(ctx context.Context, log *slog.Logger, source string) {
	if _, ok := l.Compositor.HitTest(); !ok {
		return
	}
	log.Debug("Back pressed", "source", source)
	l.Controller.CloseTopExceptInit(ctx)
}

func openGameControllers(log *slog.Logger) []*sdl.GameController {
	var controllers []*sdl.GameController
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if gc := sdl.GameControllerOpen(i); gc != nil {
			controllers = append(controllers, gc)
			log.Debug("Opened game controller", "index", i, "name", gc.Name())
		}
	}
	return controllers
}
