// Command panelview opens a layout file in an SDL window. Escape, the
// controller B button or the evdev back key close the top panel.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/evinput"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/sdlui"
	"github.com/spf13/cobra"
)

// SDL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

type viewOpts struct {
	fade       time.Duration
	lang       string
	backDevice string
	fullscreen bool
	debug      bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:          "panelview <layout.toml>",
		Short:        "Show a uipanel layout in an SDL window",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().DurationVar(&opts.fade, "fade", 0, "fade duration of every element (0 uses the default)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "placeholder language, defaults to UIPANEL_LANG")
	cmd.Flags().StringVar(&opts.backDevice, "back-device", "", "evdev node of the back key, e.g. /dev/input/event1")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "open a fullscreen window")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

func view(ctx context.Context, path string, opts viewOpts) error {
	uipanel.Configure(uipanel.Options{Debug: opts.debug})
	defer uipanel.Shutdown()
	log := uipanel.GetLogger()

	l, err := config.Load(path)
	if err != nil {
		return err
	}

	loc := sdlui.DefaultLocalizer()
	if opts.lang != "" {
		if loc, err = sdlui.NewLocalizer(opts.lang); err != nil {
			return err
		}
	}

	window, err := sdlui.NewWindow(l.Controller.Name, sdlui.WindowOptions{Fullscreen: opts.fullscreen})
	if err != nil {
		return err
	}
	defer window.Close()

	comp := sdlui.NewCompositor()
	binder := &sdlui.Binder{
		Compositor:   comp,
		Localizer:    loc,
		Font:         window.Font,
		FadeDuration: opts.fade,
	}

	ctrl, err := config.Build(l, binder, config.BuildOptions{Logger: log})
	if err != nil {
		log.Warn("Layout has invalid panels", "error", err)
	}
	defer ctrl.Close()

	go func() {
		if err := ctrl.InitAllPanels(ctx); err != nil {
			log.Warn("Init reported problems", "error", err)
		}
	}()

	if opts.backDevice != "" {
		go func() {
			if err := evinput.WatchBackButton(ctx, ctrl, evinput.BackButtonConfig{DevicePath: opts.backDevice}); err != nil {
				log.Error("Back button watcher stopped", "error", err)
			}
		}()
	}

	loop := &sdlui.Loop{
		Window:     window,
		Compositor: comp,
		Controller: ctrl,
		Logger:     log,
	}
	return loop.Run(ctx)
}
