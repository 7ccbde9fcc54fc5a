// Package evinput maps raw Linux input events to Controller operations. It
// is meant for handhelds where the back key is not delivered through SDL.
package evinput

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"github.com/holoplot/go-evdev"
)

// BackButtonConfig selects the device and key that close the top panel.
type BackButtonConfig struct {
	DevicePath string        // Empty reads UIPANEL_BACK_DEVICE, then DefaultBackDevicePath
	ButtonCode evdev.EvCode  // 0 uses KEY_BACK
	CoolDown   time.Duration // 0 uses DefaultBackCoolDown, negative disables debouncing
}

func (cfg BackButtonConfig) withDefaults() BackButtonConfig {
	if cfg.DevicePath == "" {
		cfg.DevicePath = os.Getenv(constants.BackDeviceEnvVar)
	}
	if cfg.DevicePath == "" {
		cfg.DevicePath = constants.DefaultBackDevicePath
	}
	if cfg.ButtonCode == 0 {
		cfg.ButtonCode = evdev.KEY_BACK
	}
	if cfg.CoolDown == 0 {
		cfg.CoolDown = constants.DefaultBackCoolDown
	}
	return cfg
}

// Debouncer accepts at most one press per cool down window.
type Debouncer struct {
	CoolDown time.Duration

	mu   sync.Mutex
	last time.Time
}

// Accept reports whether a press at now should be handled.
func (d *Debouncer) Accept(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.CoolDown > 0 && !d.last.IsZero() && now.Sub(d.last) < d.CoolDown {
		return false
	}
	d.last = now
	return true
}

// BackButton closes the controller's top non-init panel when its key goes down.
type BackButton struct {
	controller *uipanel.Controller
	code       evdev.EvCode
	debounce   *Debouncer
	log        *slog.Logger
}

// NewBackButton returns a BackButton for c. cfg.DevicePath is not used.
func NewBackButton(c *uipanel.Controller, cfg BackButtonConfig) *BackButton {
	cfg = cfg.withDefaults()
	return &BackButton{
		controller: c,
		code:       cfg.ButtonCode,
		debounce:   &Debouncer{CoolDown: cfg.CoolDown},
		log:        internal.GetInternalLogger(),
	}
}

// Handle processes one input event read at now. It returns the close task
// when the event triggered one.
func (b *BackButton) Handle(ctx context.Context, ev *evdev.InputEvent, now time.Time) (*uipanel.Task, bool) {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Code != b.code || ev.Value != 1 {
		return nil, false
	}
	if !b.debounce.Accept(now) {
		b.log.Debug("Back press ignored during cool down")
		return nil, false
	}

	b.log.Debug("Back pressed", "controller", b.controller.Name())
	return b.controller.CloseTopExceptInit(ctx), true
}

// WatchBackButton reads cfg.DevicePath until ctx is done. The device is
// closed on return.
func WatchBackButton(ctx context.Context, c *uipanel.Controller, cfg BackButtonConfig) error {
	cfg = cfg.withDefaults()

	dev, err := evdev.Open(cfg.DevicePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.DevicePath, err)
	}

	name, _ := dev.Name()
	log := internal.GetInternalLogger()
	log.Debug("Watching back button", "device", cfg.DevicePath, "name", name, "code", cfg.ButtonCode)

	stop := make(chan struct{})
	var once sync.Once
	closeDev := func() { once.Do(func() { dev.Close() }) }
	defer closeDev()
	defer close(stop)

	// ReadOne blocks; closing the device is the only way to unblock it.
	go func() {
		select {
		case <-ctx.Done():
			closeDev()
		case <-stop:
		}
	}()

	button := NewBackButton(c, cfg)
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read %s: %w", cfg.DevicePath, err)
		}
		button.Handle(ctx, ev, time.Now())
	}
}
