package evinput

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/headless"
	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	d := &Debouncer{CoolDown: 100 * time.Millisecond}
	start := time.Unix(100, 0)

	require.True(t, d.Accept(start))
	require.False(t, d.Accept(start.Add(50*time.Millisecond)))
	require.True(t, d.Accept(start.Add(100*time.Millisecond)))
	require.False(t, d.Accept(start.Add(150*time.Millisecond)))

	off := &Debouncer{CoolDown: -1}
	require.True(t, off.Accept(start))
	require.True(t, off.Accept(start))
}

func TestBackButtonConfig_Defaults(t *testing.T) {
	t.Setenv(constants.BackDeviceEnvVar, "")
	cfg := BackButtonConfig{}.withDefaults()
	require.Equal(t, constants.DefaultBackDevicePath, cfg.DevicePath)
	require.Equal(t, evdev.EvCode(evdev.KEY_BACK), cfg.ButtonCode)
	require.Equal(t, constants.DefaultBackCoolDown, cfg.CoolDown)

	t.Setenv(constants.BackDeviceEnvVar, "/dev/input/event7")
	require.Equal(t, "/dev/input/event7", BackButtonConfig{}.withDefaults().DevicePath)
}

func TestBackButton_ClosesTopPanel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	l := &config.Layout{
		Controller: config.ControllerDef{Name: "handheld"},
		Panels: []config.PanelDef{
			{Name: "home", ShowFromStart: true},
			{Name: "menu", Blocker: true},
		},
	}
	c, err := config.Build(l, &headless.Binder{}, config.BuildOptions{})
	require.NoError(t, err)

	home, _ := c.Lookup("home")
	menu, _ := c.Lookup("menu")
	require.NoError(t, home.Open(ctx))
	require.NoError(t, menu.Open(ctx))

	b := NewBackButton(c, BackButtonConfig{CoolDown: time.Second})
	now := time.Unix(100, 0)
	press := &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 1}

	_, ok := b.Handle(ctx, &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 0}, now)
	require.False(t, ok, "release is ignored")
	_, ok = b.Handle(ctx, &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_ESC, Value: 1}, now)
	require.False(t, ok, "other keys are ignored")

	task, ok := b.Handle(ctx, press, now)
	require.True(t, ok)
	require.NoError(t, task.Wait(ctx))
	require.Equal(t, uipanel.Closed, menu.State())

	require.NoError(t, menu.Open(ctx))
	_, ok = b.Handle(ctx, press, now.Add(10*time.Millisecond))
	require.False(t, ok, "press during cool down")
	require.Equal(t, uipanel.Opened, menu.State())

	task, ok = b.Handle(ctx, press, now.Add(2*time.Second))
	require.True(t, ok)
	require.NoError(t, task.Wait(ctx))

	task, ok = b.Handle(ctx, press, now.Add(4*time.Second))
	require.True(t, ok)
	require.NoError(t, task.Wait(ctx))
	require.Equal(t, uipanel.Opened, home.State(), "init panel stays open")
}

func TestWatchBackButton_MissingDevice(t *testing.T) {
	err := WatchBackButton(context.Background(), nil, BackButtonConfig{DevicePath: "/nonexistent/event0"})
	require.Error(t, err)
}
