package uipanel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/headless"
	"github.com/stretchr/testify/require"
)

type lazyFixture struct {
	*uipanel.LazyPanel
	provider    *headless.Provider
	placeholder *headless.Placeholder
	surface     *headless.Surface
}

func newLazy(name string, factory headless.Factory, configure ...func(*uipanel.LazyConfig)) *lazyFixture {
	f := &lazyFixture{
		provider:    headless.NewProvider(factory, 0),
		placeholder: &headless.Placeholder{},
		surface:     &headless.Surface{},
	}
	cfg := uipanel.LazyConfig{
		Name:        name,
		Provider:    f.provider,
		Placeholder: f.placeholder,
		Surface:     f.surface,
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	f.LazyPanel = uipanel.NewLazyPanel(cfg)
	return f
}

func timedFactory(name string) headless.Factory {
	return func(any) (*uipanel.Panel, error) {
		return uipanel.NewPanel(uipanel.PanelConfig{
			Name:           name,
			Elements:       []uipanel.Element{headless.NewTimedElement(name, 0, 0)},
			Blocker:        &headless.Blocker{},
			BlockerOpacity: testOpacity,
		}), nil
	}
}

func TestLazyPanel_RoundTrip(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("settings", timedFactory("settings"))
	c := newController(uipanel.ControllerOptions{Panels: []uipanel.UIPanel{lazy.LazyPanel}})
	require.NoError(t, c.InitAllPanels(ctx))

	require.Equal(t, uipanel.Closed, lazy.State())
	require.Nil(t, lazy.Instance())
	require.Zero(t, lazy.provider.Instantiated())

	for round := 1; round <= 2; round++ {
		require.NoError(t, lazy.Open(ctx))
		require.Equal(t, uipanel.Opened, lazy.State())
		require.NotNil(t, lazy.Instance())
		require.True(t, c.IsOnTop(lazy.LazyPanel))
		require.EqualValues(t, round, lazy.provider.Instantiated())
		require.Equal(t, round, lazy.placeholder.Shows())
		require.Equal(t, round, lazy.placeholder.Hides())
		require.False(t, lazy.placeholder.Visible())

		require.NoError(t, lazy.Close(ctx))
		require.Equal(t, uipanel.Closed, lazy.State())
		require.Nil(t, lazy.Instance())
		require.False(t, c.IsOnTop(lazy.LazyPanel))
		require.EqualValues(t, round, lazy.provider.Released())
		require.Zero(t, lazy.provider.Live())
		require.Empty(t, c.Stack())
		require.Equal(t, round, lazy.surface.Lowers())
	}
}

func TestLazyPanel_OpenIsIdempotent(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("settings", timedFactory("settings"))
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	require.NoError(t, lazy.Open(ctx))
	inst := lazy.Instance()
	require.NoError(t, lazy.Open(ctx))

	require.Same(t, inst, lazy.Instance())
	require.EqualValues(t, 1, lazy.provider.Instantiated())
	require.Equal(t, 1, c.ShowingPanelCount())
}

func TestLazyPanel_AcquireFailure(t *testing.T) {
	ctx := testContext(t)
	boom := errors.New("asset bundle missing")

	lazy := newLazy("shop", timedFactory("shop"))
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	lazy.provider.FailNext(boom)
	err := lazy.Open(ctx)
	require.ErrorIs(t, err, boom)
	require.True(t, uipanel.IsResourceError(err))

	require.Equal(t, uipanel.Closed, lazy.State())
	require.Nil(t, lazy.Instance())
	require.Empty(t, c.Stack())
	require.False(t, lazy.placeholder.Visible())
	require.Equal(t, 1, lazy.placeholder.Hides())
	require.Zero(t, lazy.provider.Instantiated())

	require.NoError(t, lazy.Open(ctx))
	require.Equal(t, uipanel.Opened, lazy.State())
}

func TestLazyPanel_FactoryReturnsNothing(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("shop", func(any) (*uipanel.Panel, error) { return nil, nil })
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	err := lazy.Open(ctx)
	require.ErrorIs(t, err, uipanel.ErrInstanceMissing)
	require.True(t, uipanel.IsResourceError(err))
	require.Equal(t, uipanel.Closed, lazy.State())
}

func TestLazyPanel_AcquireTimeout(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("shop", timedFactory("shop"), func(cfg *uipanel.LazyConfig) {
		cfg.Provider = headless.NewProvider(timedFactory("shop"), time.Second)
		cfg.AcquireTimeout = 10 * time.Millisecond
	})
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	err := lazy.Open(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, uipanel.IsResourceError(err))
	require.Nil(t, lazy.Instance())
	require.False(t, lazy.placeholder.Visible())
}

func TestLazyPanel_InvalidInstanceIsReleased(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("shop", func(any) (*uipanel.Panel, error) {
		return uipanel.NewPanel(uipanel.PanelConfig{Name: "shop"}), nil
	})
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	err := lazy.Open(ctx)
	require.ErrorIs(t, err, uipanel.ErrNoElements)
	require.Nil(t, lazy.Instance())
	require.EqualValues(t, 1, lazy.provider.Released())
	require.Zero(t, lazy.provider.Live())

	_, ok := c.Lookup("shop")
	require.False(t, ok)
}

func TestLazyPanel_ReopenWhileClosingKeepsInstance(t *testing.T) {
	ctx := testContext(t)
	gate := headless.NewGatedElement()
	lazy := newLazy("map", func(any) (*uipanel.Panel, error) {
		return uipanel.NewPanel(uipanel.PanelConfig{
			Name:     "map",
			Elements: []uipanel.Element{gate},
		}), nil
	})
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))

	open := lazy.OpenAsync(ctx)
	require.Equal(t, uipanel.IsOpening, lazy.State())
	require.Eventually(t, func() bool { return gate.Pending() == 1 }, time.Second, time.Millisecond)
	gate.Release()
	require.NoError(t, open.Wait(ctx))
	inst := lazy.Instance()

	closing := lazy.CloseAsync(ctx)
	require.Equal(t, uipanel.IsClosing, lazy.State())
	require.Eventually(t, func() bool { return gate.Pending() == 1 }, time.Second, time.Millisecond)

	reopen := lazy.OpenAsync(ctx)
	require.Equal(t, uipanel.IsOpening, lazy.State())
	require.Eventually(t, func() bool { return gate.Pending() == 2 }, time.Second, time.Millisecond)
	gate.Release()

	require.NoError(t, closing.Wait(ctx))
	require.NoError(t, reopen.Wait(ctx))

	require.Equal(t, uipanel.Opened, lazy.State())
	require.Same(t, inst, lazy.Instance())
	require.EqualValues(t, 1, lazy.provider.Instantiated())
	require.Zero(t, lazy.provider.Released())
}

func TestLazyPanel_ClosedThroughController(t *testing.T) {
	ctx := testContext(t)
	home := newTimedPanel("home", initFlag)
	lazy := newLazy("settings", timedFactory("settings"))
	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, home.Init(c))
	require.NoError(t, lazy.Init(c))

	require.NoError(t, home.Open(ctx))
	require.NoError(t, lazy.Open(ctx))
	require.False(t, home.BlockerVisible())

	require.NoError(t, c.CloseTopExceptInit(ctx).Wait(ctx))

	require.Nil(t, lazy.Instance())
	require.EqualValues(t, 1, lazy.provider.Released())
	require.Equal(t, []string{"home"}, stackNames(c))
	require.True(t, home.BlockerVisible())
}

func TestLazyPanel_WithoutInstance(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("settings", timedFactory("settings"))

	require.ErrorIs(t, lazy.Open(ctx), uipanel.ErrNoController)

	c := newController(uipanel.ControllerOptions{})
	require.NoError(t, lazy.Init(c))
	require.NoError(t, lazy.Close(ctx))
	lazy.SetBlockerVisible(true)
	require.Zero(t, lazy.provider.Instantiated())

	noProvider := uipanel.NewLazyPanel(uipanel.LazyConfig{Name: "broken"})
	require.ErrorIs(t, noProvider.Init(c), uipanel.ErrNoProvider)
	require.ErrorIs(t, noProvider.Open(ctx), uipanel.ErrNoProvider)
}

func TestLazyPanel_ShowFromStart(t *testing.T) {
	ctx := testContext(t)
	lazy := newLazy("hud", timedFactory("hud"), func(cfg *uipanel.LazyConfig) { cfg.ShowFromStart = true })
	c := newController(uipanel.ControllerOptions{Panels: []uipanel.UIPanel{lazy.LazyPanel}})
	require.NoError(t, c.InitAllPanels(ctx))

	require.Eventually(t, func() bool { return lazy.State() == uipanel.Opened }, time.Second, time.Millisecond)
	require.Empty(t, c.CloseAllButInit(ctx))
	require.Equal(t, uipanel.Opened, lazy.State())
}

func TestLazyPanel_ValidationHook(t *testing.T) {
	ctx := testContext(t)
	var reported []error
	lazy := uipanel.NewLazyPanel(uipanel.LazyConfig{
		Name:              "broken",
		OnValidationError: func(err error) { reported = append(reported, err) },
	})

	require.ErrorIs(t, lazy.Open(ctx), uipanel.ErrNoController)
	require.ErrorIs(t, lazy.Init(newController(uipanel.ControllerOptions{})), uipanel.ErrNoProvider)
	require.ErrorIs(t, lazy.Open(ctx), uipanel.ErrNoProvider)

	require.Len(t, reported, 3)
	for _, err := range reported {
		require.True(t, uipanel.IsValidationError(err))
	}
	require.ErrorIs(t, reported[0], uipanel.ErrNoController)
	require.ErrorIs(t, reported[2], uipanel.ErrNoProvider)
}
