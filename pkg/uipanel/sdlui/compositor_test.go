package sdlui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompositor_Order(t *testing.T) {
	c := NewCompositor()
	home := c.NewLayer("home")
	menu := c.NewLayer("menu")
	c.NewLayer("toast")
	require.Equal(t, []string{"home", "menu", "toast"}, c.Order())

	home.RaiseToTop()
	require.Equal(t, []string{"menu", "toast", "home"}, c.Order())

	home.LowerToBottom()
	require.Equal(t, []string{"home", "menu", "toast"}, c.Order())

	c.Remove(menu)
	menu.RaiseToTop()
	require.Equal(t, []string{"home", "toast"}, c.Order())
}

func TestCompositor_HitTest(t *testing.T) {
	c := NewCompositor()
	home := c.NewLayer("home")
	menu := c.NewLayer("menu")

	_, ok := c.HitTest()
	require.False(t, ok)

	home.SetVisible(true)
	home.SetInteractable(true)
	hit, ok := c.HitTest()
	require.True(t, ok)
	require.Equal(t, "home", hit.Name())

	menu.SetVisible(true)
	hit, _ = c.HitTest()
	require.Equal(t, "home", hit.Name())

	menu.SetInteractable(true)
	hit, _ = c.HitTest()
	require.Equal(t, "menu", hit.Name())
}
