package uipanel_test

import (
	"testing"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/stretchr/testify/require"
)

func TestBlockerBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := uipanel.NewBlockerBus()

	var got []string
	first := bus.Subscribe(func(ev uipanel.BlockerEvent) { got = append(got, "first:"+ev.Signal.String()) })
	bus.Subscribe(func(ev uipanel.BlockerEvent) { got = append(got, "second:"+ev.Signal.String()) })
	require.Equal(t, 2, bus.Len())

	bus.Publish(uipanel.BlockerEvent{Signal: uipanel.BlockerActive, Source: 1})
	require.Equal(t, []string{"first:active", "second:active"}, got)

	first.Cancel()
	first.Cancel()
	require.False(t, first.IsActive())
	require.Equal(t, 1, bus.Len())

	got = nil
	bus.Publish(uipanel.BlockerEvent{Signal: uipanel.BlockersInactive, Source: 1})
	require.Equal(t, []string{"second:inactive"}, got)
	require.EqualValues(t, 2, bus.Published())
}

func TestBlockerSignal_String(t *testing.T) {
	require.Equal(t, "active", uipanel.BlockerActive.String())
	require.Equal(t, "inactive", uipanel.BlockersInactive.String())
	require.Equal(t, "unknown", uipanel.BlockerSignal(9).String())
}

func TestErrors_Messages(t *testing.T) {
	verr := &uipanel.ValidationError{Panel: "menu", Op: "open", Err: uipanel.ErrNoElements}
	require.Equal(t, `uipanel: open "menu": panel has no elements`, verr.Error())

	cerr := &uipanel.ConfigError{Index: 2, Err: uipanel.ErrPanelMissing}
	require.Equal(t, "uipanel: panel at index [2]: configured panel is missing", cerr.Error())

	named := &uipanel.ConfigError{Index: 0, Panel: "menu", Err: verr}
	require.Equal(t, `uipanel: panel "menu" at index [0]: uipanel: open "menu": panel has no elements`, named.Error())
	require.True(t, uipanel.IsValidationError(named))
	require.False(t, uipanel.IsResourceError(named))

	rerr := &uipanel.ResourceError{Panel: "shop", Op: "release"}
	require.Equal(t, `uipanel: release "shop"`, rerr.Error())
}
