package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	l, err := config.Load(filepath.Join("testdata", "layout.toml"))
	require.NoError(t, err)

	require.Equal(t, "main", l.Controller.Name)
	require.True(t, l.Controller.ShowInitFromStart)
	require.Equal(t, time.Millisecond, l.Controller.SettleDelay.Duration)
	require.Equal(t, 2*time.Second, l.Controller.AcquireTimeout.Duration)

	require.Len(t, l.Panels, 3)
	require.Equal(t, []string{"title", "buttons"}, l.Panels[0].Elements)
	require.InDelta(t, 0.8, l.Panels[1].BlockerOpacity, 1e-9)
	require.True(t, l.Panels[2].Lazy)
	require.Equal(t, "panels/settings", l.Panels[2].Asset)

	require.NoError(t, l.Validate())

	def, ok := l.Lookup("inventory")
	require.True(t, ok)
	require.True(t, def.RefreshOnReopen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := config.Parse([]byte(`
[[panel]]
name = "home"
show_form_start = true
`))
	require.ErrorContains(t, err, "panel.show_form_start")
}

func TestParse_BadDuration(t *testing.T) {
	_, err := config.Parse([]byte(`
[controller]
settle_delay = "soon"
`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	l, err := config.Parse([]byte(`
[[panel]]
name = "home"

[[panel]]
name = ""

[[panel]]
name = "home"

[[panel]]
name = "dim"
blocker = true
blocker_opacity = 1.5

[[panel]]
name = "shop"
lazy = true
`))
	require.NoError(t, err)

	err = l.Validate()
	require.ErrorIs(t, err, config.ErrNameRequired)
	require.ErrorIs(t, err, config.ErrDuplicateName)
	require.ErrorIs(t, err, config.ErrOpacityRange)
	require.ErrorIs(t, err, config.ErrAssetRequired)
	require.True(t, uipanel.IsConfigError(err))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(constants.SettleDelayEnvVar, "5ms")
	t.Setenv(constants.AcquireTimeoutEnvVar, "1s")
	t.Setenv(constants.GlobalUIEnvVar, "true")

	l := &config.Layout{}
	require.NoError(t, config.ApplyEnv(l))
	require.Equal(t, 5*time.Millisecond, l.Controller.SettleDelay.Duration)
	require.Equal(t, time.Second, l.Controller.AcquireTimeout.Duration)
	require.True(t, l.Controller.GlobalUI)

	t.Setenv(constants.GlobalUIEnvVar, "sometimes")
	require.ErrorContains(t, config.ApplyEnv(l), constants.GlobalUIEnvVar)
}

func TestDuration_MarshalText(t *testing.T) {
	d := config.Duration{Duration: 1500 * time.Millisecond}
	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1.5s", string(text))

	var back config.Duration
	require.NoError(t, back.UnmarshalText(text))
	require.Equal(t, d, back)
}
