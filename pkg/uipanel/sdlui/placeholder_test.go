package sdlui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRasterizeSVG(t *testing.T) {
	img, err := RasterizeSVG(spinnerSVG, 32)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())

	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	require.Positive(t, opaque)

	_, err = RasterizeSVG(spinnerSVG, 0)
	require.Error(t, err)
}

func TestLoadingPlaceholder(t *testing.T) {
	loc, err := NewLocalizer("en")
	require.NoError(t, err)

	p, err := NewLoadingPlaceholder("settings", loc, nil, 16)
	require.NoError(t, err)
	require.Equal(t, "Loading settings", p.Label())
	require.False(t, p.Visible())

	p.Show()
	require.True(t, p.Visible())

	shown := time.Unix(0, p.shownAt.Load())
	require.InDelta(t, 90, p.Angle(shown.Add(spinnerTurn/4)), 1e-6)
	require.InDelta(t, 0, p.Angle(shown.Add(spinnerTurn)), 1e-6)

	p.Hide()
	require.False(t, p.Visible())
}
