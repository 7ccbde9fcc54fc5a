package sdlui

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// ClickBlocker is a uipanel.Blocker drawn as a translucent fill over the
// whole window. At opacity 0 it is neither drawn nor absorbs input.
type ClickBlocker struct {
	color   sdl.Color
	opacity *atomic.Float64
}

func NewClickBlocker(color sdl.Color) *ClickBlocker {
	return &ClickBlocker{
		color:   color,
		opacity: atomic.NewFloat64(0),
	}
}

func (b *ClickBlocker) SetOpacity(opacity float64) {
	b.opacity.Store(clamp01(opacity))
}

func (b *ClickBlocker) Opacity() float64 { return b.opacity.Load() }

// Absorbing reports whether the blocker currently swallows input.
func (b *ClickBlocker) Absorbing() bool { return b.Opacity() > 0 }

// Draw is a DrawFunc.
func (b *ClickBlocker) Draw(r *sdl.Renderer, bounds sdl.Rect) {
	a := b.Opacity()
	if a <= 0 {
		return
	}
	r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	r.SetDrawColor(b.color.R, b.color.G, b.color.B, uint8(math.Round(a*255)))
	r.FillRect(&bounds)
}
