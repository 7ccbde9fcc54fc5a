package sdlui

import (
	"context"
	"math"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

var timeScale = atomic.NewFloat64(1)

// SetTimeScale divides the duration of every fade not using unscaled time.
// A non-positive scale snaps those fades to their target.
func SetTimeScale(scale float64) {
	timeScale.Store(scale)
}

// TimeScale returns the current time scale.
func TimeScale() float64 {
	return timeScale.Load()
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// FadeElement is a uipanel.Element that tweens an alpha value between 0 and
// 1. Draw functions read it through Alpha or Apply.
type FadeElement struct {
	Duration time.Duration
	Easing   Easing

	alpha    *atomic.Float64
	unscaled *atomic.Bool
	gen      *atomic.Uint64
}

// NewFadeElement creates a transparent element. A zero duration uses
// constants.DefaultFadeDuration; a negative one snaps.
func NewFadeElement(d time.Duration) *FadeElement {
	if d == 0 {
		d = constants.DefaultFadeDuration
	}
	return &FadeElement{
		Duration: d,
		Easing:   EaseOutCubic,
		alpha:    atomic.NewFloat64(0),
		unscaled: atomic.NewBool(false),
		gen:      atomic.NewUint64(0),
	}
}

func (f *FadeElement) Init(useUnscaledTime bool) {
	f.unscaled.Store(useUnscaledTime)
	f.gen.Inc()
	f.alpha.Store(0)
}

func (f *FadeElement) Show(ctx context.Context) error { return f.tween(ctx, 1) }

func (f *FadeElement) Hide(ctx context.Context) error { return f.tween(ctx, 0) }

// Alpha returns the current opacity.
func (f *FadeElement) Alpha() float64 { return f.alpha.Load() }

// AlphaMod returns the current opacity as an SDL alpha modulation.
func (f *FadeElement) AlphaMod() uint8 {
	return uint8(math.Round(clamp01(f.Alpha()) * 255))
}

// Apply sets the texture's alpha modulation to the current opacity.
func (f *FadeElement) Apply(tex *sdl.Texture) error {
	return tex.SetAlphaMod(f.AlphaMod())
}

// tween moves alpha to target. A newer tween supersedes this one, which then
// returns without touching alpha again.
func (f *FadeElement) tween(ctx context.Context, target float64) error {
	gen := f.gen.Inc()
	from := f.alpha.Load()

	d := f.scaledDuration()
	if d <= 0 || from == target {
		f.alpha.Store(target)
		return nil
	}

	ease := f.Easing
	if ease == nil {
		ease = Linear
	}

	start := time.Now()
	ticker := time.NewTicker(constants.DefaultFrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if f.gen.Load() != gen {
				return nil
			}
			p := float64(now.Sub(start)) / float64(d)
			if p >= 1 {
				f.alpha.Store(target)
				return nil
			}
			f.alpha.Store(from + (target-from)*ease(p))
		}
	}
}

func (f *FadeElement) scaledDuration() time.Duration {
	if f.unscaled.Load() {
		return f.Duration
	}
	scale := TimeScale()
	if scale <= 0 {
		return 0
	}
	return time.Duration(float64(f.Duration) / scale)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
