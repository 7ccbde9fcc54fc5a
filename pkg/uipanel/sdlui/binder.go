package sdlui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// ContentFunc returns the draw function of one element of a panel.
type ContentFunc func(def config.PanelDef, element string, fade *FadeElement) DrawFunc

// Binder is a config.Binder that gives every layout entry its own
// compositor layer, a FadeElement per element and a ClickBlocker.
type Binder struct {
	Compositor   *Compositor
	Localizer    *Localizer    // Placeholder labels, DefaultLocalizer if nil
	Font         *ttf.Font     // Placeholder label font, optional
	FadeDuration time.Duration // 0 uses constants.DefaultFadeDuration
	SpinnerSize  int           // 0 uses 64
	Content      ContentFunc   // Defaults to a translucent card per element
}

// Bind implements config.Binder.
func (b *Binder) Bind(def config.PanelDef) (uipanel.PanelConfig, error) {
	cfg, _ := b.bind(def)
	return cfg, nil
}

func (b *Binder) bind(def config.PanelDef) (uipanel.PanelConfig, *Layer) {
	names := def.Elements
	if len(names) == 0 {
		names = []string{def.Name}
	}

	var draws []DrawFunc
	var blocker *ClickBlocker
	if def.Blocker {
		blocker = NewClickBlocker(GetTheme().BlockerColor)
		draws = append(draws, blocker.Draw)
	}

	content := b.Content
	if content == nil {
		content = cardContent(len(names))
	}

	elements := make([]uipanel.Element, len(names))
	for i, name := range names {
		fade := NewFadeElement(b.FadeDuration)
		elements[i] = fade
		draws = append(draws, content(def, name, fade))
	}

	layer := b.Compositor.NewLayer(def.Name, draws...)
	cfg := uipanel.PanelConfig{
		Elements: elements,
		Surface:  layer,
	}
	if blocker != nil {
		cfg.Blocker = blocker
	}
	return cfg, layer
}

// Provider implements config.Binder. Instances get a fresh layer that is
// removed from the compositor on release.
func (b *Binder) Provider(def config.PanelDef) (uipanel.ResourceProvider, error) {
	return &layerProvider{
		binder: b,
		def:    def,
		layers: make(map[uipanel.ID]*Layer),
	}, nil
}

// Placeholder implements config.PlaceholderBinder.
func (b *Binder) Placeholder(def config.PanelDef) uipanel.Placeholder {
	size := b.SpinnerSize
	if size == 0 {
		size = 64
	}

	p, err := NewLoadingPlaceholder(def.Name, b.Localizer, b.Font, size)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to create loading placeholder", "panel", def.Name, "error", err)
		return nil
	}
	return &placeholderLayer{
		LoadingPlaceholder: p,
		layer:              b.Compositor.NewLayer(def.Name+"/loading", p.Draw),
	}
}

type layerProvider struct {
	binder *Binder
	def    config.PanelDef

	mu     sync.Mutex
	layers map[uipanel.ID]*Layer
}

var errNotInstantiated = errors.New("panel was not instantiated by this provider")

func (p *layerProvider) Instantiate(ctx context.Context, _ any) (*uipanel.Panel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, layer := p.binder.bind(p.def)
	panel := uipanel.NewPanel(config.PanelConfig(p.def, cfg))

	p.mu.Lock()
	p.layers[panel.ID()] = layer
	p.mu.Unlock()
	return panel, nil
}

func (p *layerProvider) Release(panel *uipanel.Panel) error {
	p.mu.Lock()
	layer, ok := p.layers[panel.ID()]
	delete(p.layers, panel.ID())
	p.mu.Unlock()

	if !ok {
		return errNotInstantiated
	}
	p.binder.Compositor.Remove(layer)
	return nil
}

// placeholderLayer shows a LoadingPlaceholder on its own layer above
// everything else.
type placeholderLayer struct {
	*LoadingPlaceholder
	layer *Layer
}

func (p *placeholderLayer) Show() {
	p.layer.SetVisible(true)
	p.layer.RaiseToTop()
	p.LoadingPlaceholder.Show()
}

func (p *placeholderLayer) Hide() {
	p.LoadingPlaceholder.Hide()
	p.layer.SetVisible(false)
}

// cardContent draws the elements of a panel as stacked horizontal bands of
// a centered card, each faded by its own element.
func cardContent(count int) ContentFunc {
	index := 0
	return func(_ config.PanelDef, _ string, fade *FadeElement) DrawFunc {
		i := index
		index++
		return func(r *sdl.Renderer, bounds sdl.Rect) {
			a := fade.Alpha()
			if a <= 0 {
				return
			}

			card := sdl.Rect{
				X: bounds.X + bounds.W/5,
				Y: bounds.Y + bounds.H/5,
				W: bounds.W * 3 / 5,
				H: bounds.H * 3 / 5,
			}
			band := card.H / int32(count)

			c := GetTheme().AccentColor
			r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
			r.SetDrawColor(c.R, c.G, c.B, uint8(float64(c.A)*clamp01(a)))
			r.FillRect(&sdl.Rect{X: card.X, Y: card.Y + band*int32(i), W: card.W, H: band})
		}
	}
}

var (
	_ config.Binder            = (*Binder)(nil)
	_ config.PlaceholderBinder = (*Binder)(nil)
	_ uipanel.ResourceProvider = (*layerProvider)(nil)
	_ uipanel.Surface          = (*Layer)(nil)
	_ uipanel.Element          = (*FadeElement)(nil)
	_ uipanel.Blocker          = (*ClickBlocker)(nil)
	_ uipanel.Placeholder      = (*LoadingPlaceholder)(nil)
)
