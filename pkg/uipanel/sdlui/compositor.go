package sdlui

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// DrawFunc renders one layer into bounds.
type DrawFunc func(r *sdl.Renderer, bounds sdl.Rect)

// Compositor keeps layers in draw order, bottom first.
type Compositor struct {
	mu     sync.Mutex
	layers []*Layer
}

func NewCompositor() *Compositor {
	return &Compositor{}
}

// NewLayer adds a hidden, non-interactable layer on top of the others.
func (c *Compositor) NewLayer(name string, draws ...DrawFunc) *Layer {
	l := &Layer{
		name:         name,
		comp:         c,
		draws:        draws,
		visible:      atomic.NewBool(false),
		interactable: atomic.NewBool(false),
	}

	c.mu.Lock()
	c.layers = append(c.layers, l)
	c.mu.Unlock()
	return l
}

// Remove drops l from the draw order.
func (c *Compositor) Remove(l *Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(l)
}

// Order returns the layer names, bottom first.
func (c *Compositor) Order() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.layers))
	for i, l := range c.layers {
		names[i] = l.name
	}
	return names
}

// HitTest returns the topmost visible layer that accepts input.
func (c *Compositor) HitTest() (*Layer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if l.Visible() && l.Interactable() {
			return l, true
		}
	}
	return nil, false
}

// Render draws every visible layer, bottom first.
func (c *Compositor) Render(r *sdl.Renderer, bounds sdl.Rect) {
	c.mu.Lock()
	layers := append([]*Layer(nil), c.layers...)
	c.mu.Unlock()

	for _, l := range layers {
		if !l.Visible() {
			continue
		}
		for _, draw := range l.draws {
			draw(r, bounds)
		}
	}
}

func (c *Compositor) raise(l *Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.removeLocked(l) {
		return
	}
	c.layers = append(c.layers, l)
}

func (c *Compositor) lower(l *Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.removeLocked(l) {
		return
	}
	c.layers = append([]*Layer{l}, c.layers...)
}

func (c *Compositor) removeLocked(l *Layer) bool {
	for i, e := range c.layers {
		if e == l {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			return true
		}
	}
	return false
}

// Layer is a uipanel.Surface drawn by a Compositor.
type Layer struct {
	name         string
	comp         *Compositor
	draws        []DrawFunc
	visible      *atomic.Bool
	interactable *atomic.Bool
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) SetVisible(visible bool) { l.visible.Store(visible) }

func (l *Layer) SetInteractable(interactable bool) { l.interactable.Store(interactable) }

func (l *Layer) RaiseToTop() { l.comp.raise(l) }

func (l *Layer) LowerToBottom() { l.comp.lower(l) }

func (l *Layer) Visible() bool { return l.visible.Load() }

func (l *Layer) Interactable() bool { return l.interactable.Load() }
