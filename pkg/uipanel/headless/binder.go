package headless

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
)

// Binder is a config.Binder that backs every layout entry with timed
// elements and recorders. Layout entries without elements get a single
// element named after the panel.
type Binder struct {
	ShowDuration  time.Duration
	HideDuration  time.Duration
	ProviderDelay time.Duration

	// Hooks, if set, supplies the hooks of each panel by name.
	Hooks func(name string) uipanel.Hooks

	mu        sync.Mutex
	blockers  map[string]*Blocker
	providers map[string]*Provider
}

// Bind implements config.Binder.
func (b *Binder) Bind(def config.PanelDef) (uipanel.PanelConfig, error) {
	names := def.Elements
	if len(names) == 0 {
		names = []string{def.Name}
	}

	elements := make([]uipanel.Element, len(names))
	for i, name := range names {
		elements[i] = NewTimedElement(name, b.ShowDuration, b.HideDuration)
	}

	cfg := uipanel.PanelConfig{
		Elements: elements,
		Surface:  &Surface{},
	}
	if def.Blocker {
		blocker := &Blocker{}
		cfg.Blocker = blocker

		b.mu.Lock()
		if b.blockers == nil {
			b.blockers = make(map[string]*Blocker)
		}
		b.blockers[def.Name] = blocker
		b.mu.Unlock()
	}
	if b.Hooks != nil {
		cfg.Hooks = b.Hooks(def.Name)
	}
	return cfg, nil
}

// Provider implements config.Binder. Each instance is bound like a plain
// panel from the same entry.
func (b *Binder) Provider(def config.PanelDef) (uipanel.ResourceProvider, error) {
	p := NewProvider(func(any) (*uipanel.Panel, error) {
		cfg, err := b.Bind(def)
		if err != nil {
			return nil, err
		}
		return uipanel.NewPanel(config.PanelConfig(def, cfg)), nil
	}, b.ProviderDelay)

	b.mu.Lock()
	if b.providers == nil {
		b.providers = make(map[string]*Provider)
	}
	b.providers[def.Name] = p
	b.mu.Unlock()
	return p, nil
}

// Placeholder implements config.PlaceholderBinder.
func (b *Binder) Placeholder(config.PanelDef) uipanel.Placeholder {
	return &Placeholder{}
}

// BlockerFor returns the most recent blocker bound for name.
func (b *Binder) BlockerFor(name string) (*Blocker, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blocker, ok := b.blockers[name]
	return blocker, ok
}

// ProviderFor returns the provider created for the lazy panel name.
func (b *Binder) ProviderFor(name string) (*Provider, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.providers[name]
	return p, ok
}

var (
	_ config.Binder            = (*Binder)(nil)
	_ config.PlaceholderBinder = (*Binder)(nil)
)
