package headless

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"go.uber.org/atomic"
)

// ErrNotLive is returned when releasing a panel the provider does not hold.
var ErrNotLive = errors.New("panel was not instantiated by this provider")

// Factory builds a fresh panel instance for a Provider.
type Factory func(parent any) (*uipanel.Panel, error)

// Provider is an in-memory uipanel.ResourceProvider.
type Provider struct {
	factory Factory
	delay   time.Duration

	mu      sync.Mutex
	live    map[uipanel.ID]*uipanel.Panel
	failure error

	instantiated *atomic.Int64
	released     *atomic.Int64
}

// NewProvider creates a provider that calls factory for every instantiate.
// A positive delay is awaited first, honoring the context.
func NewProvider(factory Factory, delay time.Duration) *Provider {
	return &Provider{
		factory:      factory,
		delay:        delay,
		live:         make(map[uipanel.ID]*uipanel.Panel),
		instantiated: atomic.NewInt64(0),
		released:     atomic.NewInt64(0),
	}
}

// FailNext makes the next Instantiate return err.
func (p *Provider) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure = err
}

func (p *Provider) Instantiate(ctx context.Context, parent any) (*uipanel.Panel, error) {
	if err := sleep(ctx, p.delay); err != nil {
		return nil, err
	}

	p.mu.Lock()
	failure := p.failure
	p.failure = nil
	p.mu.Unlock()
	if failure != nil {
		return nil, failure
	}

	panel, err := p.factory(parent)
	if err != nil {
		return nil, err
	}
	if panel == nil {
		return nil, nil
	}

	p.mu.Lock()
	p.live[panel.ID()] = panel
	p.mu.Unlock()
	p.instantiated.Inc()
	return panel, nil
}

func (p *Provider) Release(panel *uipanel.Panel) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.live[panel.ID()]; !ok {
		return ErrNotLive
	}
	delete(p.live, panel.ID())
	p.released.Inc()
	return nil
}

// Instantiated returns the number of successful Instantiate calls.
func (p *Provider) Instantiated() int64 { return p.instantiated.Load() }

// Released returns the number of successful Release calls.
func (p *Provider) Released() int64 { return p.released.Load() }

// Live returns the number of instances not yet released.
func (p *Provider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

var (
	_ uipanel.ResourceProvider = (*Provider)(nil)
	_ uipanel.Element          = (*TimedElement)(nil)
	_ uipanel.Element          = (*GatedElement)(nil)
	_ uipanel.Surface          = (*Surface)(nil)
	_ uipanel.Blocker          = (*Blocker)(nil)
	_ uipanel.Placeholder      = (*Placeholder)(nil)
)
