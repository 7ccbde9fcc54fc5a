package headless

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// TimedElement shows and hides by sleeping for fixed durations.
type TimedElement struct {
	Name         string
	ShowDuration time.Duration
	HideDuration time.Duration

	shows    *atomic.Int64
	hides    *atomic.Int64
	unscaled *atomic.Bool
	inits    *atomic.Int64
}

// NewTimedElement creates an element with the given transition lengths.
func NewTimedElement(name string, show, hide time.Duration) *TimedElement {
	return &TimedElement{
		Name:         name,
		ShowDuration: show,
		HideDuration: hide,
		shows:        atomic.NewInt64(0),
		hides:        atomic.NewInt64(0),
		unscaled:     atomic.NewBool(false),
		inits:        atomic.NewInt64(0),
	}
}

func (e *TimedElement) Init(useUnscaledTime bool) {
	e.unscaled.Store(useUnscaledTime)
	e.inits.Inc()
}

func (e *TimedElement) Show(ctx context.Context) error {
	e.shows.Inc()
	return sleep(ctx, e.ShowDuration)
}

func (e *TimedElement) Hide(ctx context.Context) error {
	e.hides.Inc()
	return sleep(ctx, e.HideDuration)
}

// Shows returns how many show transitions were started.
func (e *TimedElement) Shows() int64 { return e.shows.Load() }

// Hides returns how many hide transitions were started.
func (e *TimedElement) Hides() int64 { return e.hides.Load() }

// Inits returns how many times Init was called.
func (e *TimedElement) Inits() int64 { return e.inits.Load() }

// UsesUnscaledTime returns the flag passed to the last Init.
func (e *TimedElement) UsesUnscaledTime() bool { return e.unscaled.Load() }

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GatedElement blocks every transition until Release is called, which makes
// interleavings deterministic in tests.
type GatedElement struct {
	mu      sync.Mutex
	waiters []chan struct{}

	shows *atomic.Int64
	hides *atomic.Int64
}

// NewGatedElement creates an element with no pending transitions.
func NewGatedElement() *GatedElement {
	return &GatedElement{
		shows: atomic.NewInt64(0),
		hides: atomic.NewInt64(0),
	}
}

func (g *GatedElement) Init(bool) {}

func (g *GatedElement) Show(ctx context.Context) error {
	g.shows.Inc()
	return g.wait(ctx)
}

func (g *GatedElement) Hide(ctx context.Context) error {
	g.hides.Inc()
	return g.wait(ctx)
}

func (g *GatedElement) wait(ctx context.Context) error {
	ch := make(chan struct{})
	g.mu.Lock()
	g.waiters = append(g.waiters, ch)
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of transitions waiting for Release.
func (g *GatedElement) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}

// Release lets every pending transition finish.
func (g *GatedElement) Release() {
	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.mu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
}

// Shows returns how many show transitions were started.
func (g *GatedElement) Shows() int64 { return g.shows.Load() }

// Hides returns how many hide transitions were started.
func (g *GatedElement) Hides() int64 { return g.hides.Load() }
