package uipanel

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// BlockerSignal is the kind of click blocker broadcast.
type BlockerSignal int

const (
	// BlockerActive is published when a panel shows its click blocker.
	BlockerActive BlockerSignal = iota

	// BlockersInactive is published when a controller hides a blocker and has
	// no showing panels left.
	BlockersInactive
)

// String returns a human-readable signal name.
func (s BlockerSignal) String() string {
	switch s {
	case BlockerActive:
		return "active"
	case BlockersInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// BlockerEvent is delivered to every subscriber of a BlockerBus.
type BlockerEvent struct {
	Signal BlockerSignal
	Source ID // Panel that published the event

	from *Controller
}

// BlockerBus multicasts click blocker activity between panels. Share one bus
// between controllers to coordinate blockers across them; a controller
// without an explicit bus gets a private one.
type BlockerBus struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64

	published *atomic.Uint64
}

// NewBlockerBus creates an empty bus.
func NewBlockerBus() *BlockerBus {
	return &BlockerBus{
		subs:      make(map[uint64]*Subscription),
		published: atomic.NewUint64(0),
	}
}

// Subscription is the handle returned by BlockerBus.Subscribe.
type Subscription struct {
	bus       *BlockerBus
	id        uint64
	handler   func(BlockerEvent)
	cancelled *atomic.Bool
}

// Subscribe registers handler for every future event. Handlers run on the
// publishing goroutine, in subscription order.
func (b *BlockerBus) Subscribe(handler func(BlockerEvent)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus:       b,
		id:        b.nextID,
		handler:   handler,
		cancelled: atomic.NewBool(false),
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers ev to every active subscription.
func (b *BlockerBus) Publish(ev BlockerEvent) {
	b.published.Inc()

	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })

	for _, s := range subs {
		if s.IsActive() {
			s.handler(ev)
		}
	}
}

// Len returns the number of active subscriptions.
func (b *BlockerBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Published returns how many events have been published on the bus.
func (b *BlockerBus) Published() uint64 {
	return b.published.Load()
}

// IsActive returns true until Cancel is called.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel permanently stops delivery. Calling it more than once is safe.
func (s *Subscription) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
}
