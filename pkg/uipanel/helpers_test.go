package uipanel_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/headless"
)

const testOpacity = 0.6

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newController(opts uipanel.ControllerOptions) *uipanel.Controller {
	if opts.SettleDelay == 0 {
		opts.SettleDelay = -1
	}
	return uipanel.NewController(opts)
}

// hookLog records hook invocations in order.
type hookLog struct {
	mu     sync.Mutex
	events []string
}

func (h *hookLog) record(name string) func() {
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = append(h.events, name)
	}
}

func (h *hookLog) hooks() uipanel.Hooks {
	return uipanel.Hooks{
		OnStartShow: h.record("start-show"),
		OnAllShown:  h.record("all-shown"),
		OnStartHide: h.record("start-hide"),
		OnAllHidden: h.record("all-hidden"),
		OnRefresh:   h.record("refresh"),
		OnValidationError: func(error) {
			h.record("validation")()
		},
	}
}

func (h *hookLog) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func (h *hookLog) Count(name string) int {
	n := 0
	for _, e := range h.Events() {
		if e == name {
			n++
		}
	}
	return n
}

// fixture is a panel together with the recorders wired into it.
type fixture struct {
	*uipanel.Panel
	log     *hookLog
	blocker *headless.Blocker
	surface *headless.Surface
	gate    *headless.GatedElement
	timed   *headless.TimedElement
}

// newTimedPanel builds a panel whose transitions finish immediately.
func newTimedPanel(name string, configure ...func(*uipanel.PanelConfig)) *fixture {
	f := &fixture{
		log:     &hookLog{},
		blocker: &headless.Blocker{},
		surface: &headless.Surface{},
		timed:   headless.NewTimedElement(name, 0, 0),
	}
	cfg := uipanel.PanelConfig{
		Name:           name,
		Elements:       []uipanel.Element{f.timed, headless.NewTimedElement(name+"-2", 0, 0)},
		Blocker:        f.blocker,
		BlockerOpacity: testOpacity,
		Surface:        f.surface,
		Hooks:          f.log.hooks(),
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	f.Panel = uipanel.NewPanel(cfg)
	return f
}

// newGatedPanel builds a panel whose transitions wait for gate.Release.
func newGatedPanel(name string, configure ...func(*uipanel.PanelConfig)) *fixture {
	f := &fixture{
		log:     &hookLog{},
		blocker: &headless.Blocker{},
		surface: &headless.Surface{},
		gate:    headless.NewGatedElement(),
	}
	cfg := uipanel.PanelConfig{
		Name:           name,
		Elements:       []uipanel.Element{f.gate},
		Blocker:        f.blocker,
		BlockerOpacity: testOpacity,
		Surface:        f.surface,
		Hooks:          f.log.hooks(),
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	f.Panel = uipanel.NewPanel(cfg)
	return f
}

func initFlag(cfg *uipanel.PanelConfig) { cfg.ShowFromStart = true }

func stackNames(c *uipanel.Controller) []string {
	var names []string
	for _, p := range c.Stack() {
		names = append(names, p.Name())
	}
	return names
}

// blockerTrace records SetOpacity calls of several blockers in one order.
type blockerTrace struct {
	mu     sync.Mutex
	events []opacityEvent
}

type opacityEvent struct {
	name    string
	opacity float64
}

type tracedBlocker struct {
	name  string
	trace *blockerTrace
}

func (b *tracedBlocker) SetOpacity(opacity float64) {
	b.trace.mu.Lock()
	defer b.trace.mu.Unlock()
	b.trace.events = append(b.trace.events, opacityEvent{name: b.name, opacity: opacity})
}

// attach replaces a panel's blocker with one that records into the trace.
func (tr *blockerTrace) attach(name string) func(*uipanel.PanelConfig) {
	return func(cfg *uipanel.PanelConfig) {
		cfg.Blocker = &tracedBlocker{name: name, trace: tr}
	}
}

// maxVisible replays the trace and returns the most blockers that were
// visible at the same time.
func (tr *blockerTrace) maxVisible() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	visible := map[string]bool{}
	most := 0
	for _, ev := range tr.events {
		visible[ev.name] = ev.opacity > 0
		n := 0
		for _, v := range visible {
			if v {
				n++
			}
		}
		most = max(most, n)
	}
	return most
}
