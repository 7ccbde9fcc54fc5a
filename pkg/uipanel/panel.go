package uipanel

import (
	"context"
	"fmt"
	"sync"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// PanelConfig configures a Panel.
type PanelConfig struct {
	Name            string    // Used in logs and errors, and for Controller.Lookup
	Elements        []Element // Animatable leaves, shown and hidden concurrently
	Blocker         Blocker   // Optional click blocker
	BlockerOpacity  float64   // Opacity of the blocker while visible
	Surface         Surface   // Optional visual/input surface
	ShowFromStart   bool      // Init panel: opened by InitAllPanels and kept by CloseAllButInit
	RefreshOnReopen bool      // Fire OnRefresh when opened while already open
	UseUnscaledTime bool      // Passed to every element's Init
	Hooks           Hooks
}

// Panel is a stackable UI surface with an open/closed lifecycle.
//
// All transitions of panels sharing a controller are serialized by that
// controller's lock. Element transitions run outside the lock.
type Panel struct {
	id      ID
	cfg     PanelConfig
	surface Surface
	state   *atomic.Int32
	ctrl    *atomic.Pointer[Controller]

	// Guarded by the controller lock.
	gen            uint64
	blockerVisible bool
	coveredTop     bool // Hid other blockers and has not been pushed yet
	sub            *Subscription
	owner          *LazyPanel

	notifyMu sync.Mutex
	changed  chan struct{}
}

// NewPanel creates a closed panel. It cannot open until Init gives it a controller.
func NewPanel(cfg PanelConfig) *Panel {
	cfg.Elements = append([]Element(nil), cfg.Elements...)

	surface := cfg.Surface
	if surface == nil {
		surface = noopSurface{}
	}

	return &Panel{
		id:      ID(internal.NextID()),
		cfg:     cfg,
		surface: surface,
		state:   atomic.NewInt32(int32(Closed)),
		ctrl:    atomic.NewPointer[Controller](nil),
		changed: make(chan struct{}),
	}
}

// ID returns the panel's instance identifier.
func (p *Panel) ID() ID { return p.id }

// Name returns the configured name.
func (p *Panel) Name() string { return p.cfg.Name }

// ShowFromStart reports whether this is an init panel.
func (p *Panel) ShowFromStart() bool { return p.cfg.ShowFromStart }

// RefreshOnReopen reports whether reopening fires OnRefresh.
func (p *Panel) RefreshOnReopen() bool { return p.cfg.RefreshOnReopen }

// HasBlocker reports whether the panel has a click blocker.
func (p *Panel) HasBlocker() bool { return p.cfg.Blocker != nil }

// State returns the current lifecycle state.
func (p *Panel) State() State { return State(p.state.Load()) }

// Controller returns the controller set by Init, or nil.
func (p *Panel) Controller() *Controller { return p.ctrl.Load() }

// BlockerVisible reports whether the click blocker is currently shown.
func (p *Panel) BlockerVisible() bool {
	c := p.Controller()
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return p.blockerVisible
}

// Init attaches the panel to c, hides its surface and initializes its
// elements. Panels of non-global controllers with a click blocker subscribe
// to the controller's blocker bus until Disable.
//
// A panel without elements is still attached but every transition is refused.
// A panel registered with another controller is refused; Unregister it first.
func (p *Panel) Init(c *Controller) error {
	if c == nil {
		return p.refuse("init", ErrNoController, nil)
	}

	if old := p.Controller(); old != nil && old != c && old.registered(p.id) {
		return p.refuse("init", ErrOtherController, nil)
	}

	var fx effects
	c.mu.Lock()
	err := p.initLocked(c, &fx)
	c.mu.Unlock()
	fx.run()
	return err
}

func (p *Panel) initLocked(c *Controller, fx *effects) error {
	if p.sub != nil {
		p.sub.Cancel()
		p.sub = nil
	}

	p.ctrl.Store(c)
	p.surface.SetVisible(false)
	p.surface.SetInteractable(false)
	c.registry[p.id] = p

	if len(p.cfg.Elements) == 0 {
		return p.refuse("init", ErrNoElements, fx)
	}

	for _, e := range p.cfg.Elements {
		e.Init(p.cfg.UseUnscaledTime)
	}

	if p.cfg.Blocker != nil && !c.isGlobalUI {
		p.sub = c.bus.Subscribe(p.onBlockerEvent)
	}

	c.log.Debug("panel initialized", "panel", p.cfg.Name, "id", p.id, "elements", len(p.cfg.Elements))
	return nil
}

// Disable releases the blocker bus subscription. The panel keeps its state.
func (p *Panel) Disable() {
	c := p.Controller()
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p.disableLocked()
}

func (p *Panel) disableLocked() {
	if p.sub != nil {
		p.sub.Cancel()
		p.sub = nil
	}
}

// Open shows the panel and returns once every element finished its show
// transition. Opening an open or opening panel is a no-op apart from the
// refresh hook. Opening a closing panel snaps it closed first.
func (p *Panel) Open(ctx context.Context) error {
	t, err := p.begin(true)
	if err != nil || t == nil {
		return err
	}
	return t.await(ctx)
}

// OpenAsync runs the synchronous part of Open and returns a Task for the rest.
// Callers that need completion must Wait on the task.
func (p *Panel) OpenAsync(ctx context.Context) *Task {
	t, err := p.begin(true)
	if err != nil || t == nil {
		return completedTask(err)
	}
	return goTask(func() error { return t.await(ctx) })
}

// Close hides the panel and returns once every element finished its hide
// transition. The panel leaves the stack before its elements finish.
// Closing a closed or closing panel is a no-op. Closing an opening panel
// snaps it open first.
func (p *Panel) Close(ctx context.Context) error {
	t, err := p.begin(false)
	if err != nil || t == nil {
		return err
	}
	return t.await(ctx)
}

// CloseAsync runs the synchronous part of Close and returns a Task for the rest.
func (p *Panel) CloseAsync(ctx context.Context) *Task {
	t, err := p.begin(false)
	if err != nil || t == nil {
		return completedTask(err)
	}
	return goTask(func() error { return t.await(ctx) })
}

// CloseAndOpen closes p, waits for it, then opens other.
func (p *Panel) CloseAndOpen(ctx context.Context, other UIPanel) error {
	if err := p.Close(ctx); err != nil {
		return err
	}
	return other.Open(ctx)
}

// CloseAllButInit forwards to the controller.
func (p *Panel) CloseAllButInit(ctx context.Context) []*Task {
	c := p.Controller()
	if c == nil {
		return nil
	}
	return c.CloseAllButInit(ctx)
}

// SetInteractable toggles input on the panel's surface without changing state.
func (p *Panel) SetInteractable(interactable bool) {
	p.surface.SetInteractable(interactable)
}

// MoveToFront raises the panel's surface to the top of the draw order.
func (p *Panel) MoveToFront() {
	p.surface.RaiseToTop()
}

// SetBlockerVisible shows or hides the click blocker and notifies the
// blocker bus. Hiding only announces the all-clear once the controller has
// no showing panels.
func (p *Panel) SetBlockerVisible(visible bool) {
	c := p.Controller()
	if c == nil || p.cfg.Blocker == nil {
		return
	}

	var fx effects
	c.mu.Lock()
	p.setBlockerVisibleLocked(visible, &fx)
	c.mu.Unlock()
	fx.run()
}

// WaitFor blocks until the panel is in state s or ctx is done.
func (p *Panel) WaitFor(ctx context.Context, s State) error {
	for {
		p.notifyMu.Lock()
		ch := p.changed
		p.notifyMu.Unlock()

		if p.State() == s {
			return nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Panel) setState(s State) {
	p.state.Store(int32(s))

	p.notifyMu.Lock()
	close(p.changed)
	p.changed = make(chan struct{})
	p.notifyMu.Unlock()
}

// transition is an element barrier that has been started but not awaited.
type transition struct {
	panel   *Panel
	gen     uint64
	opening bool
}

func (p *Panel) begin(opening bool) (*transition, error) {
	op := "close"
	if opening {
		op = "open"
	}

	c := p.Controller()
	if c == nil {
		if !opening && p.State() == Closed {
			return nil, nil
		}
		return nil, p.refuse(op, ErrNoController, nil)
	}

	var (
		fx  effects
		t   *transition
		err error
	)
	c.mu.Lock()
	if opening {
		t, err = p.beginOpenLocked(c, &fx)
	} else {
		t, err = p.beginCloseLocked(c, &fx)
	}
	c.mu.Unlock()
	fx.run()

	return t, err
}

func (p *Panel) beginOpenLocked(c *Controller, fx *effects) (*transition, error) {
	switch p.State() {
	case Opened, IsOpening:
		if p.cfg.RefreshOnReopen {
			fx.add(p.cfg.Hooks.OnRefresh)
		}
		return nil, nil
	}

	if len(p.cfg.Elements) == 0 {
		return nil, p.refuse("open", ErrNoElements, fx)
	}

	if p.State() == IsClosing {
		c.log.Debug("open requested while closing, forcing closed", "panel", p.cfg.Name, "id", p.id)
		p.forceClosedLocked(c, fx)
	}

	p.surface.SetVisible(true)
	p.surface.RaiseToTop()

	p.gen++
	p.setState(IsOpening)

	// Blockers already shown stop darkening before ours starts.
	if p.cfg.Blocker != nil {
		for id, other := range c.registry {
			if id != p.id && other.blockerVisible && other.State().IsLive() {
				other.applyBlockerLocked(false)
				p.coveredTop = true
			}
		}
	}
	p.setBlockerVisibleLocked(true, fx)
	fx.add(p.cfg.Hooks.OnStartShow)

	c.log.Debug("panel opening", "panel", p.cfg.Name, "id", p.id)
	return &transition{panel: p, gen: p.gen, opening: true}, nil
}

func (p *Panel) beginCloseLocked(c *Controller, fx *effects) (*transition, error) {
	switch p.State() {
	case Closed, IsClosing:
		return nil, nil
	}

	if len(p.cfg.Elements) == 0 {
		return nil, p.refuse("close", ErrNoElements, fx)
	}

	if p.State() == IsOpening {
		c.log.Debug("close requested while opening, forcing opened", "panel", p.cfg.Name, "id", p.id)
		p.forceOpenedLocked(fx)
	}

	p.gen++
	p.setState(IsClosing)
	fx.add(p.cfg.Hooks.OnStartHide)

	// Panels below become interactive while this one is still animating out.
	// A panel that is not on top stays in the stack until it finishes.
	if c.isOnTopLocked(p.id) {
		c.popLocked(fx)
	}

	p.surface.SetInteractable(false)

	c.log.Debug("panel closing", "panel", p.cfg.Name, "id", p.id)
	return &transition{panel: p, gen: p.gen, opening: false}, nil
}

func (t *transition) await(ctx context.Context) error {
	p := t.panel
	err := p.runElements(ctx, t.opening)

	c := p.Controller()
	var fx effects
	c.mu.Lock()
	switch {
	case p.gen != t.gen:
		// Force completion already applied the end state.
		c.log.Debug("transition superseded", "panel", p.cfg.Name, "id", p.id, "opening", t.opening)
	case t.opening && p.State() == IsOpening:
		c.pushLocked(p, &fx)
		p.finishOpenLocked(&fx)
	case !t.opening && p.State() == IsClosing:
		p.finishCloseLocked(c, &fx, true)
	}
	c.mu.Unlock()
	fx.run()

	if err != nil {
		op := "hide"
		if t.opening {
			op = "show"
		}
		c.log.Warn("element transition failed", "panel", p.cfg.Name, "id", p.id, "op", op, "error", err)
		return fmt.Errorf("uipanel: %s %q: %w", op, p.cfg.Name, err)
	}
	return nil
}

// runElements starts every element transition at once and waits for all of
// them. A failing element does not stop the others.
func (p *Panel) runElements(ctx context.Context, show bool) error {
	var g errgroup.Group
	for _, e := range p.cfg.Elements {
		g.Go(func() error {
			if show {
				return e.Show(ctx)
			}
			return e.Hide(ctx)
		})
	}
	return g.Wait()
}

func (p *Panel) finishOpenLocked(fx *effects) {
	p.surface.SetInteractable(true)
	p.setState(Opened)
	fx.add(p.cfg.Hooks.OnAllShown)
}

func (p *Panel) finishCloseLocked(c *Controller, fx *effects, release bool) {
	p.surface.SetVisible(false)
	c.removeLocked(p, fx)
	p.setBlockerVisibleLocked(false, fx)
	p.setState(Closed)
	if p.coveredTop {
		p.coveredTop = false
		c.restoreTopBlockerLocked(fx)
	}
	fx.add(p.cfg.Hooks.OnAllHidden)

	if release && p.owner != nil {
		owner, inst := p.owner, p
		fx.add(func() { owner.releaseAfterClose(inst) })
	}
}

// forceOpenedLocked applies the side effects of a finished open without
// waiting for the elements. The Opened state itself is not published because
// the caller moves straight on to closing.
func (p *Panel) forceOpenedLocked(fx *effects) {
	p.surface.SetVisible(true)
	p.surface.RaiseToTop()
	p.surface.SetInteractable(true)
	fx.add(p.cfg.Hooks.OnAllShown)
}

// forceClosedLocked finishes an in-flight close without waiting for the
// elements. The instance is not released since an open follows.
func (p *Panel) forceClosedLocked(c *Controller, fx *effects) {
	p.surface.SetInteractable(false)
	p.finishCloseLocked(c, fx, false)
}

// applyBlockerLocked changes the blocker opacity without any notification.
func (p *Panel) applyBlockerLocked(visible bool) {
	if p.cfg.Blocker == nil {
		return
	}
	p.blockerVisible = visible
	if visible {
		p.cfg.Blocker.SetOpacity(p.cfg.BlockerOpacity)
		return
	}
	p.cfg.Blocker.SetOpacity(0)
}

func (p *Panel) setBlockerVisibleLocked(visible bool, fx *effects) {
	if p.cfg.Blocker == nil {
		return
	}
	p.applyBlockerLocked(visible)

	c := p.Controller()
	if c.isGlobalUI {
		return
	}

	if visible {
		fx.publish(c.bus, BlockerEvent{Signal: BlockerActive, Source: p.id, from: c})
		return
	}

	if c.stack.Len() != 0 {
		return
	}

	fx.publish(c.bus, BlockerEvent{Signal: BlockersInactive, Source: p.id, from: c})
}

// onBlockerEvent keeps blockers of different controllers from stacking: a
// blocker shown elsewhere hides ours, and the all-clear restores ours if we
// are on top of our stack and no panel of ours is darkening already. Within
// one controller an opening panel hides the top's blocker directly.
func (p *Panel) onBlockerEvent(ev BlockerEvent) {
	c := p.Controller()
	if c == nil || ev.Source == p.id || ev.from == c {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p.sub == nil {
		return
	}

	switch ev.Signal {
	case BlockerActive:
		if p.blockerVisible {
			p.applyBlockerLocked(false)
		}
	case BlockersInactive:
		if c.isOnTopLocked(p.id) && p.State().IsLive() && !c.blockerShownLocked(p.id) {
			p.applyBlockerLocked(true)
		}
	}
}

// refuse builds a ValidationError and reports it through the logger and the
// validation hook. With a nil fx the hook runs immediately.
func (p *Panel) refuse(op string, cause error, fx *effects) error {
	err := &ValidationError{Panel: p.cfg.Name, Op: op, Err: cause}

	log := internal.GetInternalLogger()
	if c := p.Controller(); c != nil {
		log = c.log
	}
	log.Warn("panel transition refused", "panel", p.cfg.Name, "id", p.id, "op", op, "error", cause)

	if hook := p.cfg.Hooks.OnValidationError; hook != nil {
		report := func() { hook(err) }
		if fx == nil {
			report()
		} else {
			fx.add(report)
		}
	}
	return err
}

// effects collects hooks and bus deliveries while the controller lock is held
// so they can run, in order, after it is released.
type effects []func()

func (fx *effects) add(fn func()) {
	if fn != nil {
		*fx = append(*fx, fn)
	}
}

func (fx *effects) publish(bus *BlockerBus, ev BlockerEvent) {
	*fx = append(*fx, func() { bus.Publish(ev) })
}

func (fx effects) run() {
	for _, fn := range fx {
		fn()
	}
}
