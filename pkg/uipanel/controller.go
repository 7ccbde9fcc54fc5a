package uipanel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/stack"
)

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Name              string        // Used in logs
	IsGlobalUI        bool          // Global controllers neither publish nor follow blocker broadcasts
	ShowInitFromStart bool          // Start runs InitAllPanels
	SettleDelay       time.Duration // Wait before opening each init panel; 0 uses the default, negative disables
	Bus               *BlockerBus   // Shared blocker bus; nil creates a private one
	Logger            *slog.Logger  // Defaults to the internal logger
	Panels            []UIPanel     // Configured panels in init order; nil slots are reported and skipped
}

// Controller owns the stack of open panels of one UI context. It decides
// which panel is on top, hides blockers of covered panels and sequences the
// initial opening of init panels.
type Controller struct {
	name              string
	isGlobalUI        bool
	showInitFromStart bool
	settleDelay       time.Duration
	bus               *BlockerBus
	log               *slog.Logger

	mu       sync.Mutex
	stack    *stack.Stack[*Panel]
	registry map[ID]*Panel
	panels   []UIPanel
}

// NewController creates a controller. Panels are attached by InitAllPanels
// or by calling their Init with the controller.
func NewController(opts ControllerOptions) *Controller {
	bus := opts.Bus
	if bus == nil {
		bus = NewBlockerBus()
	}

	log := opts.Logger
	if log == nil {
		log = internal.GetInternalLogger()
	}
	if opts.Name != "" {
		log = log.With("controller", opts.Name)
	}

	settle := opts.SettleDelay
	if settle == 0 {
		settle = constants.DefaultSettleDelay
	}

	return &Controller{
		name:              opts.Name,
		isGlobalUI:        opts.IsGlobalUI,
		showInitFromStart: opts.ShowInitFromStart,
		settleDelay:       settle,
		bus:               bus,
		log:               log,
		stack:             stack.New[*Panel](),
		registry:          make(map[ID]*Panel),
		panels:            append([]UIPanel(nil), opts.Panels...),
	}
}

// Name returns the controller name.
func (c *Controller) Name() string { return c.name }

// IsGlobalUI reports whether this is a global UI controller.
func (c *Controller) IsGlobalUI() bool { return c.isGlobalUI }

// Bus returns the blocker bus the controller publishes on.
func (c *Controller) Bus() *BlockerBus { return c.bus }

// Logger returns the controller's logger.
func (c *Controller) Logger() *slog.Logger { return c.log }

// AddPanel appends a panel to the init list.
func (c *Controller) AddPanel(p UIPanel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panels = append(c.panels, p)
}

// Panels returns the configured init list.
func (c *Controller) Panels() []UIPanel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]UIPanel(nil), c.panels...)
}

// Lookup finds a configured panel by name, then any registered instance.
func (c *Controller) Lookup(name string) (UIPanel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.panels {
		if !isNilPanel(p) && p.Name() == name {
			return p, true
		}
	}
	for _, p := range c.registry {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Start runs InitAllPanels when ShowInitFromStart is set.
func (c *Controller) Start(ctx context.Context) error {
	if !c.showInitFromStart {
		return nil
	}
	return c.InitAllPanels(ctx)
}

// InitAllPanels initializes every configured panel and opens the init panels,
// each after the settle delay. The opens are not awaited. Missing or invalid
// panels are reported in the returned error and do not stop the others.
func (c *Controller) InitAllPanels(ctx context.Context) error {
	var errs []error

	for i, p := range c.Panels() {
		if isNilPanel(p) {
			c.log.Error("configured panel is missing", "index", i)
			errs = append(errs, &ConfigError{Index: i, Err: ErrPanelMissing})
			continue
		}

		if err := p.Init(c); err != nil {
			errs = append(errs, &ConfigError{Index: i, Panel: p.Name(), Err: err})
			continue
		}

		if !p.ShowFromStart() {
			continue
		}

		if err := settle(ctx, c.settleDelay); err != nil {
			errs = append(errs, err)
			return errors.Join(errs...)
		}
		p.OpenAsync(ctx)
	}

	return errors.Join(errs...)
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterLazy attaches a lazy panel's freshly acquired instance. The
// instance is released through its owner once it finishes closing. The
// instance of an init lazy panel is itself an init panel.
func (c *Controller) RegisterLazy(instance *Panel, owner *LazyPanel) error {
	c.mu.Lock()
	instance.owner = owner
	if owner.ShowFromStart() {
		instance.cfg.ShowFromStart = true
	}
	c.mu.Unlock()
	return instance.Init(c)
}

// Unregister detaches a panel: its subscription is cancelled and it leaves
// the registry and the stack.
func (c *Controller) Unregister(p *Panel) {
	var fx effects
	c.mu.Lock()
	p.disableLocked()
	p.owner = nil
	delete(c.registry, p.id)
	c.removeLocked(p, &fx)
	c.mu.Unlock()
	fx.run()
}

func (c *Controller) registered(id ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.registry[id]
	return ok
}

// Close disables every registered panel. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.registry {
		p.disableLocked()
	}
	c.stack.Clear()
}

// ShowingPanelCount returns the number of stack entries.
func (c *Controller) ShowingPanelCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Len()
}

// Stack returns the stacked panels, bottom first.
func (c *Controller) Stack() []*Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Entries()
}

// Top returns the panel on top of the stack.
func (c *Controller) Top() (*Panel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Peek()
}

// IsOnTop reports whether p is the top of the stack. A lazy panel is on top
// when its live instance is.
func (c *Controller) IsOnTop(p UIPanel) bool {
	if isNilPanel(p) {
		return false
	}

	id := p.ID()
	if lazy, ok := p.(*LazyPanel); ok {
		inst := lazy.Instance()
		if inst == nil {
			return false
		}
		id = inst.ID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOnTopLocked(id)
}

// PushToStack puts p on top. The previous top's blocker is hidden so only
// the newest panel blocks input. Panels push themselves when an open completes.
func (c *Controller) PushToStack(p *Panel) {
	var fx effects
	c.mu.Lock()
	c.pushLocked(p, &fx)
	c.mu.Unlock()
	fx.run()
}

// PopFromStack removes the top entry and restores the blocker of the first
// remaining entry that is still open, dropping stale entries on the way.
func (c *Controller) PopFromStack() {
	var fx effects
	c.mu.Lock()
	c.popLocked(&fx)
	c.mu.Unlock()
	fx.run()
}

// CloseTopPanel closes the top panel if it is open.
func (c *Controller) CloseTopPanel(ctx context.Context) *Task {
	top, ok := c.Top()
	if !ok {
		return completedTask(nil)
	}
	return c.ClosePanelIfOpened(ctx, top)
}

// CloseTopExceptInit closes the top panel unless it is an init panel.
func (c *Controller) CloseTopExceptInit(ctx context.Context) *Task {
	top, ok := c.Top()
	if !ok || top.ShowFromStart() {
		return completedTask(nil)
	}
	return c.ClosePanelIfOpened(ctx, top)
}

// ClosePanelIfOpened closes p only if it is fully open.
func (c *Controller) ClosePanelIfOpened(ctx context.Context, p UIPanel) *Task {
	if isNilPanel(p) || p.State() != Opened {
		return completedTask(nil)
	}
	return p.CloseAsync(ctx)
}

// CloseAllButInit closes top panels until the stack is empty or an init panel
// is on top. Closes are not awaited; the returned tasks track them.
func (c *Controller) CloseAllButInit(ctx context.Context) []*Task {
	var tasks []*Task
	for {
		top, ok := c.Top()
		if !ok || top.ShowFromStart() {
			return tasks
		}

		tasks = append(tasks, top.CloseAsync(ctx))

		if next, ok := c.Top(); ok && next == top {
			c.log.Warn("close did not remove top panel, stopping", "panel", top.Name(), "id", top.ID(), "state", top.State())
			return tasks
		}
	}
}

// NotifyGlobalBlockerActive publishes a BlockerActive event on the bus.
func (c *Controller) NotifyGlobalBlockerActive(source ID) {
	c.bus.Publish(BlockerEvent{Signal: BlockerActive, Source: source, from: c})
}

// NotifyAllGlobalBlockersInactive publishes a BlockersInactive event on the bus.
func (c *Controller) NotifyAllGlobalBlockersInactive(source ID) {
	c.bus.Publish(BlockerEvent{Signal: BlockersInactive, Source: source, from: c})
}

func (c *Controller) isOnTopLocked(id ID) bool {
	top, ok := c.stack.Peek()
	return ok && top.id == id
}

func (c *Controller) pushLocked(p *Panel, fx *effects) {
	if top, ok := c.stack.Peek(); ok {
		top.applyBlockerLocked(false)
	}

	c.stack.Remove(func(e *Panel) bool { return e.id == p.id })
	c.stack.Push(p)
	p.coveredTop = false
	p.applyBlockerLocked(!c.blockerShownLocked(p.id))

	c.log.Debug("panel pushed", "panel", p.cfg.Name, "id", p.id, "depth", c.stack.Len())
}

func (c *Controller) popLocked(fx *effects) {
	if _, ok := c.stack.Pop(); !ok {
		return
	}

	for {
		top, ok := c.stack.Peek()
		if !ok {
			return
		}
		if top.State().IsLive() {
			if !c.blockerShownLocked(top.id) {
				top.setBlockerVisibleLocked(true, fx)
			}
			return
		}
		c.log.Debug("dropping stale stack entry", "panel", top.cfg.Name, "id", top.id, "state", top.State())
		c.stack.Pop()
	}
}

// blockerShownLocked reports whether a panel other than except that is
// opening or open shows its blocker. Closing panels do not count.
func (c *Controller) blockerShownLocked(except ID) bool {
	for id, p := range c.registry {
		if id != except && p.blockerVisible && p.State().IsLive() {
			return true
		}
	}
	return false
}

// restoreTopBlockerLocked shows the top's blocker again when nothing else
// darkens. Used when a panel that opened over it closes before being pushed.
func (c *Controller) restoreTopBlockerLocked(fx *effects) {
	top, ok := c.stack.Peek()
	if !ok || top.blockerVisible || !top.State().IsLive() || c.blockerShownLocked(top.id) {
		return
	}
	top.setBlockerVisibleLocked(true, fx)
}

// removeLocked takes p out of the stack wherever it is.
func (c *Controller) removeLocked(p *Panel, fx *effects) {
	if c.isOnTopLocked(p.id) {
		c.popLocked(fx)
		return
	}
	c.stack.Remove(func(e *Panel) bool { return e.id == p.id })
}

func isNilPanel(p UIPanel) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *Panel:
		return v == nil
	case *LazyPanel:
		return v == nil
	default:
		return false
	}
}
