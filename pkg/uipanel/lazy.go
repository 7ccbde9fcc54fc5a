package uipanel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
	"go.uber.org/atomic"
)

// ErrNoProvider indicates a lazy panel was configured without a resource provider.
var ErrNoProvider = errors.New("lazy panel has no resource provider")

// LazyConfig configures a LazyPanel.
type LazyConfig struct {
	Name           string
	ShowFromStart  bool
	Provider       ResourceProvider
	Parent         any           // Passed to Provider.Instantiate
	Placeholder    Placeholder   // Shown while the instance is being acquired
	Surface        Surface       // Wrapper surface, raised on open and lowered on release
	AcquireTimeout time.Duration // 0 uses the default, negative disables

	// OnValidationError receives refused operations of the wrapper itself.
	// Instances report through their own Hooks.
	OnValidationError func(error)
}

// LazyPanel defers creating its Panel until the first open and releases it
// after it closes. Until an instance exists the wrapper reports its own state
// (Closed, or IsOpening while acquiring).
//
// Opens of the same LazyPanel must be serialized by the caller: two opens
// racing from the empty state both acquire an instance, and the one that
// finishes second is released unused.
type LazyPanel struct {
	id          ID
	cfg         LazyConfig
	surface     Surface
	placeholder Placeholder
	state       *atomic.Int32
	ctrl        *atomic.Pointer[Controller]

	mu       sync.Mutex
	instance *Panel
	opening  int // forwarded opens whose synchronous part has not run yet
}

// NewLazyPanel creates an empty lazy panel.
func NewLazyPanel(cfg LazyConfig) *LazyPanel {
	if cfg.AcquireTimeout == 0 {
		cfg.AcquireTimeout = constants.DefaultAcquireTimeout
	}

	surface := cfg.Surface
	if surface == nil {
		surface = noopSurface{}
	}
	placeholder := cfg.Placeholder
	if placeholder == nil {
		placeholder = noopPlaceholder{}
	}

	return &LazyPanel{
		id:          ID(internal.NextID()),
		cfg:         cfg,
		surface:     surface,
		placeholder: placeholder,
		state:       atomic.NewInt32(int32(Closed)),
		ctrl:        atomic.NewPointer[Controller](nil),
	}
}

// ID returns the wrapper's identifier. The instance has its own.
func (l *LazyPanel) ID() ID { return l.id }

// Name returns the configured name.
func (l *LazyPanel) Name() string { return l.cfg.Name }

// ShowFromStart reports whether this is an init panel.
func (l *LazyPanel) ShowFromStart() bool { return l.cfg.ShowFromStart }

// Instance returns the live panel instance, or nil in the construction gap.
func (l *LazyPanel) Instance() *Panel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.instance
}

// State returns the instance state, or the wrapper's own state without an instance.
func (l *LazyPanel) State() State {
	l.mu.Lock()
	inst, opening := l.instance, l.opening > 0
	l.mu.Unlock()

	if inst == nil {
		return State(l.state.Load())
	}
	if s := inst.State(); s != Closed || !opening {
		return s
	}
	// Installed, but the forwarded open has not started yet.
	return IsOpening
}

// Init attaches the wrapper to c. The instance is attached when it is acquired.
func (l *LazyPanel) Init(c *Controller) error {
	if c == nil {
		return l.refuse("init", ErrNoController, nil)
	}
	l.ctrl.Store(c)
	if l.cfg.Provider == nil {
		return l.refuse("init", ErrNoProvider, c)
	}
	return nil
}

// SetBlockerVisible forwards to the instance, if any.
func (l *LazyPanel) SetBlockerVisible(visible bool) {
	if inst := l.Instance(); inst != nil {
		inst.SetBlockerVisible(visible)
	}
}

// Open acquires the instance if needed, then opens it and waits for the
// show transition. An acquisition failure returns a ResourceError and
// leaves the wrapper empty.
func (l *LazyPanel) Open(ctx context.Context) error {
	return l.OpenAsync(ctx).Wait(ctx)
}

// OpenAsync starts Open and returns its Task. With a live instance the
// instance's synchronous part runs before returning.
func (l *LazyPanel) OpenAsync(ctx context.Context) *Task {
	c := l.ctrl.Load()
	if c == nil {
		return completedTask(l.refuse("open", ErrNoController, nil))
	}
	if l.cfg.Provider == nil {
		return completedTask(l.refuse("open", ErrNoProvider, c))
	}

	l.mu.Lock()
	inst := l.instance
	if inst != nil {
		l.opening++
		l.mu.Unlock()
		l.surface.RaiseToTop()
		return l.forwardOpen(ctx, inst)
	}
	l.state.Store(int32(IsOpening))
	l.mu.Unlock()
	l.surface.RaiseToTop()

	return goTask(func() error {
		inst, err := l.acquire(ctx, c)
		if err != nil {
			l.state.Store(int32(Closed))
			return err
		}
		return l.forwardOpen(ctx, inst).Wait(ctx)
	})
}

// forwardOpen opens inst. The caller has counted the open in l.opening.
func (l *LazyPanel) forwardOpen(ctx context.Context, inst *Panel) *Task {
	t := inst.OpenAsync(ctx)

	l.mu.Lock()
	l.opening--
	l.mu.Unlock()

	return t
}

// acquire instantiates, registers and installs a new instance. It returns
// with l.opening counted for the instance it installed.
func (l *LazyPanel) acquire(ctx context.Context, c *Controller) (*Panel, error) {
	l.placeholder.Show()

	actx, cancel := ctx, context.CancelFunc(func() {})
	if l.cfg.AcquireTimeout > 0 {
		actx, cancel = context.WithTimeout(ctx, l.cfg.AcquireTimeout)
	}
	inst, err := l.cfg.Provider.Instantiate(actx, l.cfg.Parent)
	cancel()

	l.placeholder.Hide()

	if err != nil {
		c.log.Error("lazy panel instantiate failed", "panel", l.cfg.Name, "error", err)
		return nil, &ResourceError{Panel: l.cfg.Name, Op: "instantiate", Err: err}
	}
	if inst == nil {
		c.log.Error("lazy panel instantiate returned nothing", "panel", l.cfg.Name)
		return nil, &ResourceError{Panel: l.cfg.Name, Op: "instantiate", Err: ErrInstanceMissing}
	}

	if err := c.RegisterLazy(inst, l); err != nil {
		c.Unregister(inst)
		l.release(c, inst)
		return nil, err
	}

	l.mu.Lock()
	if l.instance != nil {
		// A concurrent open installed an instance first.
		winner := l.instance
		l.opening++
		l.mu.Unlock()

		c.log.Warn("duplicate lazy panel instance released", "panel", l.cfg.Name, "id", inst.ID())
		c.Unregister(inst)
		l.release(c, inst)
		return winner, nil
	}
	l.instance = inst
	l.opening++
	l.mu.Unlock()

	c.log.Debug("lazy panel instantiated", "panel", l.cfg.Name, "id", inst.ID())
	return inst, nil
}

// Close closes the instance and waits for it. The instance is released once
// it is observed closed. Without an instance Close is a no-op.
func (l *LazyPanel) Close(ctx context.Context) error {
	return l.CloseAsync(ctx).Wait(ctx)
}

// CloseAsync runs the instance's synchronous close and returns its Task.
func (l *LazyPanel) CloseAsync(ctx context.Context) *Task {
	inst := l.Instance()
	if inst == nil {
		return completedTask(nil)
	}
	return inst.CloseAsync(ctx)
}

// releaseAfterClose runs once an instance owned by l finished closing.
// A reopen that started in the meantime keeps the instance.
func (l *LazyPanel) releaseAfterClose(inst *Panel) {
	c := l.ctrl.Load()

	l.mu.Lock()
	if l.instance != inst || l.opening > 0 || inst.State() != Closed {
		l.mu.Unlock()
		return
	}
	l.instance = nil
	l.state.Store(int32(Closed))
	l.mu.Unlock()

	l.surface.LowerToBottom()
	if c != nil {
		c.Unregister(inst)
		l.release(c, inst)
	}
}

func (l *LazyPanel) release(c *Controller, inst *Panel) {
	if err := l.cfg.Provider.Release(inst); err != nil {
		c.log.Error("lazy panel release failed", "panel", l.cfg.Name, "id", inst.ID(),
			"error", &ResourceError{Panel: l.cfg.Name, Op: "release", Err: err})
		return
	}
	c.log.Debug("lazy panel released", "panel", l.cfg.Name, "id", inst.ID())
}

func (l *LazyPanel) refuse(op string, cause error, c *Controller) error {
	log := internal.GetInternalLogger()
	if c != nil {
		log = c.log
	}
	log.Warn("lazy panel transition refused", "panel", l.cfg.Name, "op", op, "error", cause)

	err := &ValidationError{Panel: l.cfg.Name, Op: op, Err: cause}
	if hook := l.cfg.OnValidationError; hook != nil {
		hook(err)
	}
	return err
}
