package uipanel

import "context"

// Element is an animatable leaf owned by a panel. Show and Hide return when
// the transition completes and must return even for zero-length transitions.
type Element interface {
	Init(useUnscaledTime bool)
	Show(ctx context.Context) error
	Hide(ctx context.Context) error
}

// Blocker is the input-absorbing overlay drawn behind a panel's content.
type Blocker interface {
	SetOpacity(opacity float64)
}

// Surface is the visual and input presence of a panel: whether it is drawn
// and hit-tested, whether it accepts interaction, and its place in draw order.
type Surface interface {
	SetVisible(visible bool)
	SetInteractable(interactable bool)
	RaiseToTop()
	LowerToBottom()
}

// Placeholder is shown while a lazy panel is being instantiated.
type Placeholder interface {
	Show()
	Hide()
}

// ResourceProvider creates and releases the panel instance behind a LazyPanel.
type ResourceProvider interface {
	Instantiate(ctx context.Context, parent any) (*Panel, error)
	Release(panel *Panel) error
}

// Hooks are invoked at fixed points of the panel state machine. Nil hooks are
// skipped. Hooks run after the controller lock is released, so they may call
// back into panels and controllers.
type Hooks struct {
	OnStartShow       func()          // Before element show transitions start
	OnAllShown        func()          // After every element finished showing
	OnStartHide       func()          // Before element hide transitions start
	OnAllHidden       func()          // After every element finished hiding
	OnRefresh         func()          // Open was requested while already open and RefreshOnReopen is set
	OnValidationError func(err error) // A transition was refused, see ValidationError
}

// UIPanel is the capability shared by plain and lazy panels.
type UIPanel interface {
	Init(c *Controller) error
	Open(ctx context.Context) error
	OpenAsync(ctx context.Context) *Task
	Close(ctx context.Context) error
	CloseAsync(ctx context.Context) *Task
	SetBlockerVisible(visible bool)
	ID() ID
	Name() string
	ShowFromStart() bool
	State() State
}

type noopSurface struct{}

func (noopSurface) SetVisible(bool)      {}
func (noopSurface) SetInteractable(bool) {}
func (noopSurface) RaiseToTop()          {}
func (noopSurface) LowerToBottom()       {}

type noopPlaceholder struct{}

func (noopPlaceholder) Show() {}
func (noopPlaceholder) Hide() {}
