// Package uipanel manages a stack of overlapping UI panels.
//
// A Panel owns a set of animatable Elements and moves through four states:
// Closed, IsOpening, Opened and IsClosing. Opening runs every element's show
// transition at once and, when all of them are done, pushes the panel on its
// Controller's stack. Closing pops the panel first, so the panel below is
// interactive again while this one is still animating out.
//
// The Controller keeps the stack and makes sure only the top panel's click
// blocker is visible. Controllers that share a BlockerBus also keep their
// blockers from darkening the screen twice.
//
// # Basic Usage
//
//	ctrl := uipanel.NewController(uipanel.ControllerOptions{Name: "scene"})
//
//	menu := uipanel.NewPanel(uipanel.PanelConfig{
//	    Name:           "menu",
//	    Elements:       []uipanel.Element{title, buttons},
//	    Blocker:        blocker,
//	    BlockerOpacity: 0.6,
//	})
//	ctrl.AddPanel(menu)
//
//	_ = ctrl.InitAllPanels(ctx)
//
//	// Blocks until every element has shown
//	if err := menu.Open(ctx); err != nil {
//	    // ...
//	}
//
//	// Fire and forget, Wait on the task if completion matters
//	task := ctrl.CloseTopPanel(ctx)
//
// # Interrupted Transitions
//
// A close that arrives while a panel is opening snaps the panel to the end of
// its open (hooks fire, surfaces enable) without waiting for the elements,
// then closes it. An open during a close snaps it closed first. The element
// transitions of the interrupted half are not cancelled; their completion is
// ignored. This can look abrupt when transitions are long.
//
// # Lazy Panels
//
// LazyPanel wraps a Panel produced by a ResourceProvider. The instance is
// created on first open and released once it has closed.
//
// # Concurrency
//
// Each Controller serializes the transitions of its panels with one lock.
// Hooks and blocker broadcasts run after the lock is released.
package uipanel
