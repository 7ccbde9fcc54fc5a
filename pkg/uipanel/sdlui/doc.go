// Package sdlui implements the uipanel collaborators on top of SDL2.
//
// A Compositor owns the draw order of Layers, which serve as panel surfaces.
// FadeElement tweens an alpha value for panel content, ClickBlocker draws
// the translucent overlay behind a panel and LoadingPlaceholder shows a
// spinner with a localized label while a lazy panel is instantiated.
//
// Panel state changes may happen on any goroutine. Everything that touches
// the SDL renderer (Compositor.Render, Loop.Run) must run on the goroutine
// that created the Window, locked to its OS thread.
package sdlui
