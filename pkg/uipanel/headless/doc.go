// Package headless provides uipanel collaborators that need no display:
// timer-driven and manually released elements, recording surfaces,
// blockers and placeholders, and an in-memory resource provider.
//
// They back the panelctl simulator and the uipanel tests.
package headless
