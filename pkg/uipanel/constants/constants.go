// Package constants defines shared constants and configuration values
// used throughout the uipanel framework.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by the framework.
const (
	EnvironmentEnvVar    = "ENVIRONMENT"
	DebugEnvVar          = "UIPANEL_DEBUG"
	SettleDelayEnvVar    = "UIPANEL_SETTLE_DELAY"
	AcquireTimeoutEnvVar = "UIPANEL_ACQUIRE_TIMEOUT"
	GlobalUIEnvVar       = "UIPANEL_GLOBAL_UI"
	LanguageEnvVar       = "UIPANEL_LANG"
	WindowWidthEnvVar    = "WINDOW_WIDTH"
	WindowHeightEnvVar   = "WINDOW_HEIGHT"
	BackDeviceEnvVar     = "UIPANEL_BACK_DEVICE"
)

// DefaultBackDevicePath is the evdev node carrying the handheld's back key.
const DefaultBackDevicePath = "/dev/input/event1"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing constants.
const (
	// DefaultSettleDelay is roughly two frames at 60fps. Init panels wait this
	// long before opening so their animation does not start on the heavy init frame.
	DefaultSettleDelay = 33 * time.Millisecond

	DefaultAcquireTimeout = 10 * time.Second       // Upper bound for a lazy panel instantiate call
	DefaultFrameInterval  = 16 * time.Millisecond  // Tick used by timed transitions
	DefaultFadeDuration   = 200 * time.Millisecond // Fade length for sdlui elements
	DefaultBackCoolDown   = 250 * time.Millisecond // Debounce between back button presses
)

// DefaultBlockerOpacity is the click blocker opacity used when a layout file
// enables a blocker without giving a value.
const DefaultBlockerOpacity = 0.6
