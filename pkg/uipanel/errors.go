package uipanel

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoElements indicates a panel was configured without any elements.
	ErrNoElements = errors.New("panel has no elements")

	// ErrNoController indicates a panel was used before Init gave it a controller.
	ErrNoController = errors.New("panel has no controller")

	// ErrInstanceMissing indicates a resource provider resolved without a panel.
	ErrInstanceMissing = errors.New("resource provider returned no panel")

	// ErrOtherController indicates Init was called with a controller other
	// than the one the panel is registered with.
	ErrOtherController = errors.New("panel is registered with another controller")

	// ErrPanelMissing indicates a configured panel slot is empty.
	ErrPanelMissing = errors.New("configured panel is missing")
)

// ValidationError reports a panel that cannot run a transition as configured.
// The operation that returned it changed nothing.
type ValidationError struct {
	Panel string // Panel name
	Op    string // Operation that was refused ("open", "close", "init")
	Err   error  // ErrNoElements or ErrNoController
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("uipanel: %s %q: %v", e.Op, e.Panel, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResourceError reports a failed lazy panel instantiate or release.
type ResourceError struct {
	Panel string // Lazy panel name
	Op    string // "instantiate" or "release"
	Err   error  // Underlying error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("uipanel: %s %q: %v", e.Op, e.Panel, e.Err)
	}
	return fmt.Sprintf("uipanel: %s %q", e.Op, e.Panel)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ConfigError reports a single misconfigured panel slot. It never aborts
// the processing of the remaining slots.
type ConfigError struct {
	Index int    // Position in the configured panel list
	Panel string // Panel name, if known
	Err   error  // Underlying error
}

func (e *ConfigError) Error() string {
	if e.Panel == "" {
		return fmt.Sprintf("uipanel: panel at index [%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("uipanel: panel %q at index [%d]: %v", e.Panel, e.Index, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsResourceError checks if an error is a resource acquisition or release error.
func IsResourceError(err error) bool {
	var resourceErr *ResourceError
	return errors.As(err, &resourceErr)
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
