package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
)

// ApplyEnv overrides controller settings from the environment:
// UIPANEL_SETTLE_DELAY and UIPANEL_ACQUIRE_TIMEOUT take durations,
// UIPANEL_GLOBAL_UI takes a boolean. Unset variables leave the layout alone.
func ApplyEnv(l *Layout) error {
	if v, ok := os.LookupEnv(constants.SettleDelayEnvVar); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.SettleDelayEnvVar, err)
		}
		l.Controller.SettleDelay = Duration{d}
	}

	if v, ok := os.LookupEnv(constants.AcquireTimeoutEnvVar); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.AcquireTimeoutEnvVar, err)
		}
		l.Controller.AcquireTimeout = Duration{d}
	}

	if v, ok := os.LookupEnv(constants.GlobalUIEnvVar); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.GlobalUIEnvVar, err)
		}
		l.Controller.GlobalUI = b
	}

	return nil
}
