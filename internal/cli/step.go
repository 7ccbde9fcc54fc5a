package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
)

// StepKind is one simulate action.
type StepKind string

const (
	StepOpen               StepKind = "open"
	StepClose              StepKind = "close"
	StepCloseTop           StepKind = "close-top"
	StepCloseTopExceptInit StepKind = "close-top-except-init"
	StepCloseAll           StepKind = "close-all"
	StepWait               StepKind = "wait"
)

// Step is a parsed simulate argument such as "open:menu" or "wait:200ms".
type Step struct {
	Kind StepKind
	Name string        // Panel name for open and close
	Wait time.Duration // Duration for wait
}

var errUnknownPanel = errors.New("unknown panel")

func (s Step) String() string {
	switch s.Kind {
	case StepOpen, StepClose:
		return string(s.Kind) + ":" + s.Name
	case StepWait:
		return string(s.Kind) + ":" + s.Wait.String()
	default:
		return string(s.Kind)
	}
}

// ParseStep parses one step argument.
func ParseStep(arg string) (Step, error) {
	kind, value, hasValue := strings.Cut(strings.TrimSpace(arg), ":")
	step := Step{Kind: StepKind(kind)}

	switch step.Kind {
	case StepOpen, StepClose:
		if value == "" {
			return Step{}, fmt.Errorf("step %q: missing panel name", arg)
		}
		step.Name = value
	case StepWait:
		d, err := time.ParseDuration(value)
		if err != nil {
			return Step{}, fmt.Errorf("step %q: %w", arg, err)
		}
		if d < 0 {
			return Step{}, fmt.Errorf("step %q: negative duration", arg)
		}
		step.Wait = d
	case StepCloseTop, StepCloseTopExceptInit, StepCloseAll:
		if hasValue {
			return Step{}, fmt.Errorf("step %q: %s takes no argument", arg, kind)
		}
	default:
		return Step{}, fmt.Errorf("step %q: unknown action %q", arg, kind)
	}
	return step, nil
}

// ParseSteps parses all arguments, stopping at the first invalid one.
func ParseSteps(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for _, arg := range args {
		s, err := ParseStep(arg)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// Run applies the step to c and waits for the transitions it started.
func (s Step) Run(ctx context.Context, c *uipanel.Controller) error {
	switch s.Kind {
	case StepOpen, StepClose:
		p, ok := c.Lookup(s.Name)
		if !ok {
			return fmt.Errorf("%s: %w", s.Name, errUnknownPanel)
		}
		if s.Kind == StepOpen {
			return p.Open(ctx)
		}
		return p.Close(ctx)
	case StepCloseTop:
		return c.CloseTopPanel(ctx).Wait(ctx)
	case StepCloseTopExceptInit:
		return c.CloseTopExceptInit(ctx).Wait(ctx)
	case StepCloseAll:
		var errs []error
		for _, task := range c.CloseAllButInit(ctx) {
			errs = append(errs, task.Wait(ctx))
		}
		return errors.Join(errs...)
	case StepWait:
		timer := time.NewTimer(s.Wait)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("unknown action %q", s.Kind)
}

// settled waits until no configured panel is mid transition.
func settled(ctx context.Context, c *uipanel.Controller) error {
	ticker := time.NewTicker(constants.DefaultFrameInterval)
	defer ticker.Stop()

	for {
		busy := false
		for _, p := range c.Panels() {
			if p == nil {
				continue
			}
			if st := p.State(); st == uipanel.IsOpening || st == uipanel.IsClosing {
				busy = true
				break
			}
		}
		if !busy {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
