package config

import (
	"errors"
	"log/slog"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
)

// Binder supplies the collaborators a layout cannot describe: elements,
// blockers, surfaces and hooks for plain panels, and resource providers for
// lazy ones.
type Binder interface {
	Bind(def PanelDef) (uipanel.PanelConfig, error)
	Provider(def PanelDef) (uipanel.ResourceProvider, error)
}

// PlaceholderBinder is implemented by binders that supply loading
// placeholders for lazy panels.
type PlaceholderBinder interface {
	Placeholder(def PanelDef) uipanel.Placeholder
}

// BuildOptions are the runtime inputs of Build.
type BuildOptions struct {
	Bus    *uipanel.BlockerBus // Shared blocker bus, optional
	Logger *slog.Logger        // Controller logger, optional
	Parent any                 // Passed to every lazy panel's provider
}

// Build creates a controller for l. Entries that fail validation or binding
// are reported as *uipanel.ConfigError and left as empty slots, which the
// controller skips during InitAllPanels. The controller is returned even when
// the error is non-nil.
func Build(l *Layout, b Binder, opts BuildOptions) (*uipanel.Controller, error) {
	var errs []error
	panels := make([]uipanel.UIPanel, len(l.Panels))
	seen := make(map[string]bool, len(l.Panels))

	for i, def := range l.Panels {
		if err := checkPanel(def, seen); err != nil {
			errs = append(errs, &uipanel.ConfigError{Index: i, Panel: def.Name, Err: err})
			continue
		}

		p, err := buildPanel(l, def, b, opts)
		if err != nil {
			errs = append(errs, &uipanel.ConfigError{Index: i, Panel: def.Name, Err: err})
			continue
		}
		panels[i] = p
	}

	c := uipanel.NewController(uipanel.ControllerOptions{
		Name:              l.Controller.Name,
		IsGlobalUI:        l.Controller.GlobalUI,
		ShowInitFromStart: l.Controller.ShowInitFromStart,
		SettleDelay:       l.Controller.SettleDelay.Duration,
		Bus:               opts.Bus,
		Logger:            opts.Logger,
		Panels:            panels,
	})
	return c, errors.Join(errs...)
}

func buildPanel(l *Layout, def PanelDef, b Binder, opts BuildOptions) (uipanel.UIPanel, error) {
	if def.Lazy {
		provider, err := b.Provider(def)
		if err != nil {
			return nil, err
		}

		cfg := uipanel.LazyConfig{
			Name:           def.Name,
			ShowFromStart:  def.ShowFromStart,
			Provider:       provider,
			Parent:         opts.Parent,
			AcquireTimeout: l.Controller.AcquireTimeout.Duration,
		}
		if pb, ok := b.(PlaceholderBinder); ok {
			cfg.Placeholder = pb.Placeholder(def)
		}
		return uipanel.NewLazyPanel(cfg), nil
	}

	cfg, err := b.Bind(def)
	if err != nil {
		return nil, err
	}
	return uipanel.NewPanel(PanelConfig(def, cfg)), nil
}

// PanelConfig overlays the layout settings of def onto cfg. Binders of lazy
// panels use it to build instances that match their layout entry.
func PanelConfig(def PanelDef, cfg uipanel.PanelConfig) uipanel.PanelConfig {
	cfg.Name = def.Name
	cfg.ShowFromStart = def.ShowFromStart
	cfg.RefreshOnReopen = def.RefreshOnReopen
	cfg.UseUnscaledTime = def.UseUnscaledTime

	if !def.Blocker {
		cfg.Blocker = nil
		cfg.BlockerOpacity = 0
		return cfg
	}

	cfg.BlockerOpacity = def.BlockerOpacity
	if cfg.BlockerOpacity == 0 {
		cfg.BlockerOpacity = constants.DefaultBlockerOpacity
	}
	return cfg
}
