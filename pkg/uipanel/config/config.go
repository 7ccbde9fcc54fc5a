// Package config loads panel layouts from TOML files and builds controllers
// from them.
//
// A layout has one [controller] table and any number of [[panel]] entries:
//
//	[controller]
//	name = "main"
//	show_init_from_start = true
//	settle_delay = "33ms"
//
//	[[panel]]
//	name = "home"
//	show_from_start = true
//	blocker = true
//
//	[[panel]]
//	name = "settings"
//	lazy = true
//	asset = "panels/settings"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BurntSushi/toml"
)

// Sentinel errors reported per panel entry.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrDuplicateName = errors.New("name is already used by another panel")
	ErrOpacityRange  = errors.New("blocker_opacity must be between 0 and 1")
	ErrAssetRequired = errors.New("lazy panels need an asset")
)

// Duration is a time.Duration written as a string ("250ms", "2s") in layouts.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Layout is the decoded form of a layout file.
type Layout struct {
	Controller ControllerDef `toml:"controller"`
	Panels     []PanelDef    `toml:"panel"`
}

// ControllerDef configures the controller built from a layout.
type ControllerDef struct {
	Name              string   `toml:"name"`
	GlobalUI          bool     `toml:"global_ui"`
	ShowInitFromStart bool     `toml:"show_init_from_start"`
	SettleDelay       Duration `toml:"settle_delay"`    // 0 uses the default, negative disables
	AcquireTimeout    Duration `toml:"acquire_timeout"` // For lazy panels; 0 uses the default
}

// PanelDef is one [[panel]] entry.
type PanelDef struct {
	Name            string   `toml:"name"`
	ShowFromStart   bool     `toml:"show_from_start"`
	RefreshOnReopen bool     `toml:"refresh_on_reopen"`
	UseUnscaledTime bool     `toml:"use_unscaled_time"`
	Blocker         bool     `toml:"blocker"`
	BlockerOpacity  float64  `toml:"blocker_opacity"` // 0 uses the default when blocker is set
	Elements        []string `toml:"elements"`
	Lazy            bool     `toml:"lazy"`
	Asset           string   `toml:"asset"` // Passed to the resource provider of lazy panels
}

// Load reads and parses the layout file at path. Environment overrides are
// applied after parsing.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := ApplyEnv(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Parse decodes a layout. Keys that match no field are an error so typos in
// layout files do not go unnoticed.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse layout: unknown keys: %s", strings.Join(keys, ", "))
	}

	return &l, nil
}

// Validate checks every panel entry and returns all problems joined, each as
// a *uipanel.ConfigError.
func (l *Layout) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(l.Panels))
	for i, def := range l.Panels {
		if err := checkPanel(def, seen); err != nil {
			errs = append(errs, &uipanel.ConfigError{Index: i, Panel: def.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the panel entry named name.
func (l *Layout) Lookup(name string) (PanelDef, bool) {
	for _, def := range l.Panels {
		if def.Name == name {
			return def, true
		}
	}
	return PanelDef{}, false
}

func checkPanel(def PanelDef, seen map[string]bool) error {
	if strings.TrimSpace(def.Name) == "" {
		return ErrNameRequired
	}
	if seen[def.Name] {
		return ErrDuplicateName
	}
	seen[def.Name] = true

	if def.BlockerOpacity < 0 || def.BlockerOpacity > 1 {
		return ErrOpacityRange
	}
	if def.Lazy && def.Asset == "" {
		return ErrAssetRequired
	}
	return nil
}
