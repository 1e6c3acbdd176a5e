package dappkitty

import (
	"fmt"
	"sort"
)

// Target names used by the standard schema.
const (
	TargetWindow = "window"
	TargetTheme  = "theme"
	TargetApp    = "dapp"
)

const (
	defaultExpandIcon   = "&#9660;"
	defaultCollapseIcon = "&#9650;"
	defaultTheme        = "puzzl-light"
)

// Layer holds the environment-overridable part of a configuration.
type Layer struct {
	LogLevel Level
	Payloads map[string]Payload
}

// Defaults is the static configuration schema. Root-only values (icons,
// production URL, targets) live here and can never come from an
// environment-scoped block.
type Defaults struct {
	ExpandIcon    string
	CollapseIcon  string
	ProductionURL string
	Targets       map[string]Target

	LogLevel Level
	Payloads map[string]Payload

	Envs map[Env]Layer
}

// StandardDefaults returns the built-in schema bound to the host objects:
// window globals, the theme object and the app config object.
func StandardDefaults(h *Host) Defaults {
	d := Defaults{
		ExpandIcon:    defaultExpandIcon,
		CollapseIcon:  defaultCollapseIcon,
		ProductionURL: "",
		Envs: map[Env]Layer{
			EnvDev: {Payloads: map[string]Payload{
				TargetWindow: {"API_URL": nil},
				TargetTheme:  {"color": "puzzl-light"},
				TargetApp:    {"logLevel": "kitty"},
			}},
			EnvLocal: {Payloads: map[string]Payload{
				TargetWindow: {"API_URL": nil},
				TargetTheme:  {"color": "puzzl-dark"},
				TargetApp:    {"logLevel": "debug"},
			}},
		},
	}
	if h != nil {
		d.Targets = map[string]Target{
			TargetWindow: h.Globals(),
			TargetTheme:  h.Theme(),
			TargetApp:    h.AppConfig(),
		}
	}
	return d
}

// Config is the effective configuration of one overlay session. It is
// built once by Resolve and must be treated as read-only; the targets it
// points to are the only things it ever mutates.
type Config struct {
	Env           Env
	LogLevel      Level
	ProductionURL string
	ExpandIcon    string
	CollapseIcon  string
	Targets       map[string]Target
	Payloads      map[string]Payload

	// LevelSource names the precedence layer LogLevel came from.
	LevelSource string
}

// Payload returns a copy of the override payload for a target.
func (c *Config) Payload(name string) Payload {
	return c.Payloads[name].clone()
}

// Theme is the panel theme class, taken from the theme payload.
func (c *Config) Theme() string {
	if s, ok := c.Payloads[TargetTheme]["color"].(string); ok && s != "" {
		return s
	}
	return defaultTheme
}

// TargetNames lists the configured targets in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for k := range c.Targets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ApplyTargets writes each non-empty payload into its target. Targets
// without a payload are left untouched and reported through report.
func (c *Config) ApplyTargets(report func(msg string)) {
	for _, name := range c.TargetNames() {
		t := c.Targets[name]
		if t == nil {
			continue
		}
		p := c.Payloads[name]
		if len(p) == 0 {
			if report != nil {
				report(fmt.Sprintf("No override found for target: %s", name))
			}
			continue
		}
		t.Assign(p.clone())
	}
}
