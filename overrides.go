package dappkitty

import (
	"fmt"
	"strings"
)

// Overrides is caller-supplied configuration. Zero values mean "not set".
// Envs holds environment-scoped blocks; inside those blocks the root-only
// fields (icons, production URL, targets) and nested Envs are ignored.
type Overrides struct {
	LogLevel      Level
	ExpandIcon    string
	CollapseIcon  string
	ProductionURL string
	Targets       map[string]Target
	Payloads      map[string]Payload
	Envs          map[Env]Overrides
}

// Merge returns o layered under next: every field set in next wins, and
// payloads and env blocks are merged per key.
func (o Overrides) Merge(next Overrides) Overrides {
	out := o
	if next.LogLevel != LevelUnset {
		out.LogLevel = next.LogLevel
	}
	if next.ExpandIcon != "" {
		out.ExpandIcon = next.ExpandIcon
	}
	if next.CollapseIcon != "" {
		out.CollapseIcon = next.CollapseIcon
	}
	if next.ProductionURL != "" {
		out.ProductionURL = next.ProductionURL
	}
	if len(next.Targets) > 0 {
		out.Targets = make(map[string]Target, len(o.Targets)+len(next.Targets))
		for k, t := range o.Targets {
			out.Targets[k] = t
		}
		for k, t := range next.Targets {
			out.Targets[k] = t
		}
	}
	if len(next.Payloads) > 0 {
		out.Payloads = make(map[string]Payload, len(o.Payloads)+len(next.Payloads))
		for k, p := range o.Payloads {
			out.Payloads[k] = p
		}
		for k, p := range next.Payloads {
			out.Payloads[k] = p
		}
	}
	if len(next.Envs) > 0 {
		out.Envs = make(map[Env]Overrides, len(o.Envs)+len(next.Envs))
		for e, b := range o.Envs {
			out.Envs[e] = b
		}
		for e, b := range next.Envs {
			out.Envs[e] = out.Envs[e].Merge(b)
		}
	}
	return out
}

// ParseOverrides converts loosely-typed input into Overrides. It accepts
// Overrides, *Overrides, map[string]any and the map[any]any shape YAML
// decoders produce. Anything else is treated as empty. Malformed values
// never fail: unknown scalar keys are dropped and unreadable levels are
// left unset.
func ParseOverrides(v any) Overrides {
	switch x := v.(type) {
	case Overrides:
		return x
	case *Overrides:
		if x == nil {
			return Overrides{}
		}
		return *x
	}
	m, ok := asObject(v)
	if !ok {
		return Overrides{}
	}
	return parseBlock(m, true)
}

func parseBlock(m map[string]any, root bool) Overrides {
	var o Overrides
	for k, x := range m {
		switch strings.ToLower(k) {
		case "loglevel":
			o.LogLevel = asLevel(x)
			continue
		case "expandicon", "collapseicon", "productionurl", "targets":
			if root {
				o.setRoot(strings.ToLower(k), x)
			}
			continue
		case string(EnvDev), string(EnvLocal), string(EnvProd):
			if root {
				if b, ok := asObject(x); ok {
					if o.Envs == nil {
						o.Envs = make(map[Env]Overrides)
					}
					o.Envs[Env(strings.ToLower(k))] = parseBlock(b, false)
				}
			}
			continue
		}
		p, ok := asObject(x)
		if !ok {
			continue
		}
		if o.Payloads == nil {
			o.Payloads = make(map[string]Payload)
		}
		o.Payloads[k] = Payload(p)
	}
	return o
}

func (o *Overrides) setRoot(key string, x any) {
	switch key {
	case "expandicon":
		o.ExpandIcon, _ = x.(string)
	case "collapseicon":
		o.CollapseIcon, _ = x.(string)
	case "productionurl":
		o.ProductionURL, _ = x.(string)
	case "targets":
		targets, ok := x.(map[string]Target)
		if !ok {
			m, isObj := x.(map[string]any)
			if !isObj {
				return
			}
			targets = make(map[string]Target, len(m))
			for name, t := range m {
				if tt, isTarget := t.(Target); isTarget {
					targets[name] = tt
				}
			}
		}
		if len(targets) > 0 {
			o.Targets = targets
		}
	}
}

// asObject normalizes the map shapes produced by JSON and YAML decoders.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Payload:
		return map[string]any(m), true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, x := range m {
			out[fmt.Sprint(k)] = normalizeValue(x)
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[any]any:
		m, _ := asObject(x)
		return m
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = normalizeValue(x[i])
		}
		return out
	default:
		return v
	}
}

func asLevel(v any) Level {
	switch x := v.(type) {
	case Level:
		return x
	case string:
		l, _ := ParseLevel(x)
		return l
	default:
		return LevelUnset
	}
}

// legacyLevel reads the nested logLevel of the app payload, the place
// older configurations kept it.
func legacyLevel(payloads map[string]Payload) Level {
	p := payloads[TargetApp]
	for k, x := range p {
		if strings.EqualFold(k, "logLevel") {
			return asLevel(x)
		}
	}
	return LevelUnset
}
