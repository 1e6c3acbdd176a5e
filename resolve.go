package dappkitty

// fallbackLevel applies when no layer configures a level.
const fallbackLevel = LevelDebug

// levelLayers is every input a level can come from for one resolution.
type levelLayers struct {
	user    Overrides
	userEnv Overrides
	def     Defaults
	defEnv  Layer
}

// logLevelPrecedence is evaluated top to bottom; the first layer that
// yields a configured level wins.
var logLevelPrecedence = [...]struct {
	name string
	pick func(*levelLayers) Level
}{
	{"user env override", func(l *levelLayers) Level { return l.userEnv.LogLevel }},
	{"user override", func(l *levelLayers) Level { return l.user.LogLevel }},
	{"env default", func(l *levelLayers) Level { return l.defEnv.LogLevel }},
	{"default", func(l *levelLayers) Level { return l.def.LogLevel }},
	{"user env app.logLevel", func(l *levelLayers) Level { return legacyLevel(l.userEnv.Payloads) }},
	{"env default app.logLevel", func(l *levelLayers) Level { return legacyLevel(l.defEnv.Payloads) }},
}

func (l *levelLayers) resolve() (Level, string) {
	for _, src := range logLevelPrecedence {
		if lvl := src.pick(l); lvl != LevelUnset {
			return lvl, src.name
		}
	}
	return fallbackLevel, "fallback"
}

// Resolve merges the static defaults, the environment's default layer and
// the caller's overrides into a new effective configuration.
//
// Layers, lowest first: root defaults, env defaults, caller top-level,
// caller env block. Root-only keys are taken from the defaults and the
// caller's top level; env blocks cannot touch them. Payloads for names
// outside the schema are dropped.
func Resolve(d Defaults, o Overrides, env Env) *Config {
	if !env.valid() {
		env = EnvProd
	}
	c := &Config{
		ExpandIcon:    d.ExpandIcon,
		CollapseIcon:  d.CollapseIcon,
		ProductionURL: d.ProductionURL,
		Targets:       make(map[string]Target, len(d.Targets)),
		Payloads:      make(map[string]Payload),
	}
	for k, t := range d.Targets {
		c.Targets[k] = t
	}

	if o.ExpandIcon != "" {
		c.ExpandIcon = o.ExpandIcon
	}
	if o.CollapseIcon != "" {
		c.CollapseIcon = o.CollapseIcon
	}
	if o.ProductionURL != "" {
		c.ProductionURL = o.ProductionURL
	}
	if len(o.Targets) > 0 {
		c.Targets = make(map[string]Target, len(o.Targets))
		for k, t := range o.Targets {
			c.Targets[k] = t
		}
	}

	defEnv := d.Envs[env]
	schema := make(map[string]struct{}, len(c.Targets)+len(d.Payloads)+len(defEnv.Payloads))
	for k := range c.Targets {
		schema[k] = struct{}{}
	}
	for k := range d.Payloads {
		schema[k] = struct{}{}
	}
	for k := range defEnv.Payloads {
		schema[k] = struct{}{}
	}

	layer := func(payloads map[string]Payload, checked bool) {
		for k, p := range payloads {
			if _, ok := schema[k]; checked && !ok {
				continue
			}
			c.Payloads[k] = p.clone()
		}
	}
	userEnv := o.Envs[env]
	layer(d.Payloads, false)
	layer(defEnv.Payloads, false)
	layer(o.Payloads, true)
	layer(userEnv.Payloads, true)

	ll := levelLayers{user: o, userEnv: userEnv, def: d, defEnv: defEnv}
	c.LogLevel, c.LevelSource = ll.resolve()

	c.Env = env
	return c
}
