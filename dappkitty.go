package dappkitty

// Init is the single initialization call. levelOrConfig and config each
// accept a bare level (string or Level) or an override object (Overrides,
// *Overrides, map[string]any); config is layered over levelOrConfig.
//
//	s, err := dappkitty.Init(host, "debug", map[string]any{
//		"dev": map[string]any{"logLevel": "info"},
//	})
func Init(h *Host, levelOrConfig any, config any) (*Session, error) {
	o := overridesFrom(levelOrConfig).Merge(overridesFrom(config))
	return NewBuilder(h).WithOverrides(o).Build()
}

func overridesFrom(v any) Overrides {
	switch x := v.(type) {
	case nil:
		return Overrides{}
	case Level:
		return Overrides{LogLevel: x}
	case string:
		return Overrides{LogLevel: asLevel(x)}
	default:
		return ParseOverrides(v)
	}
}

// DappKitty is the constructor form: it resolves the configuration up
// front so callers can inspect it before starting.
type DappKitty struct {
	host      *Host
	defaults  Defaults
	overrides Overrides
	env       Env
	config    *Config
}

// New resolves overrides against the standard schema for the host page.
func New(h *Host, overrides any) *DappKitty {
	return NewWithDefaults(h, StandardDefaults(h), overrides)
}

// NewWithDefaults is New with a caller-provided schema.
func NewWithDefaults(h *Host, d Defaults, overrides any) *DappKitty {
	env := EnvProd
	if h != nil {
		env = h.Env()
	}
	o := overridesFrom(overrides)
	return &DappKitty{
		host:      h,
		defaults:  d,
		overrides: o,
		env:       env,
		config:    Resolve(d, o, env),
	}
}

func (d *DappKitty) Env() Env        { return d.env }
func (d *DappKitty) Config() *Config { return d.config }

// ShouldActivate asks the activation gate for the host's current origin.
func (d *DappKitty) ShouldActivate() bool {
	if d.host == nil {
		return false
	}
	return ShouldActivate(d.config, d.host.Origin())
}

// Start activates the resolved configuration on the host.
func (d *DappKitty) Start(observers ...Observer) (*Session, error) {
	b := NewBuilder(d.host)
	b.config = d.config
	for _, o := range observers {
		b.AddObserver(o)
	}
	return b.Build()
}
